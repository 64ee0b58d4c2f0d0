// Package kioskdto định nghĩa các DTO của local API kiosk.
package kioskdto

import "meta_kiosk/internal/kiosk"

// KioskSignInInput là dữ liệu đăng nhập operator trên kiosk
type KioskSignInInput struct {
	IDToken string `json:"idToken" validate:"required"` // Firebase ID token của operator
	Hwid    string `json:"hwid" validate:"required"`    // Định danh phần cứng của máy kiosk
}

// KioskSignOutInput là dữ liệu đăng xuất operator trên kiosk
type KioskSignOutInput struct {
	ResetIdentity bool `json:"resetIdentity"` // Xóa luôn danh tính thiết bị và bản ghi backend
}

// CartAddInput là dữ liệu thêm một món vào giỏ
type CartAddInput struct {
	MenuKey   string                  `json:"menuKey" validate:"required"`
	Name      string                  `json:"name" validate:"required"`
	BasePrice int64                   `json:"basePrice" validate:"gte=0"`
	Count     int                     `json:"count" validate:"required,gte=1"`
	Min       int                     `json:"min"`
	Max       int                     `json:"max"`
	Options   []kiosk.OptionSelection `json:"options"`
}

// CartLineInput trỏ tới một dòng giỏ hàng theo cartId
type CartLineInput struct {
	CartID int `json:"cartId" validate:"required,gte=1"`
}

// PhoneDigitInput là một phím số được bấm trên bàn phím kiosk
type PhoneDigitInput struct {
	Digit string `json:"digit" validate:"required,len=1,numeric"`
}

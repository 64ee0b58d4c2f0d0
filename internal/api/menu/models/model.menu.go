// Package models - model món (Menu) thuộc domain menu.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrentMenuVersion là version schema menu kiosk đang đọc.
// Menu của version khác bị bỏ qua để admin có thể chuẩn bị version mới
// song song mà không ảnh hưởng kiosk đang chạy.
const CurrentMenuVersion = "v5"

// Các loại option của món
const (
	OptionTypeRadio = "radio" // Chọn một trong danh sách nhãn, không cộng giá
	OptionTypeRange = "range" // Số lượng trong khoảng min..max, cộng giá tuyến tính
)

// MenuOption là một option cấu hình được của món
type MenuOption struct {
	Key     string   `json:"key" bson:"key"`
	Name    string   `json:"name" bson:"name"`
	Type    string   `json:"type" bson:"type"`
	Options []string `json:"options,omitempty" bson:"options,omitempty"` // Nhãn hiển thị cho type radio
	Default int      `json:"default,omitempty" bson:"default,omitempty"`
	Min     int      `json:"min,omitempty" bson:"min,omitempty"`
	Max     int      `json:"max,omitempty" bson:"max,omitempty"`
	Price   int64    `json:"price,omitempty" bson:"price,omitempty"` // Đơn giá mỗi đơn vị cho type range
}

// Menu là một món trong thực đơn của cửa hàng.
// Status false nghĩa là món đang ẩn, kiosk không hiển thị.
type Menu struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreNumber int                `json:"storeNumber" bson:"store_number"`
	Version     string             `json:"version" bson:"version"`
	MenuKey     string             `json:"menuKey" bson:"menu_key"`
	Category    string             `json:"category" bson:"category"`
	Name        string             `json:"name" bson:"name"`
	Price       int64              `json:"price" bson:"price"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	Min         int                `json:"min" bson:"min" default:"1"`
	Max         int                `json:"max" bson:"max" default:"1"`
	Status      bool               `json:"status" bson:"status"`
	Options     []MenuOption       `json:"options" bson:"options"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// Package authdto chứa DTO cho domain auth.
// File: dto.auth.admin.go
package authdto

// AdminCreateInput là DTO cho tạo mới admin cửa hàng
type AdminCreateInput struct {
	UserID      string          `json:"userId" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	StoreNumber int             `json:"storeNumber" validate:"required,min=1"`
	Access      map[string]bool `json:"access,omitempty"`
}

// AdminUpdateInput là DTO cho cập nhật admin cửa hàng
type AdminUpdateInput struct {
	Email       *string         `json:"email,omitempty" validate:"omitempty,email"`
	StoreNumber *int            `json:"storeNumber,omitempty" validate:"omitempty,min=1"`
	Access      map[string]bool `json:"access,omitempty"`
}

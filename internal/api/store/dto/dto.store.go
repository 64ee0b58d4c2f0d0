// Package storedto chứa DTO cho domain store.
package storedto

// StoreCreateInput là DTO cho tạo mới cửa hàng
type StoreCreateInput struct {
	StoreNumber    int                    `json:"storeNumber" validate:"required,min=1"`
	Name           string                 `json:"name" validate:"required"`
	Email          string                 `json:"email" validate:"required,email"`
	DefaultBanners interface{}            `json:"defaultBanners,omitempty"`
	DefaultStatus  map[string]interface{} `json:"defaultStatus,omitempty"`
}

// StoreUpdateInput là DTO cho cập nhật cửa hàng
type StoreUpdateInput struct {
	Name           *string                `json:"name,omitempty"`
	Email          *string                `json:"email,omitempty" validate:"omitempty,email"`
	DefaultBanners interface{}            `json:"defaultBanners,omitempty"`
	DefaultStatus  map[string]interface{} `json:"defaultStatus,omitempty"`
}

// Package menudto chứa DTO cho domain menu.
package menudto

import (
	models "meta_kiosk/internal/api/menu/models"
)

// MenuCreateInput là DTO cho tạo mới món
type MenuCreateInput struct {
	StoreNumber int                 `json:"storeNumber" validate:"required,min=1"`
	Version     string              `json:"version" validate:"required"`
	MenuKey     string              `json:"menuKey" validate:"required"`
	Category    string              `json:"category" validate:"required"`
	Name        string              `json:"name" validate:"required"`
	Price       int64               `json:"price" validate:"min=0"`
	Image       string              `json:"image,omitempty"`
	Min         int                 `json:"min,omitempty"`
	Max         int                 `json:"max,omitempty"`
	Status      bool                `json:"status"`
	Options     []models.MenuOption `json:"options,omitempty"`
}

// MenuUpdateInput là DTO cho cập nhật món
type MenuUpdateInput struct {
	Category *string             `json:"category,omitempty"`
	Name     *string             `json:"name,omitempty"`
	Price    *int64              `json:"price,omitempty" validate:"omitempty,min=0"`
	Image    *string             `json:"image,omitempty"`
	Min      *int                `json:"min,omitempty"`
	Max      *int                `json:"max,omitempty"`
	Status   *bool               `json:"status,omitempty"`
	Options  []models.MenuOption `json:"options,omitempty"`
}

// MenuCategoryCreateInput là DTO cho tạo mới danh mục
type MenuCategoryCreateInput struct {
	StoreNumber int    `json:"storeNumber" validate:"required,min=1"`
	Name        string `json:"name" validate:"required"`
	Order       int    `json:"order" validate:"min=0"`
}

// MenuCategoryUpdateInput là DTO cho cập nhật danh mục
type MenuCategoryUpdateInput struct {
	Name  *string `json:"name,omitempty"`
	Order *int    `json:"order,omitempty" validate:"omitempty,min=0"`
}

// Package orderdto chứa DTO cho domain order.
package orderdto

import (
	models "meta_kiosk/internal/api/order/models"
)

// OrderCreateInput là DTO cho tạo mới đơn hàng
type OrderCreateInput struct {
	StoreNumber int                    `json:"storeNumber" validate:"required,min=1"`
	OrderNumber int                    `json:"orderNumber" validate:"required,min=1"`
	PhoneNumber string                 `json:"phoneNumber" validate:"required,kr_phone"`
	TotalPrice  int64                  `json:"totalPrice" validate:"min=0"`
	Menu        []models.OrderMenuItem `json:"menu" validate:"required,min=1"`
}

// OrderUpdateInput là DTO cho cập nhật trạng thái đơn (hệ thống bếp)
type OrderUpdateInput struct {
	Status *string `json:"status,omitempty"`
}

// Package models - model đơn hàng (Order) thuộc domain order.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusNew là trạng thái của đơn vừa được kiosk gửi lên.
// Kiosk không bao giờ sửa đơn sau khi tạo; các trạng thái tiếp theo do
// hệ thống bếp/quầy quản lý.
const StatusNew = "new"

// OrderMenuOption là một lựa chọn option đã chốt trong đơn.
// Choice là nhãn hiển thị nếu option gốc có danh sách nhãn, ngược lại là
// giá trị số người dùng đã chọn.
type OrderMenuOption struct {
	Name   string      `json:"name" bson:"name"`
	Choice interface{} `json:"choice" bson:"choice"`
	Price  int64       `json:"price" bson:"price"`
}

// OrderMenuItem là một dòng món trong đơn
type OrderMenuItem struct {
	ID       string            `json:"id" bson:"id"` // menu_key của món
	Quantity int               `json:"quantity" bson:"quantity"`
	Price    int64             `json:"price" bson:"price"` // Thành tiền của dòng (đã nhân số lượng)
	Name     string            `json:"name" bson:"name"`
	Options  []OrderMenuOption `json:"options" bson:"options"`
}

// Order là đơn hàng một lần checkout của kiosk.
// OrderNumber tuần tự theo (cửa hàng, ngày), do bộ đếm order_counters cấp.
type Order struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreNumber int                `json:"storeNumber" bson:"store_number"`
	OrderNumber int                `json:"orderNumber" bson:"order_number"`
	PhoneNumber string             `json:"phoneNumber" bson:"phone_number"`
	Status      string             `json:"status" bson:"status" default:"new"`
	TotalPrice  int64              `json:"totalPrice" bson:"total_price"`
	Menu        []OrderMenuItem    `json:"menu" bson:"menu"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

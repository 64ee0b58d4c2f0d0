// Package models - bộ đếm số thứ tự đơn (OrderCounter).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderCounter cấp số thứ tự đơn tuần tự trong ngày cho một cửa hàng.
// Mỗi (store_number, date) một document, seq tăng nguyên tử bằng $inc.
type OrderCounter struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreNumber int                `json:"storeNumber" bson:"store_number"`
	Date        string             `json:"date" bson:"date"` // YYYY-MM-DD
	Seq         int                `json:"seq" bson:"seq"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

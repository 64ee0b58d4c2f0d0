// Package models - model danh mục món (MenuCategory).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuCategory là một danh mục trên thanh lọc của kiosk, sắp theo Order tăng dần.
type MenuCategory struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreNumber int                `json:"storeNumber" bson:"store_number"`
	Name        string             `json:"name" bson:"name"`
	Order       int                `json:"order" bson:"order"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

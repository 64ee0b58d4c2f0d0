// Package models - model cửa hàng (Store) thuộc domain store.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store là cấu hình một cửa hàng.
// Email phải trùng với email tài khoản admin đăng nhập kiosk, lệch nhau
// nghĩa là binding cửa hàng - tài khoản bị cấu hình sai.
// DefaultBanners và DefaultStatus được copy nguyên trạng vào data của
// thiết bị khi thiết bị đăng ký lần đầu.
type Store struct {
	ID             primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	StoreNumber    int                    `json:"storeNumber" bson:"store_number" index:"unique"`
	Name           string                 `json:"name" bson:"name"`
	Email          string                 `json:"email" bson:"email"`
	DefaultBanners interface{}            `json:"defaultBanners" bson:"default_banners"`
	DefaultStatus  map[string]interface{} `json:"defaultStatus" bson:"default_status"`
	CreatedAt      int64                  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64                  `json:"updatedAt" bson:"updatedAt"`
}

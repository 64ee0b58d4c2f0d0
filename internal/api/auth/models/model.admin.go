// Package models - model quản trị viên cửa hàng (Admin) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CapabilityKiosk là cờ trong Access cho phép tài khoản vận hành màn hình kiosk.
const CapabilityKiosk = "kiosk"

// Admin gắn một người dùng với một cửa hàng cụ thể.
// Access là map cờ chức năng, ví dụ {"kiosk": true} cho phép đăng nhập kiosk.
// Email phải trùng với email trong document store để xác nhận cấu hình đúng cửa hàng.
type Admin struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId" index:"unique"`
	Email       string             `json:"email" bson:"email"`
	StoreNumber int                `json:"storeNumber" bson:"storeNumber"`
	Access      map[string]bool    `json:"access" bson:"access"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// HasCapability kiểm tra admin có cờ chức năng tương ứng hay không.
func (a *Admin) HasCapability(capability string) bool {
	if a == nil || a.Access == nil {
		return false
	}
	return a.Access[capability]
}

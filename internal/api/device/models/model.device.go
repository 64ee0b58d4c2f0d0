// Package models - model thiết bị kiosk (Device) thuộc domain device.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái phê duyệt của thiết bị
const (
	StatusWait    = "wait"    // Chờ admin phê duyệt
	StatusReady   = "ready"   // Được phép nhận đơn
	StatusBlocked = "blocked" // Bị chặn
)

// DeviceStatusInfo là nội dung hiển thị trên màn hình chờ của kiosk,
// do admin đặt hoặc copy từ default_status của cửa hàng khi đăng ký.
type DeviceStatusInfo struct {
	Banner interface{} `json:"banner,omitempty" bson:"banner,omitempty"`
	Reason string      `json:"reason,omitempty" bson:"reason,omitempty"`
	Img    string      `json:"img,omitempty" bson:"img,omitempty"`
}

// DeviceData gom banner quảng cáo và nội dung màn hình chờ của thiết bị.
type DeviceData struct {
	Banner interface{}       `json:"banner,omitempty" bson:"banner,omitempty"`
	Status *DeviceStatusInfo `json:"status,omitempty" bson:"status,omitempty"`
}

// Device là bản ghi thiết bị kiosk, khóa theo (store_number, device_code).
// Kiosk tự tạo bản ghi với status wait, admin chuyển sang ready hoặc blocked.
// Admin xóa bản ghi để buộc thiết bị đăng ký lại.
type Device struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreNumber int                `json:"storeNumber" bson:"store_number"`
	DeviceCode  string             `json:"deviceCode" bson:"device_code"`
	DeviceName  string             `json:"deviceName" bson:"device_name"`
	Status      string             `json:"status" bson:"status" default:"wait"`
	Data        DeviceData         `json:"data" bson:"data"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

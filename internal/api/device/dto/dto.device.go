// Package devicedto chứa DTO cho domain device.
package devicedto

import (
	models "meta_kiosk/internal/api/device/models"
)

// DeviceCreateInput là DTO cho tạo mới thiết bị (CRUD quản trị)
type DeviceCreateInput struct {
	StoreNumber int               `json:"storeNumber" validate:"required,min=1"`
	DeviceCode  string            `json:"deviceCode" validate:"required"`
	DeviceName  string            `json:"deviceName,omitempty"`
	Status      string            `json:"status,omitempty" validate:"omitempty,device_status"`
	Data        models.DeviceData `json:"data,omitempty"`
}

// DeviceUpdateInput là DTO cho cập nhật thiết bị
type DeviceUpdateInput struct {
	DeviceName *string            `json:"deviceName,omitempty"`
	Status     *string            `json:"status,omitempty" validate:"omitempty,device_status"`
	Data       *models.DeviceData `json:"data,omitempty"`
}

// DeviceSetStatusInput là DTO cho thao tác phê duyệt của admin
type DeviceSetStatusInput struct {
	StoreNumber int                      `json:"storeNumber" validate:"required,min=1"`
	DeviceCode  string                   `json:"deviceCode" validate:"required"`
	Status      string                   `json:"status" validate:"required,device_status"`
	StatusInfo  *models.DeviceStatusInfo `json:"statusInfo,omitempty"`
}

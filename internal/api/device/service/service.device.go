// Package devicesvc - service thiết bị kiosk (Device).
package devicesvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "meta_kiosk/internal/api/base/service"
	models "meta_kiosk/internal/api/device/models"
	storesvc "meta_kiosk/internal/api/store/service"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/global"
	"meta_kiosk/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
)

// DeviceService là cấu trúc chứa các phương thức liên quan đến thiết bị kiosk
type DeviceService struct {
	*basesvc.BaseServiceMongoImpl[models.Device]
	storeService *storesvc.StoreService
}

// NewDeviceService tạo mới DeviceService
func NewDeviceService() (*DeviceService, error) {
	deviceCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Devices)
	if !exist {
		return nil, fmt.Errorf("failed to get devices collection: %v", common.ErrNotFound)
	}
	storeService, err := storesvc.NewStoreService()
	if err != nil {
		return nil, fmt.Errorf("failed to create store service: %v", err)
	}

	return &DeviceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Device](deviceCollection),
		storeService:         storeService,
	}, nil
}

// keyFilter là filter chuẩn theo khóa (store_number, device_code)
func keyFilter(storeNumber int, deviceCode string) bson.M {
	return bson.M{
		"store_number": storeNumber,
		"device_code":  deviceCode,
	}
}

// GetByKey tìm thiết bị theo khóa (store_number, device_code)
func (s *DeviceService) GetByKey(ctx context.Context, storeNumber int, deviceCode string) (*models.Device, error) {
	device, err := s.BaseServiceMongoImpl.FindOne(ctx, keyFilter(storeNumber, deviceCode), nil)
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// Register đăng ký thiết bị nếu chưa tồn tại.
// Bản ghi mới có status wait và data được seed từ default_banners /
// default_status của cửa hàng. Thiết bị đã tồn tại được trả về nguyên trạng,
// không ghi đè status do admin đã đặt.
func (s *DeviceService) Register(ctx context.Context, storeNumber int, deviceCode string, deviceName string) (*models.Device, error) {
	if existing, err := s.GetByKey(ctx, storeNumber, deviceCode); err == nil {
		return existing, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	store, err := s.storeService.GetByNumber(ctx, storeNumber)
	if err != nil {
		return nil, err
	}

	data := models.DeviceData{Banner: store.DefaultBanners}
	if store.DefaultStatus != nil {
		var statusInfo models.DeviceStatusInfo
		if _, err := utility.ConvertStruct(store.DefaultStatus, &statusInfo); err == nil {
			data.Status = &statusInfo
		}
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"store_number": storeNumber,
			"device_code":  deviceCode,
			"device_name":  deviceName,
			"data":         data,
		},
		SetOnInsert: map[string]interface{}{
			"status": models.StatusWait,
		},
	}

	device, err := s.BaseServiceMongoImpl.Upsert(ctx, keyFilter(storeNumber, deviceCode), updateData)
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// DeleteByKey xóa thiết bị theo khóa. Dùng khi operator reset kiosk thủ công.
func (s *DeviceService) DeleteByKey(ctx context.Context, storeNumber int, deviceCode string) error {
	return s.BaseServiceMongoImpl.DeleteOne(ctx, keyFilter(storeNumber, deviceCode))
}

// SetStatus chuyển trạng thái phê duyệt của thiết bị (thao tác của admin).
// statusInfo nil giữ nguyên nội dung màn hình chờ hiện tại.
func (s *DeviceService) SetStatus(ctx context.Context, storeNumber int, deviceCode string, status string, statusInfo *models.DeviceStatusInfo) (*models.Device, error) {
	set := map[string]interface{}{"status": status}
	if statusInfo != nil {
		set["data.status"] = statusInfo
	}
	device, err := s.BaseServiceMongoImpl.UpdateOne(ctx, keyFilter(storeNumber, deviceCode), &basesvc.UpdateData{Set: set}, nil)
	if err != nil {
		return nil, err
	}
	return &device, nil
}

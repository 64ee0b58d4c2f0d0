package kiosk

import (
	"context"
	"encoding/base64"
	"os"
	"strconv"
	"strings"
	"time"
)

// Các key lưu danh tính thiết bị trong Storage
const (
	StorageKeyDeviceCode = "DEVICE_CODE"
	StorageKeyDeviceName = "DEVICE_NAME"
)

// UnknownDeviceName dùng khi không đọc được tên thiết bị từ hệ điều hành
const UnknownDeviceName = "Unknown"

// Identity là danh tính một lần cài đặt của kiosk
type Identity struct {
	Code string
	Name string
}

// NameProvider trả về tên thiết bị do hệ điều hành báo cáo
type NameProvider func() (string, error)

// HostnameProvider là NameProvider mặc định, dùng hostname của máy
func HostnameProvider() (string, error) {
	return os.Hostname()
}

// DeviceRemover xóa bản ghi thiết bị phía backend khi reset danh tính
type DeviceRemover interface {
	DeleteByKey(ctx context.Context, storeNumber int, deviceCode string) error
}

// IdentityManager quản lý danh tính thiết bị: sinh mã một lần, phát hiện
// thiết bị bị đổi qua tên và reset khi operator đăng xuất thủ công.
type IdentityManager struct {
	storage  Storage
	nameFunc NameProvider
	remote   DeviceRemover
	now      func() time.Time
}

// NewIdentityManager tạo IdentityManager.
// remote có thể nil nếu không cần xóa bản ghi backend khi reset.
func NewIdentityManager(storage Storage, nameFunc NameProvider, remote DeviceRemover) *IdentityManager {
	if nameFunc == nil {
		nameFunc = HostnameProvider
	}
	return &IdentityManager{
		storage:  storage,
		nameFunc: nameFunc,
		remote:   remote,
		now:      time.Now,
	}
}

// GenerateCode sinh mã thiết bị từ epoch giây: base64 của chuỗi epoch,
// bỏ padding '=', lấy 8 ký tự cuối.
func GenerateCode(t time.Time) string {
	epoch := strconv.FormatInt(t.Unix(), 10)
	encoded := base64.StdEncoding.EncodeToString([]byte(epoch))
	encoded = strings.ReplaceAll(encoded, "=", "")
	if len(encoded) <= 8 {
		return encoded
	}
	return encoded[len(encoded)-8:]
}

// DeviceIdentity trả về danh tính đã lưu, sinh mới lần đầu hoặc khi tên
// thiết bị hệ điều hành báo cáo không còn khớp tên đã lưu (dấu hiệu máy
// bị thay thế, mã cũ không còn đáng tin).
// Lỗi đọc tên thiết bị không chặn luồng: fallback về "Unknown".
func (m *IdentityManager) DeviceIdentity() (Identity, error) {
	deviceName, err := m.nameFunc()
	if err != nil || deviceName == "" {
		deviceName = UnknownDeviceName
	}

	savedName, err := m.storage.Get(StorageKeyDeviceName)
	if err != nil {
		return Identity{}, err
	}
	if savedName != "" && savedName != deviceName {
		if err := m.storage.Remove(StorageKeyDeviceCode, StorageKeyDeviceName); err != nil {
			return Identity{}, err
		}
	}

	savedCode, err := m.storage.Get(StorageKeyDeviceCode)
	if err != nil {
		return Identity{}, err
	}
	if savedCode != "" {
		return Identity{Code: savedCode, Name: deviceName}, nil
	}

	newCode := GenerateCode(m.now())
	if err := m.storage.Set(StorageKeyDeviceCode, newCode); err != nil {
		return Identity{}, err
	}
	if err := m.storage.Set(StorageKeyDeviceName, deviceName); err != nil {
		return Identity{}, err
	}
	return Identity{Code: newCode, Name: deviceName}, nil
}

// Reset xóa danh tính cục bộ và, nếu biết cửa hàng và có mã cũ, xóa luôn
// bản ghi thiết bị phía backend. Dùng khi operator xác nhận đăng xuất.
func (m *IdentityManager) Reset(ctx context.Context, storeNumber int) error {
	code, err := m.storage.Get(StorageKeyDeviceCode)
	if err != nil {
		return err
	}
	if err := m.storage.Remove(StorageKeyDeviceCode, StorageKeyDeviceName); err != nil {
		return err
	}
	if storeNumber > 0 && code != "" && m.remote != nil {
		return m.remote.DeleteByKey(ctx, storeNumber, code)
	}
	return nil
}

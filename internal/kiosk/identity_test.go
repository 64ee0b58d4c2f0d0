// Package kiosk - Test danh tính thiết bị: sinh mã, tái sử dụng và reset khi đổi tên.
package kiosk

import (
	"context"
	"testing"
	"time"
)

type fakeRemover struct {
	calls []struct {
		storeNumber int
		deviceCode  string
	}
}

func (f *fakeRemover) DeleteByKey(ctx context.Context, storeNumber int, deviceCode string) error {
	f.calls = append(f.calls, struct {
		storeNumber int
		deviceCode  string
	}{storeNumber, deviceCode})
	return nil
}

func newTestIdentity(name string) (*IdentityManager, *MemoryStorage, *fakeRemover) {
	storage := NewMemoryStorage()
	remover := &fakeRemover{}
	m := NewIdentityManager(storage, func() (string, error) { return name, nil }, remover)
	return m, storage, remover
}

func TestGenerateCode_DeterministicEightChars(t *testing.T) {
	at := time.Unix(1700000000, 0)
	code := GenerateCode(at)

	if len(code) != 8 {
		t.Fatalf("mã thiết bị phải dài 8 ký tự, được %d (%q)", len(code), code)
	}
	if code != GenerateCode(at) {
		t.Error("cùng thời điểm phải sinh cùng mã")
	}
	// base64("1700000000") = "MTcwMDAwMDAwMA==", bỏ '=' lấy 8 ký tự cuối
	if code != "AwMDAwMA" {
		t.Errorf("mã không khớp quy tắc base64 epoch: %q", code)
	}
}

func TestDeviceIdentity_PersistsAcrossCalls(t *testing.T) {
	m, _, _ := newTestIdentity("kiosk-01")

	first, err := m.DeviceIdentity()
	if err != nil {
		t.Fatalf("DeviceIdentity lỗi: %v", err)
	}
	second, err := m.DeviceIdentity()
	if err != nil {
		t.Fatalf("DeviceIdentity lần hai lỗi: %v", err)
	}

	if first.Code == "" {
		t.Fatal("lần đầu phải sinh mã không rỗng")
	}
	if second.Code != first.Code {
		t.Errorf("mã phải giữ nguyên giữa các lần gọi: %q != %q", second.Code, first.Code)
	}
	if first.Name != "kiosk-01" {
		t.Errorf("tên thiết bị phải là kiosk-01, được %q", first.Name)
	}
}

func TestDeviceIdentity_NameMismatchRegenerates(t *testing.T) {
	storage := NewMemoryStorage()
	name := "kiosk-01"
	m := NewIdentityManager(storage, func() (string, error) { return name, nil }, nil)

	// Mã sinh từ epoch giây nên hai lần gọi trong cùng giây cho cùng mã;
	// cố định hai thời điểm khác nhau để quan sát được việc sinh lại.
	at := time.Unix(1700000000, 0)
	m.now = func() time.Time { return at }

	first, err := m.DeviceIdentity()
	if err != nil {
		t.Fatalf("DeviceIdentity lỗi: %v", err)
	}

	// Máy bị thay thế: hệ điều hành báo tên khác
	name = "kiosk-02"
	at = time.Unix(1700000001, 0)
	second, err := m.DeviceIdentity()
	if err != nil {
		t.Fatalf("DeviceIdentity sau đổi tên lỗi: %v", err)
	}

	if second.Code == first.Code {
		t.Error("đổi tên thiết bị phải sinh mã mới")
	}
	if second.Name != "kiosk-02" {
		t.Errorf("tên mới phải được lưu, được %q", second.Name)
	}
}

func TestDeviceIdentity_UnknownNameFallback(t *testing.T) {
	storage := NewMemoryStorage()
	m := NewIdentityManager(storage, func() (string, error) { return "", nil }, nil)

	identity, err := m.DeviceIdentity()
	if err != nil {
		t.Fatalf("DeviceIdentity lỗi: %v", err)
	}
	if identity.Name != UnknownDeviceName {
		t.Errorf("không đọc được tên phải fallback %q, được %q", UnknownDeviceName, identity.Name)
	}
}

func TestReset_RemovesLocalAndRemote(t *testing.T) {
	m, storage, remover := newTestIdentity("kiosk-01")

	identity, err := m.DeviceIdentity()
	if err != nil {
		t.Fatalf("DeviceIdentity lỗi: %v", err)
	}

	if err := m.Reset(context.Background(), 7); err != nil {
		t.Fatalf("Reset lỗi: %v", err)
	}

	if v, _ := storage.Get(StorageKeyDeviceCode); v != "" {
		t.Errorf("Reset phải xóa mã đã lưu, còn %q", v)
	}
	if len(remover.calls) != 1 {
		t.Fatalf("Reset phải xóa bản ghi backend đúng 1 lần, được %d", len(remover.calls))
	}
	if remover.calls[0].storeNumber != 7 || remover.calls[0].deviceCode != identity.Code {
		t.Errorf("xóa backend sai khóa: store %d, code %q", remover.calls[0].storeNumber, remover.calls[0].deviceCode)
	}
}

func TestReset_NoRemoteWithoutStore(t *testing.T) {
	m, _, remover := newTestIdentity("kiosk-01")
	if _, err := m.DeviceIdentity(); err != nil {
		t.Fatalf("DeviceIdentity lỗi: %v", err)
	}

	if err := m.Reset(context.Background(), 0); err != nil {
		t.Fatalf("Reset lỗi: %v", err)
	}
	if len(remover.calls) != 0 {
		t.Errorf("chưa resolve cửa hàng thì không được gọi xóa backend, gọi %d lần", len(remover.calls))
	}
}

// Package kiosk - Test FileStorage giữ được dữ liệu qua nhiều instance.
package kiosk

import "testing"

func TestFileStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("NewFileStorage lỗi: %v", err)
	}
	if err := s.Set(StorageKeyDeviceCode, "abc12345"); err != nil {
		t.Fatalf("Set lỗi: %v", err)
	}

	// Instance mới đọc cùng thư mục phải thấy giá trị đã ghi
	s2, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("NewFileStorage lần hai lỗi: %v", err)
	}
	got, err := s2.Get(StorageKeyDeviceCode)
	if err != nil {
		t.Fatalf("Get lỗi: %v", err)
	}
	if got != "abc12345" {
		t.Errorf("giá trị phải giữ qua instance mới, được %q", got)
	}
}

func TestFileStorage_MissingKeyReturnsEmpty(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage lỗi: %v", err)
	}
	got, err := s.Get("KHONG_TON_TAI")
	if err != nil {
		t.Fatalf("Get key thiếu không được lỗi: %v", err)
	}
	if got != "" {
		t.Errorf("key thiếu phải trả về chuỗi rỗng, được %q", got)
	}
}

func TestFileStorage_Remove(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage lỗi: %v", err)
	}
	if err := s.Set(StorageKeyDeviceCode, "abc"); err != nil {
		t.Fatalf("Set lỗi: %v", err)
	}
	if err := s.Set(StorageKeyDeviceName, "kiosk-01"); err != nil {
		t.Fatalf("Set lỗi: %v", err)
	}
	if err := s.Remove(StorageKeyDeviceCode, StorageKeyDeviceName); err != nil {
		t.Fatalf("Remove lỗi: %v", err)
	}

	if v, _ := s.Get(StorageKeyDeviceCode); v != "" {
		t.Errorf("Remove phải xóa mã, còn %q", v)
	}
	if v, _ := s.Get(StorageKeyDeviceName); v != "" {
		t.Errorf("Remove phải xóa tên, còn %q", v)
	}
}

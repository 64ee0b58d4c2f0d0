// Package kiosk chứa lõi phản ứng của máy kiosk: danh tính thiết bị,
// giỏ hàng, state machine phiên thiết bị và luồng gửi đơn.
package kiosk

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage là kho key-value bền vững cho trạng thái cục bộ của kiosk
// (mã thiết bị, tên thiết bị). Key không tồn tại trả về chuỗi rỗng, không lỗi.
type Storage interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Remove(keys ...string) error
}

// FileStorage lưu trạng thái vào một file JSON trong thư mục state của kiosk.
// Ghi nguyên file mỗi lần thay đổi; dữ liệu chỉ vài key nên không cần gì phức tạp hơn.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage tạo FileStorage tại dir/state.json, tạo thư mục nếu chưa có
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("không tạo được thư mục state %s: %w", dir, err)
	}
	return &FileStorage{path: filepath.Join(dir, "state.json")}, nil
}

// Get đọc giá trị của key, trả về chuỗi rỗng nếu key chưa có
func (s *FileStorage) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

// Set ghi giá trị cho key
func (s *FileStorage) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data[key] = value
	return s.save(data)
}

// Remove xóa nhiều key cùng lúc (dùng khi reset danh tính thiết bị)
func (s *FileStorage) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(data, key)
	}
	return s.save(data)
}

func (s *FileStorage) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("không đọc được file state: %w", err)
	}
	data := map[string]string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("file state hỏng: %w", err)
		}
	}
	return data, nil
}

func (s *FileStorage) save(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("không ghi được file state: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// MemoryStorage là Storage trong bộ nhớ, dùng cho test
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStorage tạo MemoryStorage rỗng
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]string{}}
}

// Get đọc giá trị của key
func (s *MemoryStorage) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

// Set ghi giá trị cho key
func (s *MemoryStorage) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Remove xóa nhiều key
func (s *MemoryStorage) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

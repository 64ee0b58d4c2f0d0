package kiosk

import "context"

// Platform là các lời gọi xuống hệ điều hành của máy kiosk: khóa máy vào
// một app, kiểm tra accessibility service và tạo shortcut màn hình chính.
// Lõi không phụ thuộc giá trị trả về ngoài boolean/error.
type Platform interface {
	EnableKiosk(ctx context.Context) error
	DisableKiosk(ctx context.Context) error
	IsAccessibilityEnabled(ctx context.Context) (bool, error)
	OpenAccessibilitySettings(ctx context.Context) error
	CreateHomeShortcut(ctx context.Context) error
}

// NoopPlatform là Platform không làm gì, dùng khi chạy ngoài máy kiosk
// thật (môi trường dev, test).
type NoopPlatform struct{}

// EnableKiosk không làm gì
func (NoopPlatform) EnableKiosk(ctx context.Context) error { return nil }

// DisableKiosk không làm gì
func (NoopPlatform) DisableKiosk(ctx context.Context) error { return nil }

// IsAccessibilityEnabled luôn trả về true
func (NoopPlatform) IsAccessibilityEnabled(ctx context.Context) (bool, error) { return true, nil }

// OpenAccessibilitySettings không làm gì
func (NoopPlatform) OpenAccessibilitySettings(ctx context.Context) error { return nil }

// CreateHomeShortcut không làm gì
func (NoopPlatform) CreateHomeShortcut(ctx context.Context) error { return nil }

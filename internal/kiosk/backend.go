package kiosk

import (
	"context"
	"sync"

	authmodels "meta_kiosk/internal/api/auth/models"
	authsvc "meta_kiosk/internal/api/auth/service"
	devicemodels "meta_kiosk/internal/api/device/models"
	devicesvc "meta_kiosk/internal/api/device/service"
	menumodels "meta_kiosk/internal/api/menu/models"
	menusvc "meta_kiosk/internal/api/menu/service"
	ordermodels "meta_kiosk/internal/api/order/models"
	ordersvc "meta_kiosk/internal/api/order/service"
	storemodels "meta_kiosk/internal/api/store/models"
	storesvc "meta_kiosk/internal/api/store/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceBackend nối lõi kiosk với các service domain trong cùng tiến trình.
// Nó triển khai Backend cho machine, OrderBackend cho checkout, MenuSource
// cho cache menu và DeviceRemover cho reset danh tính.
//
// Phiên operator được giữ trong bộ nhớ: đăng nhập qua local API gọi
// SetSession, đăng xuất gọi ClearSession rồi machine chạy lại resolution.
type ServiceBackend struct {
	mu      sync.Mutex
	account *Account

	adminService    *authsvc.AdminService
	storeService    *storesvc.StoreService
	deviceService   *devicesvc.DeviceService
	orderService    *ordersvc.OrderService
	menuService     *menusvc.MenuService
	categoryService *menusvc.MenuCategoryService
}

// NewServiceBackend tạo backend với đầy đủ service domain
func NewServiceBackend() (*ServiceBackend, error) {
	adminService, err := authsvc.NewAdminService()
	if err != nil {
		return nil, err
	}
	storeService, err := storesvc.NewStoreService()
	if err != nil {
		return nil, err
	}
	deviceService, err := devicesvc.NewDeviceService()
	if err != nil {
		return nil, err
	}
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, err
	}
	menuService, err := menusvc.NewMenuService()
	if err != nil {
		return nil, err
	}
	categoryService, err := menusvc.NewMenuCategoryService()
	if err != nil {
		return nil, err
	}
	return &ServiceBackend{
		adminService:    adminService,
		storeService:    storeService,
		deviceService:   deviceService,
		orderService:    orderService,
		menuService:     menuService,
		categoryService: categoryService,
	}, nil
}

// SetSession ghi nhận operator vừa đăng nhập
func (b *ServiceBackend) SetSession(account *Account) {
	b.mu.Lock()
	b.account = account
	b.mu.Unlock()
}

// ClearSession xóa phiên operator (đăng xuất)
func (b *ServiceBackend) ClearSession() {
	b.SetSession(nil)
}

// CurrentSession trả về phiên operator hiện tại, nil nếu chưa đăng nhập
func (b *ServiceBackend) CurrentSession(ctx context.Context) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.account == nil {
		return nil, nil
	}
	account := *b.account
	return &account, nil
}

// AdminByUserID tra admin của user đã đăng nhập
func (b *ServiceBackend) AdminByUserID(ctx context.Context, userID primitive.ObjectID) (*authmodels.Admin, error) {
	return b.adminService.GetAdminByUserID(ctx, userID)
}

// StoreByNumber tra cấu hình cửa hàng
func (b *ServiceBackend) StoreByNumber(ctx context.Context, storeNumber int) (*storemodels.Store, error) {
	return b.storeService.GetByNumber(ctx, storeNumber)
}

// GetDevice đọc bản ghi thiết bị theo khóa
func (b *ServiceBackend) GetDevice(ctx context.Context, storeNumber int, deviceCode string) (*devicemodels.Device, error) {
	return b.deviceService.GetByKey(ctx, storeNumber, deviceCode)
}

// RegisterDevice đăng ký thiết bị nếu chưa có
func (b *ServiceBackend) RegisterDevice(ctx context.Context, storeNumber int, deviceCode string, deviceName string) (*devicemodels.Device, error) {
	return b.deviceService.Register(ctx, storeNumber, deviceCode, deviceName)
}

// DeleteByKey xóa bản ghi thiết bị (dùng khi reset danh tính)
func (b *ServiceBackend) DeleteByKey(ctx context.Context, storeNumber int, deviceCode string) error {
	return b.deviceService.DeleteByKey(ctx, storeNumber, deviceCode)
}

// WatchDevice mở change stream theo dõi thiết bị
func (b *ServiceBackend) WatchDevice(ctx context.Context, storeNumber int, deviceCode string, onChange func(*devicemodels.Device)) (func(), error) {
	return b.deviceService.Watch(ctx, storeNumber, deviceCode, onChange)
}

// NextOrderNumber cấp số thứ tự đơn
func (b *ServiceBackend) NextOrderNumber(ctx context.Context, storeNumber int, date string) (int, error) {
	return b.orderService.NextOrderNumber(ctx, storeNumber, date)
}

// CreateOrder tạo đơn hàng
func (b *ServiceBackend) CreateOrder(ctx context.Context, order ordermodels.Order) (*ordermodels.Order, error) {
	return b.orderService.CreateOrder(ctx, order)
}

// GetMenu đọc toàn bộ món version hiện hành của cửa hàng
func (b *ServiceBackend) GetMenu(ctx context.Context, storeNumber int) ([]menumodels.Menu, error) {
	return b.menuService.GetMenu(ctx, storeNumber)
}

// GetCategories đọc danh mục theo thứ tự hiển thị
func (b *ServiceBackend) GetCategories(ctx context.Context, storeNumber int) ([]menumodels.MenuCategory, error) {
	return b.categoryService.GetCategories(ctx, storeNumber)
}

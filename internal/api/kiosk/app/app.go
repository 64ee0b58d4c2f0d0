// Package kioskapp lắp ráp lõi kiosk thành một instance dùng chung cho cả
// tiến trình: giỏ hàng, bàn phím số điện thoại, state machine phiên thiết
// bị, luồng checkout và cache menu, tất cả nối qua ServiceBackend.
package kioskapp

import (
	"context"
	"sync"

	"meta_kiosk/config"
	"meta_kiosk/internal/kiosk"

	"github.com/sirupsen/logrus"
)

// logNavigator đẩy lệnh điều hướng ra log. Tiến trình này không tự vẽ màn
// hình; UI shell đọc route hiện tại qua local API và render tương ứng.
type logNavigator struct{}

func (logNavigator) Replace(route string, params map[string]interface{}) {
	logrus.WithFields(logrus.Fields{
		"route":  route,
		"params": params,
	}).Info("Kiosk: chuyển màn hình")
}

// App gom các thành phần runtime của kiosk
type App struct {
	Backend  *kiosk.ServiceBackend
	Identity *kiosk.IdentityManager
	Nav      *kiosk.OnceNavigator
	Machine  *kiosk.Machine
	Cart     *kiosk.Cart
	Phone    *kiosk.PhoneInput
	Checkout *kiosk.Checkout

	mu        sync.Mutex
	menu      *kiosk.MenuCache
	menuStore int
}

var (
	appInstance *App
	appOnce     sync.Once
	appErr      error
)

// InitApp khởi tạo App singleton từ cấu hình. Gọi một lần lúc boot, sau khi
// đã kết nối cơ sở dữ liệu và đăng ký registry collection.
func InitApp(cfg *config.Configuration) (*App, error) {
	appOnce.Do(func() {
		appInstance, appErr = newApp(cfg)
	})
	return appInstance, appErr
}

// GetApp trả về App singleton, nil nếu InitApp chưa chạy thành công
func GetApp() *App {
	return appInstance
}

func newApp(cfg *config.Configuration) (*App, error) {
	backend, err := kiosk.NewServiceBackend()
	if err != nil {
		return nil, err
	}
	storage, err := kiosk.NewFileStorage(cfg.KioskStateDir)
	if err != nil {
		return nil, err
	}

	identity := kiosk.NewIdentityManager(storage, nil, backend)
	nav := kiosk.NewOnceNavigator(logNavigator{})
	machine := kiosk.NewMachine(backend, identity, nav, kiosk.NoopPlatform{}, cfg.ReRegisterDebounce)
	cart := kiosk.NewCart()
	phone := kiosk.NewPhoneInput()
	checkout := kiosk.NewCheckout(backend, cart, cfg.OrderCompleteTimeout)

	return &App{
		Backend:  backend,
		Identity: identity,
		Nav:      nav,
		Machine:  machine,
		Cart:     cart,
		Phone:    phone,
		Checkout: checkout,
	}, nil
}

// SignIn ghi nhận phiên operator rồi chạy lại chuỗi resolution
func (a *App) SignIn(ctx context.Context, account *kiosk.Account) {
	a.Backend.SetSession(account)
	a.Machine.Setup(ctx)
}

// SignOut đăng xuất operator. resetIdentity true xóa luôn danh tính thiết
// bị cục bộ và bản ghi thiết bị phía backend (thao tác operator xác nhận).
func (a *App) SignOut(ctx context.Context, resetIdentity bool) error {
	var err error
	if resetIdentity {
		err = a.Identity.Reset(ctx, a.Machine.StoreNumber())
	}
	a.Backend.ClearSession()
	a.Machine.SignOut(ctx)
	a.Cart.Clear()
	a.Phone.Reset()
	return err
}

// MenuCache trả về cache menu của cửa hàng đã resolve, nạp lần đầu khi gọi.
// Đổi cửa hàng (đăng nhập tài khoản khác) tạo cache mới.
func (a *App) MenuCache(ctx context.Context) (*kiosk.MenuCache, error) {
	storeNumber := a.Machine.StoreNumber()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.menu != nil && a.menuStore == storeNumber {
		return a.menu, nil
	}

	cache := kiosk.NewMenuCache(a.Backend, storeNumber)
	if err := cache.Load(ctx); err != nil {
		return nil, err
	}
	cache.Subscribe()

	a.menu = cache
	a.menuStore = storeNumber
	return cache, nil
}

// Close giải phóng tài nguyên runtime khi tắt kiosk
func (a *App) Close() {
	a.Machine.Close()
}

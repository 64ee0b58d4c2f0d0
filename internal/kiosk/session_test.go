// Package kiosk - Test state machine phiên thiết bị: resolution, dedupe push và đăng ký lại.
package kiosk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	authmodels "meta_kiosk/internal/api/auth/models"
	devicemodels "meta_kiosk/internal/api/device/models"
	storemodels "meta_kiosk/internal/api/store/models"
	"meta_kiosk/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBackend struct {
	mu            sync.Mutex
	account       *Account
	admin         *authmodels.Admin
	adminErr      error
	store         *storemodels.Store
	device        *devicemodels.Device
	registerCalls int
	watchCalls    int
	unsubscribes  int
	onChange      func(*devicemodels.Device)
}

func (b *fakeBackend) CurrentSession(ctx context.Context) (*Account, error) {
	return b.account, nil
}

func (b *fakeBackend) AdminByUserID(ctx context.Context, userID primitive.ObjectID) (*authmodels.Admin, error) {
	if b.adminErr != nil {
		return nil, b.adminErr
	}
	if b.admin == nil {
		return nil, common.ErrNotFound
	}
	return b.admin, nil
}

func (b *fakeBackend) StoreByNumber(ctx context.Context, storeNumber int) (*storemodels.Store, error) {
	if b.store == nil {
		return nil, common.ErrNotFound
	}
	return b.store, nil
}

func (b *fakeBackend) GetDevice(ctx context.Context, storeNumber int, deviceCode string) (*devicemodels.Device, error) {
	if b.device == nil {
		return nil, common.ErrNotFound
	}
	return b.device, nil
}

func (b *fakeBackend) RegisterDevice(ctx context.Context, storeNumber int, deviceCode string, deviceName string) (*devicemodels.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.registerCalls++
	return b.device, nil
}

func (b *fakeBackend) WatchDevice(ctx context.Context, storeNumber int, deviceCode string, onChange func(*devicemodels.Device)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watchCalls++
	b.onChange = onChange
	return func() {
		b.mu.Lock()
		b.unsubscribes++
		b.mu.Unlock()
	}, nil
}

func (b *fakeBackend) registered() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registerCalls
}

type countPlatform struct {
	NoopPlatform
	enableCalls int
}

func (p *countPlatform) EnableKiosk(ctx context.Context) error {
	p.enableCalls++
	return nil
}

type paramNav struct {
	mu     sync.Mutex
	routes []string
	params []map[string]interface{}
}

func (r *paramNav) Replace(route string, params map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
	r.params = append(r.params, params)
}

func (r *paramNav) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.routes)
}

func (r *paramNav) last() (string, map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return "", nil
	}
	return r.routes[len(r.routes)-1], r.params[len(r.params)-1]
}

func waitDevice(status string, reason string) *devicemodels.Device {
	return &devicemodels.Device{
		StoreNumber: 7,
		DeviceCode:  "abc",
		Status:      status,
		Data: devicemodels.DeviceData{
			Status: &devicemodels.DeviceStatusInfo{Reason: reason},
		},
	}
}

func newTestMachine(backend *fakeBackend) (*Machine, *paramNav, *countPlatform) {
	target := &paramNav{}
	nav := NewOnceNavigator(target)
	platform := &countPlatform{}
	identity := NewIdentityManager(NewMemoryStorage(), func() (string, error) { return "kiosk-01", nil }, nil)
	machine := NewMachine(backend, identity, nav, platform, 30*time.Millisecond)
	return machine, target, platform
}

func kioskBackend() *fakeBackend {
	return &fakeBackend{
		account: &Account{UserID: primitive.NewObjectID(), Email: "op@store.kr"},
		admin: &authmodels.Admin{
			StoreNumber: 7,
			Access:      map[string]bool{authmodels.CapabilityKiosk: true},
		},
		store: &storemodels.Store{StoreNumber: 7, Email: "op@store.kr"},
	}
}

func TestSetup_NoSessionGoesToLogin(t *testing.T) {
	backend := &fakeBackend{}
	machine, target, _ := newTestMachine(backend)

	machine.Setup(context.Background())

	if machine.CurrentState() != StateUnauthenticated {
		t.Errorf("không có phiên phải về StateUnauthenticated, được %v", machine.CurrentState())
	}
	route, _ := target.last()
	if route != RouteLogin {
		t.Errorf("phải điều hướng về %q, được %q", RouteLogin, route)
	}
}

func TestSetup_NoKioskCapabilityFails(t *testing.T) {
	backend := kioskBackend()
	backend.admin.Access = map[string]bool{}
	machine, target, _ := newTestMachine(backend)

	machine.Setup(context.Background())

	if machine.CurrentState() != StateError {
		t.Fatalf("thiếu quyền kiosk phải về StateError, được %v", machine.CurrentState())
	}
	route, params := target.last()
	if route != RouteError {
		t.Fatalf("phải điều hướng về %q, được %q", RouteError, route)
	}
	if params["code"] != common.StatusForbidden {
		t.Errorf("mã lỗi phải là 403, được %v", params["code"])
	}
}

func TestSetup_AdminLookupErrorIsInternal(t *testing.T) {
	backend := kioskBackend()
	backend.adminErr = errors.New("connection refused")
	machine, target, _ := newTestMachine(backend)

	machine.Setup(context.Background())

	if machine.CurrentState() != StateError {
		t.Fatalf("lỗi tra admin phải về StateError, được %v", machine.CurrentState())
	}
	_, params := target.last()
	// Lỗi hạ tầng không phải là bị từ chối quyền: mã phải là 500, không phải 403
	if params["code"] != common.StatusInternalServerError {
		t.Errorf("mã lỗi phải là 500, được %v", params["code"])
	}
}

func TestSetup_StoreEmailMismatchFails(t *testing.T) {
	backend := kioskBackend()
	backend.store.Email = "khac@store.kr"
	machine, target, _ := newTestMachine(backend)

	machine.Setup(context.Background())

	if machine.CurrentState() != StateError {
		t.Fatalf("email cửa hàng lệch phải về StateError, được %v", machine.CurrentState())
	}
	_, params := target.last()
	if params["code"] != common.StatusBadRequest {
		t.Errorf("mã lỗi phải là 400, được %v", params["code"])
	}
}

func TestSetup_WaitDeviceNavigatesWait(t *testing.T) {
	backend := kioskBackend()
	backend.device = waitDevice(devicemodels.StatusWait, "")
	machine, target, _ := newTestMachine(backend)

	machine.Setup(context.Background())

	if machine.CurrentState() != StateWait {
		t.Errorf("thiết bị wait phải về StateWait, được %v", machine.CurrentState())
	}
	route, _ := target.last()
	if route != RouteWait {
		t.Errorf("phải ở màn hình %q, được %q", RouteWait, route)
	}
	if backend.watchCalls != 1 {
		t.Errorf("phải mở đúng 1 subscription, được %d", backend.watchCalls)
	}
	if machine.StoreNumber() != 7 {
		t.Errorf("storeNumber phải là 7, được %d", machine.StoreNumber())
	}
}

func TestHandleDevice_DuplicatePushIgnored(t *testing.T) {
	backend := kioskBackend()
	backend.device = waitDevice(devicemodels.StatusWait, "")
	machine, target, _ := newTestMachine(backend)

	machine.Setup(context.Background())
	before := target.count()

	// Backend phát lại đúng trạng thái đang áp dụng
	backend.onChange(waitDevice(devicemodels.StatusWait, ""))

	if target.count() != before {
		t.Errorf("push trùng không được dispatch thêm: %d -> %d", before, target.count())
	}
}

func TestHandleDevice_WaitToReady(t *testing.T) {
	backend := kioskBackend()
	backend.device = waitDevice(devicemodels.StatusWait, "")
	machine, target, platform := newTestMachine(backend)

	machine.Setup(context.Background())
	backend.onChange(waitDevice(devicemodels.StatusReady, ""))

	if machine.CurrentState() != StateReady {
		t.Fatalf("duyệt xong phải về StateReady, được %v", machine.CurrentState())
	}
	route, _ := target.last()
	if route != RouteFront {
		t.Errorf("phải chuyển tới %q, được %q", RouteFront, route)
	}
	if platform.enableCalls != 1 {
		t.Errorf("EnableKiosk phải gọi đúng 1 lần, được %d", platform.enableCalls)
	}

	// Push ready lặp lại không kích hoạt lại
	backend.onChange(waitDevice(devicemodels.StatusReady, ""))
	if platform.enableCalls != 1 {
		t.Errorf("push ready trùng không được bật kiosk lại, được %d lần", platform.enableCalls)
	}
}

func TestHandleDevice_BlockedDefaultReason(t *testing.T) {
	backend := kioskBackend()
	backend.device = waitDevice(devicemodels.StatusWait, "")
	machine, target, _ := newTestMachine(backend)

	machine.Setup(context.Background())
	backend.onChange(waitDevice(devicemodels.StatusBlocked, ""))

	if machine.CurrentState() != StateBlocked {
		t.Fatalf("thiết bị bị chặn phải về StateBlocked, được %v", machine.CurrentState())
	}
	route, params := target.last()
	if route != RouteWait {
		t.Errorf("bị chặn vẫn hiển thị màn hình %q, được %q", RouteWait, route)
	}
	if params["reason"] != "차단된 기기입니다." {
		t.Errorf("thiếu lý do phải dùng mặc định, được %v", params["reason"])
	}
}

func TestHandleDevice_NilTriggersSingleReRegister(t *testing.T) {
	backend := kioskBackend()
	backend.device = waitDevice(devicemodels.StatusWait, "")
	machine, _, _ := newTestMachine(backend)

	machine.Setup(context.Background())
	base := backend.registered()

	// Hai delete event sát nhau chỉ được đăng ký lại một lần
	machine.HandleDevice(context.Background(), nil)
	machine.HandleDevice(context.Background(), nil)

	if got := backend.registered(); got != base+1 {
		t.Errorf("trong khoảng debounce chỉ được đăng ký lại 1 lần: %d -> %d", base, got)
	}

	// Hết debounce thì delete tiếp theo lại được xử lý
	time.Sleep(60 * time.Millisecond)
	machine.HandleDevice(context.Background(), nil)
	if got := backend.registered(); got != base+2 {
		t.Errorf("sau debounce phải đăng ký lại được lần nữa: %d", got)
	}
}

func TestSignOut_TearsDownSubscription(t *testing.T) {
	backend := kioskBackend()
	backend.device = waitDevice(devicemodels.StatusWait, "")
	machine, target, _ := newTestMachine(backend)

	machine.Setup(context.Background())
	machine.SignOut(context.Background())

	if machine.CurrentState() != StateUnauthenticated {
		t.Errorf("SignOut phải về StateUnauthenticated, được %v", machine.CurrentState())
	}
	if machine.StoreNumber() != 0 {
		t.Errorf("SignOut phải quên cửa hàng, còn %d", machine.StoreNumber())
	}
	if backend.unsubscribes != 1 {
		t.Errorf("SignOut phải hủy subscription đúng 1 lần, được %d", backend.unsubscribes)
	}
	route, _ := target.last()
	if route != RouteLogin {
		t.Errorf("phải quay về %q, được %q", RouteLogin, route)
	}
}

package kiosk

import (
	"context"
	"errors"
	"sync"
	"time"

	authmodels "meta_kiosk/internal/api/auth/models"
	devicemodels "meta_kiosk/internal/api/device/models"
	storemodels "meta_kiosk/internal/api/store/models"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/utility"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// State là trạng thái của phiên thiết bị kiosk
type State string

// Các trạng thái của machine
const (
	StateUnauthenticated State = "unauthenticated" // Chưa có tài khoản đăng nhập
	StateResolving       State = "resolving"       // Đang chạy chuỗi resolution
	StateWait            State = "wait"            // Thiết bị chờ admin duyệt
	StateBlocked         State = "blocked"         // Thiết bị bị chặn
	StateReady           State = "ready"           // Được phép nhận đơn
	StateError           State = "error"           // Lỗi terminal, operator phải xử lý
)

// Thông báo tiếng Hàn hiển thị trực tiếp trên màn hình kiosk
const (
	msgNoKioskAccess  = "KIOSK 접근 권한 없음"
	msgStoreMismatch  = "스토어 설정 오류"
	msgBlockedDefault = "차단된 기기입니다."
	msgUnknownError   = "알 수 없는 오류"
)

// DefaultReRegisterDebounce là khoảng chặn đăng ký lại liên tiếp khi
// backend đẩy nhiều delete event sát nhau
const DefaultReRegisterDebounce = 1500 * time.Millisecond

// Account là phiên tài khoản operator đang đăng nhập trên kiosk
type Account struct {
	UserID primitive.ObjectID
	Email  string
}

// Backend gom các thao tác backend mà machine cần. Triển khai thật nối
// vào các service domain; test thay bằng bản giả.
type Backend interface {
	CurrentSession(ctx context.Context) (*Account, error)
	AdminByUserID(ctx context.Context, userID primitive.ObjectID) (*authmodels.Admin, error)
	StoreByNumber(ctx context.Context, storeNumber int) (*storemodels.Store, error)
	GetDevice(ctx context.Context, storeNumber int, deviceCode string) (*devicemodels.Device, error)
	RegisterDevice(ctx context.Context, storeNumber int, deviceCode string, deviceName string) (*devicemodels.Device, error)
	WatchDevice(ctx context.Context, storeNumber int, deviceCode string, onChange func(*devicemodels.Device)) (func(), error)
}

// Machine là state machine phiên thiết bị: xác thực operator, resolve cửa
// hàng và trạng thái duyệt của thiết bị, rồi điều hướng màn hình tương ứng.
//
// Mọi lỗi trong chuỗi resolution đưa machine về StateError, không tự retry;
// riêng thiết bị bị xóa từ xa được tự đăng ký lại (có debounce).
type Machine struct {
	backend  Backend
	identity *IdentityManager
	nav      *OnceNavigator
	platform Platform
	debounce time.Duration

	mu            sync.Mutex
	state         State
	storeNumber   int
	deviceCode    string
	deviceName    string
	lastStatus    string
	lastContent   string
	currentBanner interface{}
	isSettingUp   bool
	reRegistering bool
	unsubscribe   func()
}

// NewMachine tạo machine ở trạng thái chưa xác thực.
// debounce <= 0 dùng DefaultReRegisterDebounce.
func NewMachine(backend Backend, identity *IdentityManager, nav *OnceNavigator, platform Platform, debounce time.Duration) *Machine {
	if debounce <= 0 {
		debounce = DefaultReRegisterDebounce
	}
	if platform == nil {
		platform = NoopPlatform{}
	}
	return &Machine{
		backend:  backend,
		identity: identity,
		nav:      nav,
		platform: platform,
		debounce: debounce,
		state:    StateUnauthenticated,
	}
}

// Setup chạy toàn bộ chuỗi resolution từ đầu. Latch isSettingUp chặn hai
// lần resolution chồng lên nhau; lần gọi trong lúc đang chạy bị bỏ qua.
func (m *Machine) Setup(ctx context.Context) {
	m.mu.Lock()
	if m.isSettingUp {
		m.mu.Unlock()
		return
	}
	m.isSettingUp = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.isSettingUp = false
		m.mu.Unlock()
	}()

	if err := m.resolve(ctx); err != nil {
		message := err.Error()
		if message == "" {
			message = msgUnknownError
		}
		m.failWith(common.StatusInternalServerError, message)
	}
}

func (m *Machine) resolve(ctx context.Context) error {
	m.setState(StateResolving)

	account, err := m.backend.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if account == nil {
		m.SignOut(ctx)
		return nil
	}

	admin, err := m.backend.AdminByUserID(ctx, account.UserID)
	if err != nil {
		// Chỉ thiếu bản ghi admin mới là bị từ chối; lỗi khác trả lên Setup
		if errors.Is(err, common.ErrNotFound) {
			m.failWith(common.StatusForbidden, msgNoKioskAccess)
			return nil
		}
		return err
	}
	if !admin.HasCapability(authmodels.CapabilityKiosk) {
		m.failWith(common.StatusForbidden, msgNoKioskAccess)
		return nil
	}

	storeNumber := admin.StoreNumber
	m.mu.Lock()
	m.storeNumber = storeNumber
	m.mu.Unlock()

	store, err := m.backend.StoreByNumber(ctx, storeNumber)
	if err != nil {
		return err
	}
	if store.Email != account.Email {
		m.failWith(common.StatusBadRequest, msgStoreMismatch)
		return nil
	}

	identity, err := m.identity.DeviceIdentity()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.deviceCode = identity.Code
	m.deviceName = identity.Name
	m.mu.Unlock()

	if _, err := m.backend.RegisterDevice(ctx, storeNumber, identity.Code, identity.Name); err != nil {
		return err
	}

	device, err := m.backend.GetDevice(ctx, storeNumber, identity.Code)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	m.HandleDevice(ctx, device)

	unsubscribe, err := m.backend.WatchDevice(ctx, storeNumber, identity.Code, func(d *devicemodels.Device) {
		m.HandleDevice(context.Background(), d)
	})
	if err != nil {
		return err
	}
	m.mu.Lock()
	old := m.unsubscribe
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
	if old != nil {
		old()
	}
	return nil
}

// HandleDevice xử lý một bản ghi thiết bị, từ lần đọc đầu hoặc từ push realtime.
//
// device nil nghĩa là bản ghi bị xóa từ xa: tự đăng ký lại, nhưng chỉ một
// lần trong mỗi khoảng debounce để không tạo vòng xóa/tạo vô hạn.
// Push lặp lại đúng tuple (status, banner, reason, img) đã áp dụng bị bỏ
// qua, tránh dispatch điều hướng thừa khi backend phát update không đổi.
func (m *Machine) HandleDevice(ctx context.Context, device *devicemodels.Device) {
	if device == nil {
		m.reRegister(ctx)
		return
	}

	status := device.Status
	var banner interface{}
	var reason, img string
	if device.Data.Status != nil {
		banner = device.Data.Status.Banner
		reason = device.Data.Status.Reason
		img = device.Data.Status.Img
	}
	content, err := utility.MapToJSON(map[string]interface{}{
		"banner": banner,
		"reason": reason,
		"img":    img,
	})
	if err != nil {
		content = ""
	}

	m.mu.Lock()
	if m.lastStatus == status && m.lastContent == content {
		m.mu.Unlock()
		return
	}
	m.lastStatus = status
	m.lastContent = content
	m.currentBanner = banner
	m.mu.Unlock()

	switch status {
	case devicemodels.StatusBlocked:
		if reason == "" {
			reason = msgBlockedDefault
		}
		m.setState(StateBlocked)
		m.nav.NavigateOnce(RouteWait, map[string]interface{}{
			"code":   devicemodels.StatusBlocked,
			"img":    img,
			"reason": reason,
		})

	case devicemodels.StatusWait:
		m.setState(StateWait)
		m.nav.NavigateOnce(RouteWait, map[string]interface{}{
			"code":   devicemodels.StatusWait,
			"img":    img,
			"reason": reason,
		})

	case devicemodels.StatusReady:
		m.setState(StateReady)
		m.nav.NavigateOnce(RouteFront, nil)
		if err := m.platform.EnableKiosk(ctx); err != nil {
			logrus.WithError(err).Warn("Machine: không bật được chế độ kiosk")
		}
	}
}

// reRegister đăng ký lại thiết bị sau khi bị xóa từ xa
func (m *Machine) reRegister(ctx context.Context) {
	m.mu.Lock()
	if m.reRegistering || m.storeNumber == 0 {
		m.mu.Unlock()
		return
	}
	m.reRegistering = true
	storeNumber := m.storeNumber
	m.lastStatus = ""
	m.lastContent = ""
	m.mu.Unlock()

	identity, err := m.identity.DeviceIdentity()
	if err == nil {
		_, err = m.backend.RegisterDevice(ctx, storeNumber, identity.Code, identity.Name)
	}
	if err != nil {
		logrus.WithError(err).Warn("Machine: đăng ký lại thiết bị thất bại")
	}

	time.AfterFunc(m.debounce, func() {
		m.mu.Lock()
		m.reRegistering = false
		m.mu.Unlock()
	})
}

// SignOut hủy subscription, quên cửa hàng và quay về màn hình đăng nhập
func (m *Machine) SignOut(ctx context.Context) {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.storeNumber = 0
	m.lastStatus = ""
	m.lastContent = ""
	m.currentBanner = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	m.nav.NavigateOnce(RouteLogin, nil)
}

// Close giải phóng subscription khi tắt kiosk
func (m *Machine) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *Machine) failWith(code int, message string) {
	m.setState(StateError)
	m.nav.NavigateOnce(RouteError, map[string]interface{}{
		"code":    code,
		"message": message,
	})
}

func (m *Machine) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// CurrentState trả về trạng thái hiện tại của machine
func (m *Machine) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// StoreNumber trả về cửa hàng đã resolve, 0 nếu chưa có
func (m *Machine) StoreNumber() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeNumber
}

// DeviceIdentity trả về (mã, tên) thiết bị machine đang dùng
func (m *Machine) DeviceIdentity() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deviceCode, m.deviceName
}

// CurrentBanner trả về banner màn hình chờ đang áp dụng
func (m *Machine) CurrentBanner() interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentBanner
}

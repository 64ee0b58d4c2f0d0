// Package middleware - middleware xác thực cho API.
package middleware

import (
	"strings"
	"sync"
	"time"

	authmodels "meta_kiosk/internal/api/auth/models"
	authsvc "meta_kiosk/internal/api/auth/service"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/global"
	"meta_kiosk/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// AuthManager quản lý các service cần cho xác thực và cache kết quả tra token
type AuthManager struct {
	UserService  *authsvc.UserService
	AdminService *authsvc.AdminService
	Cache        *utility.Cache
}

var (
	authManager     *AuthManager
	authManagerOnce sync.Once
	authManagerErr  error
)

// GetAuthManager trả về instance singleton của AuthManager
func GetAuthManager() (*AuthManager, error) {
	authManagerOnce.Do(func() {
		authManager, authManagerErr = newAuthManager()
	})
	return authManager, authManagerErr
}

func newAuthManager() (*AuthManager, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}
	adminService, err := authsvc.NewAdminService()
	if err != nil {
		return nil, err
	}
	return &AuthManager{
		UserService:  userService,
		AdminService: adminService,
		Cache:        utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// findUserByToken tìm user theo token hiện tại hoặc token theo hwid
func (m *AuthManager) findUserByToken(c fiber.Ctx, token string) (*authmodels.User, error) {
	if cached, ok := m.Cache.Get(token); ok {
		if user, ok := cached.(*authmodels.User); ok {
			return user, nil
		}
	}

	ctx := c.Context()
	user, err := m.UserService.FindOne(ctx, bson.M{"token": token}, nil)
	if err != nil {
		user, err = m.UserService.FindOne(ctx, bson.M{"tokens.jwtToken": token}, nil)
	}
	if err != nil {
		user, err = m.UserService.FindOne(ctx, bson.M{
			"tokens": bson.M{"$elemMatch": bson.M{"jwtToken": token}},
		}, nil)
	}
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	m.Cache.Set(token, &user)
	return &user, nil
}

// AuthMiddleware trả về middleware xác thực Bearer token.
// requireCapability rỗng nghĩa là chỉ cần đăng nhập; "kiosk" yêu cầu thêm
// tài khoản phải là admin cửa hàng có cờ kiosk trong access.
// Khi có capability, middleware set locals "admin" và "storeNumber" để
// handler phía sau biết kiosk thuộc cửa hàng nào.
func AuthMiddleware(requireCapability string) fiber.Handler {
	return func(c fiber.Ctx) error {
		manager, err := GetAuthManager()
		if err != nil {
			logrus.WithError(err).Error("AuthMiddleware: không khởi tạo được AuthManager")
			HandleErrorResponse(c, common.NewError(common.ErrCodeInternalServer, "Lỗi hệ thống xác thực", common.StatusInternalServerError, err))
			return nil
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		// Kiểm tra chữ ký và hạn của token trước khi tra DB
		claims := &authmodels.JwtToken{}
		if err := utility.VerifyToken(global.MongoDB_ServerConfig.JwtSecret, token, claims); err != nil {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		user, err := manager.findUserByToken(c, token)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(common.ErrCodeAuth, "Tài khoản đã bị khóa", common.StatusForbidden, nil))
			return nil
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		if requireCapability != "" {
			admin, err := manager.AdminService.GetAdminByUserID(c.Context(), user.ID)
			if err != nil || !admin.HasCapability(requireCapability) {
				HandleErrorResponse(c, common.ErrNoKioskAccess)
				return nil
			}
			c.Locals("admin", admin)
			c.Locals("storeNumber", admin.StoreNumber)
		}

		return c.Next()
	}
}

// InvalidateToken xóa token khỏi cache (gọi khi logout)
func (m *AuthManager) InvalidateToken(token string) {
	m.Cache.Delete(token)
}

// Package authhdl - handler quản trị viên cửa hàng (Admin).
package authhdl

import (
	"fmt"

	authdto "meta_kiosk/internal/api/auth/dto"
	models "meta_kiosk/internal/api/auth/models"
	authsvc "meta_kiosk/internal/api/auth/service"
	basehdl "meta_kiosk/internal/api/base/handler"
	"meta_kiosk/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler xử lý CRUD admin cửa hàng
type AdminHandler struct {
	*basehdl.BaseHandler[models.Admin, authdto.AdminCreateInput, authdto.AdminUpdateInput]
	adminService *authsvc.AdminService
}

// NewAdminHandler tạo instance mới của AdminHandler
func NewAdminHandler() (*AdminHandler, error) {
	adminService, err := authsvc.NewAdminService()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Admin, authdto.AdminCreateInput, authdto.AdminUpdateInput](adminService)
	return &AdminHandler{
		BaseHandler:  baseHandler,
		adminService: adminService,
	}, nil
}

// HandleGetMyAdmin trả về admin gắn với user đang đăng nhập.
// Kiosk gọi route này ngay sau đăng nhập để biết store_number và cờ kiosk.
func (h *AdminHandler) HandleGetMyAdmin(c fiber.Ctx) error {
	admin, ok := c.Locals("admin").(*models.Admin)
	if ok && admin != nil {
		h.HandleResponse(c, admin, nil)
		return nil
	}

	userID := c.Locals("user_id")
	if userID == nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "Chưa đăng nhập", common.StatusUnauthorized, nil))
		return nil
	}
	objID, err := primitiveObjectID(userID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	found, err := h.adminService.GetAdminByUserID(c.Context(), objID)
	h.HandleResponse(c, found, err)
	return nil
}

// primitiveObjectID đổi giá trị user_id trong locals (chuỗi hex) sang ObjectID
func primitiveObjectID(v interface{}) (primitive.ObjectID, error) {
	s, ok := v.(string)
	if !ok {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID người dùng không hợp lệ", common.StatusBadRequest, nil)
	}
	objID, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID người dùng không hợp lệ", common.StatusBadRequest, err)
	}
	return objID, nil
}

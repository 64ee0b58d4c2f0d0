// Package menuhdl - handler món (Menu).
package menuhdl

import (
	"fmt"

	basehdl "meta_kiosk/internal/api/base/handler"
	menudto "meta_kiosk/internal/api/menu/dto"
	models "meta_kiosk/internal/api/menu/models"
	menusvc "meta_kiosk/internal/api/menu/service"
	"meta_kiosk/internal/common"

	"github.com/gofiber/fiber/v3"
)

// MenuHandler xử lý CRUD và tra cứu món
type MenuHandler struct {
	*basehdl.BaseHandler[models.Menu, menudto.MenuCreateInput, menudto.MenuUpdateInput]
	menuService *menusvc.MenuService
}

// NewMenuHandler tạo instance mới của MenuHandler
func NewMenuHandler() (*MenuHandler, error) {
	menuService, err := menusvc.NewMenuService()
	if err != nil {
		return nil, fmt.Errorf("failed to create menu service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Menu, menudto.MenuCreateInput, menudto.MenuUpdateInput](menuService)
	return &MenuHandler{
		BaseHandler: baseHandler,
		menuService: menuService,
	}, nil
}

// HandleGetMenu trả về toàn bộ món version hiện hành của cửa hàng
// gắn với admin đang đăng nhập (storeNumber lấy từ locals).
func (h *MenuHandler) HandleGetMenu(c fiber.Ctx) error {
	storeNumber, ok := c.Locals("storeNumber").(int)
	if !ok {
		h.HandleResponse(c, nil, common.ErrNoKioskAccess)
		return nil
	}
	menus, err := h.menuService.GetMenu(c.Context(), storeNumber)
	h.HandleResponse(c, menus, err)
	return nil
}

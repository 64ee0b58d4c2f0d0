// Package menuhdl - handler danh mục món (MenuCategory).
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

// MenuCategoryHandler xử lý CRUD và tra cứu danh mục món
type MenuCategoryHandler struct {
	*basehdl.BaseHandler[models.MenuCategory, menudto.MenuCategoryCreateInput, menudto.MenuCategoryUpdateInput]
	categoryService *menusvc.MenuCategoryService
}

// NewMenuCategoryHandler tạo instance mới của MenuCategoryHandler
func NewMenuCategoryHandler() (*MenuCategoryHandler, error) {
	categoryService, err := menusvc.NewMenuCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create menu category service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.MenuCategory, menudto.MenuCategoryCreateInput, menudto.MenuCategoryUpdateInput](categoryService)
	return &MenuCategoryHandler{
		BaseHandler:     baseHandler,
		categoryService: categoryService,
	}, nil
}

// HandleGetCategories trả về danh mục theo thứ tự hiển thị của cửa hàng
// gắn với admin đang đăng nhập.
func (h *MenuCategoryHandler) HandleGetCategories(c fiber.Ctx) error {
	storeNumber, ok := c.Locals("storeNumber").(int)
	if !ok {
		h.HandleResponse(c, nil, common.ErrNoKioskAccess)
		return nil
	}
	categories, err := h.categoryService.GetCategories(c.Context(), storeNumber)
	h.HandleResponse(c, categories, err)
	return nil
}

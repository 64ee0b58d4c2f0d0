// Package router đăng ký các route thuộc domain menu.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "meta_kiosk/internal/api/auth/models"
	menuhdl "meta_kiosk/internal/api/menu/handler"
	"meta_kiosk/internal/api/middleware"
	apirouter "meta_kiosk/internal/api/router"
)

// Register đăng ký tất cả route menu lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	menuHandler, err := menuhdl.NewMenuHandler()
	if err != nil {
		return fmt.Errorf("create menu handler: %w", err)
	}
	categoryHandler, err := menuhdl.NewMenuCategoryHandler()
	if err != nil {
		return fmt.Errorf("create menu category handler: %w", err)
	}

	kioskMiddleware := middleware.AuthMiddleware(authmodels.CapabilityKiosk)
	apirouter.RegisterRouteWithMiddleware(v1, "/menu", "GET", "/current", []fiber.Handler{kioskMiddleware}, menuHandler.HandleGetMenu)
	apirouter.RegisterRouteWithMiddleware(v1, "/menu-category", "GET", "/current", []fiber.Handler{kioskMiddleware}, categoryHandler.HandleGetCategories)

	r.RegisterCRUDRoutes(v1, "/menu", menuHandler, apirouter.ReadWriteConfig, "")
	r.RegisterCRUDRoutes(v1, "/menu-category", categoryHandler, apirouter.ReadWriteConfig, "")
	return nil
}

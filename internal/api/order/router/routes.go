// Package router đăng ký các route thuộc domain order.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "meta_kiosk/internal/api/auth/models"
	"meta_kiosk/internal/api/middleware"
	orderhdl "meta_kiosk/internal/api/order/handler"
	apirouter "meta_kiosk/internal/api/router"
)

// Register đăng ký tất cả route order lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("create order handler: %w", err)
	}

	kioskMiddleware := middleware.AuthMiddleware(authmodels.CapabilityKiosk)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/next-number/:storeNumber", []fiber.Handler{kioskMiddleware}, orderHandler.HandleNextOrderNumber)

	r.RegisterCRUDRoutes(v1, "/order", orderHandler, apirouter.ReadWriteConfig, "")
	return nil
}

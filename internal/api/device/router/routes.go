// Package router đăng ký các route thuộc domain device.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "meta_kiosk/internal/api/auth/models"
	devicehdl "meta_kiosk/internal/api/device/handler"
	"meta_kiosk/internal/api/middleware"
	apirouter "meta_kiosk/internal/api/router"
)

// Register đăng ký tất cả route device lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	deviceHandler, err := devicehdl.NewDeviceHandler()
	if err != nil {
		return fmt.Errorf("create device handler: %w", err)
	}

	kioskMiddleware := middleware.AuthMiddleware(authmodels.CapabilityKiosk)
	apirouter.RegisterRouteWithMiddleware(v1, "/device", "GET", "/by-key/:storeNumber/:deviceCode", []fiber.Handler{kioskMiddleware}, deviceHandler.HandleGetByKey)
	apirouter.RegisterRouteWithMiddleware(v1, "/device", "PUT", "/set-status", []fiber.Handler{kioskMiddleware}, deviceHandler.HandleSetStatus)
	apirouter.RegisterRouteWithMiddleware(v1, "/device", "DELETE", "/by-key/:storeNumber/:deviceCode", []fiber.Handler{kioskMiddleware}, deviceHandler.HandleDeleteByKey)

	r.RegisterCRUDRoutes(v1, "/device", deviceHandler, apirouter.ReadWriteConfig, "")
	return nil
}

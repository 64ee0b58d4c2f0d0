// Package router đăng ký các route thuộc domain store.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "meta_kiosk/internal/api/auth/models"
	apirouter "meta_kiosk/internal/api/router"
	storehdl "meta_kiosk/internal/api/store/handler"
	"meta_kiosk/internal/api/middleware"
)

// Register đăng ký tất cả route store lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	storeHandler, err := storehdl.NewStoreHandler()
	if err != nil {
		return fmt.Errorf("create store handler: %w", err)
	}

	kioskMiddleware := middleware.AuthMiddleware(authmodels.CapabilityKiosk)
	apirouter.RegisterRouteWithMiddleware(v1, "/store", "GET", "/by-number/:storeNumber", []fiber.Handler{kioskMiddleware}, storeHandler.HandleGetByNumber)

	r.RegisterCRUDRoutes(v1, "/store", storeHandler, apirouter.ReadWriteConfig, "")
	return nil
}

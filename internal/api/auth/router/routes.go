// Package router đăng ký các route thuộc domain auth: đăng nhập, profile, admin, system.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "meta_kiosk/internal/api/auth/handler"
	authmodels "meta_kiosk/internal/api/auth/models"
	basehdl "meta_kiosk/internal/api/base/handler"
	"meta_kiosk/internal/api/middleware"
	apirouter "meta_kiosk/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerAdminRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	router.Post("/auth/login/firebase", userHandler.HandleLoginWithFirebase)
	authOnlyMiddleware := middleware.AuthMiddleware("")
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/logout", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetProfile)
	return nil
}

func registerAdminRoutes(router fiber.Router, r *apirouter.Router) error {
	adminHandler, err := authhdl.NewAdminHandler()
	if err != nil {
		return fmt.Errorf("failed to create admin handler: %w", err)
	}
	kioskMiddleware := middleware.AuthMiddleware(authmodels.CapabilityKiosk)
	apirouter.RegisterRouteWithMiddleware(router, "/admin", "GET", "/me", []fiber.Handler{kioskMiddleware}, adminHandler.HandleGetMyAdmin)
	r.RegisterCRUDRoutes(router, "/admin", adminHandler, apirouter.ReadWriteConfig, "")

	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/user", userHandler, apirouter.ReadOnlyConfig, "")
	return nil
}

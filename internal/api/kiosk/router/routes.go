// Package router đăng ký local API của máy kiosk.
//
// Các route này phục vụ UI shell chạy trên chính thiết bị, trước cả khi
// operator đăng nhập, nên không đi qua AuthMiddleware; server chỉ bind
// loopback hoặc mạng nội bộ của máy kiosk.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	kioskhdl "meta_kiosk/internal/api/kiosk/handler"
	apirouter "meta_kiosk/internal/api/router"
)

// Register đăng ký tất cả route kiosk lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	kioskHandler, err := kioskhdl.NewKioskHandler()
	if err != nil {
		return fmt.Errorf("create kiosk handler: %w", err)
	}

	group := v1.Group("/kiosk")

	group.Get("/session", kioskHandler.HandleSession)
	group.Post("/session/sign-in", kioskHandler.HandleSignIn)
	group.Post("/session/sign-out", kioskHandler.HandleSignOut)
	group.Post("/session/setup", kioskHandler.HandleSetup)

	group.Get("/cart", kioskHandler.HandleCartList)
	group.Post("/cart/items", kioskHandler.HandleCartAdd)
	group.Put("/cart/items/:cartId/increase", kioskHandler.HandleCartIncrease)
	group.Put("/cart/items/:cartId/decrease", kioskHandler.HandleCartDecrease)
	group.Delete("/cart/items/:cartId", kioskHandler.HandleCartRemove)
	group.Delete("/cart", kioskHandler.HandleCartClear)
	group.Get("/cart/count/:menuKey", kioskHandler.HandleCartMenuCount)

	group.Get("/phone", kioskHandler.HandlePhoneStatus)
	group.Post("/phone/digits", kioskHandler.HandlePhoneAddDigit)
	group.Delete("/phone/digits", kioskHandler.HandlePhoneRemoveDigit)
	group.Delete("/phone", kioskHandler.HandlePhoneReset)

	group.Post("/checkout", kioskHandler.HandleCheckout)
	group.Get("/menu", kioskHandler.HandleMenu)

	return nil
}

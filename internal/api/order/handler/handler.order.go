// Package orderhdl - handler đơn hàng (Order).
package orderhdl

import (
	"fmt"
	"strconv"

	basehdl "meta_kiosk/internal/api/base/handler"
	orderdto "meta_kiosk/internal/api/order/dto"
	models "meta_kiosk/internal/api/order/models"
	ordersvc "meta_kiosk/internal/api/order/service"
	"meta_kiosk/internal/common"

	"github.com/gofiber/fiber/v3"
)

// OrderHandler xử lý CRUD đơn hàng và cấp số thứ tự
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput]
	orderService *ordersvc.OrderService
}

// NewOrderHandler tạo instance mới của OrderHandler
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput](orderService)
	return &OrderHandler{
		BaseHandler:  baseHandler,
		orderService: orderService,
	}, nil
}

// HandleNextOrderNumber cấp số thứ tự đơn tiếp theo cho cửa hàng trong ngày.
// Query param date (YYYY-MM-DD) cho phép hệ thống khác hỏi ngày cụ thể,
// mặc định là hôm nay.
func (h *OrderHandler) HandleNextOrderNumber(c fiber.Ctx) error {
	storeNumber, err := strconv.Atoi(c.Params("storeNumber"))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Số cửa hàng không hợp lệ", common.StatusBadRequest, err))
		return nil
	}
	date := c.Query("date")
	if date == "" {
		date = ordersvc.Today()
	}
	orderNumber, err := h.orderService.NextOrderNumber(c.Context(), storeNumber, date)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	h.HandleResponse(c, fiber.Map{"orderNumber": orderNumber, "date": date}, nil)
	return nil
}

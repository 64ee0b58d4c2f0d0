// Package storehdl - handler cửa hàng (Store).
package storehdl

import (
	"fmt"
	"strconv"

	basehdl "meta_kiosk/internal/api/base/handler"
	storedto "meta_kiosk/internal/api/store/dto"
	models "meta_kiosk/internal/api/store/models"
	storesvc "meta_kiosk/internal/api/store/service"
	"meta_kiosk/internal/common"

	"github.com/gofiber/fiber/v3"
)

// StoreHandler xử lý CRUD và tra cứu cửa hàng
type StoreHandler struct {
	*basehdl.BaseHandler[models.Store, storedto.StoreCreateInput, storedto.StoreUpdateInput]
	storeService *storesvc.StoreService
}

// NewStoreHandler tạo instance mới của StoreHandler
func NewStoreHandler() (*StoreHandler, error) {
	storeService, err := storesvc.NewStoreService()
	if err != nil {
		return nil, fmt.Errorf("failed to create store service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Store, storedto.StoreCreateInput, storedto.StoreUpdateInput](storeService)
	return &StoreHandler{
		BaseHandler:  baseHandler,
		storeService: storeService,
	}, nil
}

// HandleGetByNumber tra cứu cửa hàng theo số cửa hàng trên path
func (h *StoreHandler) HandleGetByNumber(c fiber.Ctx) error {
	storeNumber, err := strconv.Atoi(c.Params("storeNumber"))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Số cửa hàng không hợp lệ", common.StatusBadRequest, err))
		return nil
	}
	store, err := h.storeService.GetByNumber(c.Context(), storeNumber)
	h.HandleResponse(c, store, err)
	return nil
}

// Package devicehdl - handler thiết bị kiosk (Device).
package devicehdl

import (
	"fmt"
	"strconv"

	basehdl "meta_kiosk/internal/api/base/handler"
	devicedto "meta_kiosk/internal/api/device/dto"
	models "meta_kiosk/internal/api/device/models"
	devicesvc "meta_kiosk/internal/api/device/service"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// DeviceHandler xử lý CRUD, phê duyệt và tra cứu thiết bị kiosk
type DeviceHandler struct {
	*basehdl.BaseHandler[models.Device, devicedto.DeviceCreateInput, devicedto.DeviceUpdateInput]
	deviceService *devicesvc.DeviceService
}

// NewDeviceHandler tạo instance mới của DeviceHandler
func NewDeviceHandler() (*DeviceHandler, error) {
	deviceService, err := devicesvc.NewDeviceService()
	if err != nil {
		return nil, fmt.Errorf("failed to create device service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Device, devicedto.DeviceCreateInput, devicedto.DeviceUpdateInput](deviceService)
	return &DeviceHandler{
		BaseHandler:   baseHandler,
		deviceService: deviceService,
	}, nil
}

// HandleGetByKey tra cứu thiết bị theo (storeNumber, deviceCode) trên path
func (h *DeviceHandler) HandleGetByKey(c fiber.Ctx) error {
	storeNumber, deviceCode, err := h.parseKeyParams(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	device, err := h.deviceService.GetByKey(c.Context(), storeNumber, deviceCode)
	h.HandleResponse(c, device, err)
	return nil
}

// HandleSetStatus chuyển trạng thái phê duyệt của thiết bị
func (h *DeviceHandler) HandleSetStatus(c fiber.Ctx) error {
	var input devicedto.DeviceSetStatusInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	device, err := h.deviceService.SetStatus(c.Context(), input.StoreNumber, input.DeviceCode, input.Status, input.StatusInfo)
	if err == nil {
		logger.LogAction("device_set_status", c, map[string]interface{}{
			"store_number": input.StoreNumber,
			"device_code":  input.DeviceCode,
			"status":       input.Status,
		})
	}
	h.HandleResponse(c, device, err)
	return nil
}

// HandleDeleteByKey xóa thiết bị theo khóa, buộc kiosk tương ứng đăng ký lại
func (h *DeviceHandler) HandleDeleteByKey(c fiber.Ctx) error {
	storeNumber, deviceCode, err := h.parseKeyParams(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.deviceService.DeleteByKey(c.Context(), storeNumber, deviceCode)
	if err == nil {
		logger.LogCRUD("delete", "device", deviceCode, c, map[string]interface{}{
			"store_number": storeNumber,
		})
	}
	h.HandleResponse(c, nil, err)
	return nil
}

func (h *DeviceHandler) parseKeyParams(c fiber.Ctx) (int, string, error) {
	storeNumber, err := strconv.Atoi(c.Params("storeNumber"))
	if err != nil {
		return 0, "", common.NewError(common.ErrCodeValidationFormat, "Số cửa hàng không hợp lệ", common.StatusBadRequest, err)
	}
	deviceCode := c.Params("deviceCode")
	if deviceCode == "" {
		return 0, "", common.NewError(common.ErrCodeValidationInput, "Thiếu mã thiết bị", common.StatusBadRequest, nil)
	}
	return storeNumber, deviceCode, nil
}

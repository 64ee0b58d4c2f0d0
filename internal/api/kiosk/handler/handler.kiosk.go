// Package kioskhdl - handler local API phục vụ UI shell chạy trên máy kiosk.
package kioskhdl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	authsvc "meta_kiosk/internal/api/auth/service"
	basehdl "meta_kiosk/internal/api/base/handler"
	kioskapp "meta_kiosk/internal/api/kiosk/app"
	kioskdto "meta_kiosk/internal/api/kiosk/dto"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/global"
	"meta_kiosk/internal/kiosk"

	authdto "meta_kiosk/internal/api/auth/dto"

	"github.com/gofiber/fiber/v3"
)

// KioskHandler cung cấp local API cho UI shell: phiên thiết bị, giỏ hàng,
// bàn phím số điện thoại, checkout và bản chụp menu. Các handler này mỏng,
// toàn bộ nghiệp vụ nằm trong package kiosk.
type KioskHandler struct {
	app         *kioskapp.App
	userService *authsvc.UserService
}

// NewKioskHandler tạo instance mới của KioskHandler.
// Yêu cầu kioskapp.InitApp đã chạy thành công trước đó.
func NewKioskHandler() (*KioskHandler, error) {
	app := kioskapp.GetApp()
	if app == nil {
		return nil, fmt.Errorf("kiosk app is not initialized")
	}
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &KioskHandler{
		app:         app,
		userService: userService,
	}, nil
}

func (h *KioskHandler) parseBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// HandleSignIn đăng nhập operator bằng Firebase ID token rồi chạy chuỗi
// resolution của phiên thiết bị.
func (h *KioskHandler) HandleSignIn(c fiber.Ctx) error {
	var input kioskdto.KioskSignInInput
	if err := h.parseBody(c, &input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	user, err := h.userService.LoginWithFirebase(c.Context(), &authdto.FirebaseLoginInput{
		IDToken: input.IDToken,
		Hwid:    input.Hwid,
	})
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	h.app.SignIn(c.Context(), &kiosk.Account{UserID: user.ID, Email: user.Email})
	basehdl.HandleResponse(c, h.sessionStatus(), nil)
	return nil
}

// HandleSignOut đăng xuất operator. resetIdentity true xóa danh tính thiết
// bị cục bộ và bản ghi thiết bị phía backend.
func (h *KioskHandler) HandleSignOut(c fiber.Ctx) error {
	var input kioskdto.KioskSignOutInput
	if len(c.Body()) > 0 {
		if err := h.parseBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
	}
	err := h.app.SignOut(c.Context(), input.ResetIdentity)
	basehdl.HandleResponse(c, h.sessionStatus(), err)
	return nil
}

// HandleSetup chạy lại chuỗi resolution của phiên thiết bị (nút retry)
func (h *KioskHandler) HandleSetup(c fiber.Ctx) error {
	h.app.Machine.Setup(c.Context())
	basehdl.HandleResponse(c, h.sessionStatus(), nil)
	return nil
}

// HandleSession trả về trạng thái phiên thiết bị hiện tại
func (h *KioskHandler) HandleSession(c fiber.Ctx) error {
	basehdl.HandleResponse(c, h.sessionStatus(), nil)
	return nil
}

func (h *KioskHandler) sessionStatus() fiber.Map {
	deviceCode, deviceName := h.app.Machine.DeviceIdentity()
	return fiber.Map{
		"state":       h.app.Machine.CurrentState(),
		"storeNumber": h.app.Machine.StoreNumber(),
		"deviceCode":  deviceCode,
		"deviceName":  deviceName,
		"banner":      h.app.Machine.CurrentBanner(),
		"route":       h.app.Nav.Current(),
	}
}

// HandleCartList trả về các dòng giỏ hàng và tổng tiền
func (h *KioskHandler) HandleCartList(c fiber.Ctx) error {
	basehdl.HandleResponse(c, fiber.Map{
		"items":      h.app.Cart.Items(),
		"totalPrice": h.app.Cart.TotalPrice(),
	}, nil)
	return nil
}

// HandleCartAdd thêm một món với option đã chọn vào giỏ
func (h *KioskHandler) HandleCartAdd(c fiber.Ctx) error {
	var input kioskdto.CartAddInput
	if err := h.parseBody(c, &input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	line := h.app.Cart.AddToCart(kiosk.AddItemInput{
		MenuKey:   input.MenuKey,
		Name:      input.Name,
		BasePrice: input.BasePrice,
		Count:     input.Count,
		Min:       input.Min,
		Max:       input.Max,
		Options:   input.Options,
	})
	basehdl.HandleResponse(c, line, nil)
	return nil
}

// HandleCartIncrease tăng số lượng một dòng giỏ hàng thêm 1
func (h *KioskHandler) HandleCartIncrease(c fiber.Ctx) error {
	cartID, err := h.parseCartID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if !h.app.Cart.IncreaseCount(cartID) {
		basehdl.HandleResponse(c, nil, common.ErrNotFound)
		return nil
	}
	h.HandleCartList(c)
	return nil
}

// HandleCartDecrease giảm số lượng một dòng giỏ hàng đi 1, xóa dòng nếu
// đang ở 1
func (h *KioskHandler) HandleCartDecrease(c fiber.Ctx) error {
	cartID, err := h.parseCartID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	if !h.app.Cart.DecreaseCount(cartID) {
		basehdl.HandleResponse(c, nil, common.ErrNotFound)
		return nil
	}
	h.HandleCartList(c)
	return nil
}

// HandleCartRemove xóa một dòng giỏ hàng
func (h *KioskHandler) HandleCartRemove(c fiber.Ctx) error {
	cartID, err := h.parseCartID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	h.app.Cart.RemoveItem(cartID)
	h.HandleCartList(c)
	return nil
}

// HandleCartClear xóa toàn bộ giỏ hàng
func (h *KioskHandler) HandleCartClear(c fiber.Ctx) error {
	h.app.Cart.Clear()
	h.HandleCartList(c)
	return nil
}

// HandleCartMenuCount trả về tổng số lượng đã có trong giỏ của một món
func (h *KioskHandler) HandleCartMenuCount(c fiber.Ctx) error {
	menuKey := c.Params("menuKey")
	if menuKey == "" {
		basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu mã món", common.StatusBadRequest, nil))
		return nil
	}
	basehdl.HandleResponse(c, fiber.Map{
		"menuKey": menuKey,
		"count":   h.app.Cart.GetItemCount(menuKey),
	}, nil)
	return nil
}

func (h *KioskHandler) parseCartID(c fiber.Ctx) (int, error) {
	cartID, err := strconv.Atoi(c.Params("cartId"))
	if err != nil || cartID < 1 {
		return 0, common.NewError(common.ErrCodeValidationFormat, "cartId không hợp lệ", common.StatusBadRequest, err)
	}
	return cartID, nil
}

// HandlePhoneStatus trả về trạng thái bàn phím số điện thoại
func (h *KioskHandler) HandlePhoneStatus(c fiber.Ctx) error {
	basehdl.HandleResponse(c, h.phoneStatus(), nil)
	return nil
}

// HandlePhoneAddDigit thêm một chữ số vào số điện thoại
func (h *KioskHandler) HandlePhoneAddDigit(c fiber.Ctx) error {
	var input kioskdto.PhoneDigitInput
	if err := h.parseBody(c, &input); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	h.app.Phone.AddDigit(input.Digit[0])
	basehdl.HandleResponse(c, h.phoneStatus(), nil)
	return nil
}

// HandlePhoneRemoveDigit xóa chữ số cuối (không xóa được tiền tố 010)
func (h *KioskHandler) HandlePhoneRemoveDigit(c fiber.Ctx) error {
	h.app.Phone.RemoveDigit()
	basehdl.HandleResponse(c, h.phoneStatus(), nil)
	return nil
}

// HandlePhoneReset đưa số điện thoại về tiền tố 010
func (h *KioskHandler) HandlePhoneReset(c fiber.Ctx) error {
	h.app.Phone.Reset()
	basehdl.HandleResponse(c, h.phoneStatus(), nil)
	return nil
}

func (h *KioskHandler) phoneStatus() fiber.Map {
	return fiber.Map{
		"value":     h.app.Phone.Value(),
		"formatted": h.app.Phone.Format(),
		"complete":  h.app.Phone.IsComplete(),
	}
}

// HandleCheckout gửi đơn hàng hiện tại. Thất bại trả về envelope lỗi kèm
// cờ retryable để UI quyết định hiện nút thử lại hay quay về sửa dữ liệu.
func (h *KioskHandler) HandleCheckout(c fiber.Ctx) error {
	storeNumber := h.app.Machine.StoreNumber()
	if storeNumber == 0 || h.app.Machine.CurrentState() != kiosk.StateReady {
		basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeBusinessState, "기기가 주문을 받을 수 없는 상태입니다.", common.StatusConflict, nil))
		return nil
	}

	result, err := h.app.Checkout.Submit(c.Context(), storeNumber, h.app.Phone)
	if err != nil {
		var submitErr *kiosk.SubmitError
		if errors.As(err, &submitErr) {
			code := common.ErrCodeDatabase.Code
			status := common.StatusInternalServerError
			var customErr *common.Error
			if errors.As(submitErr.Err, &customErr) {
				code = customErr.Code.Code
				status = customErr.StatusCode
			}
			basehdl.JSONResponse(c, status, fiber.Map{
				"code":      code,
				"message":   submitErr.Error(),
				"retryable": submitErr.Retryable,
				"status":    "error",
			})
			return nil
		}
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	basehdl.HandleResponse(c, fiber.Map{
		"orderNumber":      result.OrderNumber,
		"totalPrice":       result.TotalPrice,
		"countdownSeconds": int(result.Countdown.Seconds()),
	}, nil)
	return nil
}

// HandleMenu trả về bản chụp menu hiện tại của cửa hàng đã resolve
func (h *KioskHandler) HandleMenu(c fiber.Ctx) error {
	cache, err := h.app.MenuCache(c.Context())
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	basehdl.HandleResponse(c, cache.Snapshot(), nil)
	return nil
}

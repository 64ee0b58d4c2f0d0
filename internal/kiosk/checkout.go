package kiosk

import (
	"context"
	"time"

	ordermodels "meta_kiosk/internal/api/order/models"
	ordersvc "meta_kiosk/internal/api/order/service"
	"meta_kiosk/internal/common"
)

// DefaultCompleteCountdown là thời gian màn hình xác nhận tự đóng
const DefaultCompleteCountdown = 5 * time.Second

// OrderBackend là phần backend mà luồng checkout cần
type OrderBackend interface {
	NextOrderNumber(ctx context.Context, storeNumber int, date string) (int, error)
	CreateOrder(ctx context.Context, order ordermodels.Order) (*ordermodels.Order, error)
}

// SubmitError là lỗi gửi đơn kèm cờ có retry được hay không.
// Lỗi backend tạm thời cho phép operator bấm thử lại; lỗi dữ liệu đầu vào
// thì không, phải sửa trước.
type SubmitError struct {
	Err       error
	Retryable bool
}

// Error trả về message của lỗi gốc
func (e *SubmitError) Error() string {
	return e.Err.Error()
}

// Unwrap cho phép errors.Is/As xuyên qua SubmitError
func (e *SubmitError) Unwrap() error {
	return e.Err
}

// SubmitResult là kết quả một lần gửi đơn thành công
type SubmitResult struct {
	OrderNumber int           `json:"orderNumber"`
	TotalPrice  int64         `json:"totalPrice"`
	Countdown   time.Duration `json:"-"`
}

// Checkout là luồng gửi đơn: cấp số thứ tự, build payload chuẩn hóa từ
// giỏ hàng, gửi và chỉ xóa giỏ sau khi backend xác nhận thành công.
type Checkout struct {
	backend   OrderBackend
	cart      *Cart
	countdown time.Duration
}

// NewCheckout tạo Checkout. countdown <= 0 dùng DefaultCompleteCountdown.
func NewCheckout(backend OrderBackend, cart *Cart, countdown time.Duration) *Checkout {
	if countdown <= 0 {
		countdown = DefaultCompleteCountdown
	}
	return &Checkout{
		backend:   backend,
		cart:      cart,
		countdown: countdown,
	}
}

// Submit gửi đơn cho cửa hàng với số điện thoại đã nhập.
// Thất bại backend trả về *SubmitError với Retryable true và giỏ hàng giữ
// nguyên; gọi lại Submit là thao tác retry của operator.
func (c *Checkout) Submit(ctx context.Context, storeNumber int, phone *PhoneInput) (*SubmitResult, error) {
	if !phone.IsComplete() {
		return nil, &SubmitError{
			Err:       common.NewError(common.ErrCodeValidationInput, "전화번호를 끝까지 입력해주세요.", common.StatusBadRequest, nil),
			Retryable: false,
		}
	}
	items := c.cart.Items()
	if len(items) == 0 {
		return nil, &SubmitError{
			Err:       common.NewError(common.ErrCodeBusinessState, "장바구니가 비어있습니다.", common.StatusBadRequest, nil),
			Retryable: false,
		}
	}

	orderNumber, err := c.backend.NextOrderNumber(ctx, storeNumber, ordersvc.Today())
	if err != nil {
		return nil, &SubmitError{Err: err, Retryable: true}
	}

	order := ordermodels.Order{
		StoreNumber: storeNumber,
		OrderNumber: orderNumber,
		PhoneNumber: phone.Value(),
		Status:      ordermodels.StatusNew,
		TotalPrice:  c.cart.TotalPrice(),
		Menu:        buildOrderMenu(items),
	}

	if _, err := c.backend.CreateOrder(ctx, order); err != nil {
		return nil, &SubmitError{Err: err, Retryable: true}
	}

	c.cart.Clear()
	phone.Reset()

	return &SubmitResult{
		OrderNumber: orderNumber,
		TotalPrice:  order.TotalPrice,
		Countdown:   c.countdown,
	}, nil
}

// buildOrderMenu chuẩn hóa các dòng giỏ hàng thành payload đơn.
// Option radio được map từ index đã chọn về nhãn hiển thị; option không có
// danh sách nhãn giữ nguyên giá trị số.
func buildOrderMenu(items []LineItem) []ordermodels.OrderMenuItem {
	menu := make([]ordermodels.OrderMenuItem, 0, len(items))
	for _, item := range items {
		options := make([]ordermodels.OrderMenuOption, 0, len(item.Options))
		for _, opt := range item.Options {
			var choice interface{} = opt.Value
			if len(opt.Options) > 0 && opt.Value >= 0 && opt.Value < len(opt.Options) {
				choice = opt.Options[opt.Value]
			}
			options = append(options, ordermodels.OrderMenuOption{
				Name:   opt.Name,
				Choice: choice,
				Price:  opt.Price,
			})
		}
		menu = append(menu, ordermodels.OrderMenuItem{
			ID:       item.MenuKey,
			Quantity: item.Count,
			Price:    item.TotalPrice,
			Name:     item.Name,
			Options:  options,
		})
	}
	return menu
}

// Package kiosk - Test luồng gửi đơn: validate đầu vào, retry và payload chuẩn hóa.
package kiosk

import (
	"context"
	"errors"
	"testing"

	ordermodels "meta_kiosk/internal/api/order/models"
)

type fakeOrderBackend struct {
	nextNumber    int
	nextNumberErr error
	createErr     error
	created       []ordermodels.Order
}

func (b *fakeOrderBackend) NextOrderNumber(ctx context.Context, storeNumber int, date string) (int, error) {
	if b.nextNumberErr != nil {
		return 0, b.nextNumberErr
	}
	return b.nextNumber, nil
}

func (b *fakeOrderBackend) CreateOrder(ctx context.Context, order ordermodels.Order) (*ordermodels.Order, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	b.created = append(b.created, order)
	return &order, nil
}

func completePhone() *PhoneInput {
	p := NewPhoneInput()
	for _, d := range []byte("12345678") {
		p.AddDigit(d)
	}
	return p
}

func TestSubmit_IncompletePhoneNotRetryable(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(AddItemInput{MenuKey: "a", Name: "A", BasePrice: 1000, Count: 1})
	checkout := NewCheckout(&fakeOrderBackend{nextNumber: 1}, cart, 0)

	_, err := checkout.Submit(context.Background(), 7, NewPhoneInput())

	var submitErr *SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("phải trả về *SubmitError, được %T", err)
	}
	if submitErr.Retryable {
		t.Error("số điện thoại chưa đủ là lỗi đầu vào, không được retryable")
	}
	if len(cart.Items()) != 1 {
		t.Error("gửi thất bại không được đụng vào giỏ hàng")
	}
}

func TestSubmit_EmptyCartNotRetryable(t *testing.T) {
	checkout := NewCheckout(&fakeOrderBackend{nextNumber: 1}, NewCart(), 0)

	_, err := checkout.Submit(context.Background(), 7, completePhone())

	var submitErr *SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("phải trả về *SubmitError, được %T", err)
	}
	if submitErr.Retryable {
		t.Error("giỏ hàng rỗng là lỗi đầu vào, không được retryable")
	}
}

func TestSubmit_BackendFailureRetryableKeepsCart(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(AddItemInput{MenuKey: "a", Name: "A", BasePrice: 1000, Count: 2})
	phone := completePhone()
	backend := &fakeOrderBackend{nextNumberErr: errors.New("connection refused")}
	checkout := NewCheckout(backend, cart, 0)

	_, err := checkout.Submit(context.Background(), 7, phone)

	var submitErr *SubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("phải trả về *SubmitError, được %T", err)
	}
	if !submitErr.Retryable {
		t.Error("lỗi backend phải retryable")
	}
	if len(cart.Items()) != 1 {
		t.Error("gửi thất bại phải giữ nguyên giỏ để retry")
	}
	if !phone.IsComplete() {
		t.Error("gửi thất bại phải giữ nguyên số điện thoại")
	}

	// Retry sau khi backend hồi phục
	backend.nextNumberErr = nil
	backend.nextNumber = 12
	result, err := checkout.Submit(context.Background(), 7, phone)
	if err != nil {
		t.Fatalf("retry phải thành công, lỗi: %v", err)
	}
	if result.OrderNumber != 12 {
		t.Errorf("orderNumber phải là 12, được %d", result.OrderNumber)
	}
}

func TestSubmit_SuccessClearsCartAndPhone(t *testing.T) {
	cart := NewCart()
	cart.AddToCart(AddItemInput{
		MenuKey:   "americano",
		Name:      "아메리카노",
		BasePrice: 3000,
		Count:     2,
		Max:       10,
		Options: []OptionSelection{
			{Key: "temp", Name: "온도", Type: "radio", Options: []string{"HOT", "ICE"}, Value: 1, Price: 0},
			{Key: "shot", Name: "샷 추가", Type: "range", Value: 2, Price: 1000},
		},
	})
	phone := completePhone()
	backend := &fakeOrderBackend{nextNumber: 42}
	checkout := NewCheckout(backend, cart, 0)

	result, err := checkout.Submit(context.Background(), 7, phone)
	if err != nil {
		t.Fatalf("Submit lỗi: %v", err)
	}

	if result.OrderNumber != 42 {
		t.Errorf("orderNumber phải là 42, được %d", result.OrderNumber)
	}
	if result.TotalPrice != 8000 {
		t.Errorf("totalPrice phải là (3000+1000)*2=8000, được %d", result.TotalPrice)
	}
	if result.Countdown != DefaultCompleteCountdown {
		t.Errorf("countdown mặc định phải là %v, được %v", DefaultCompleteCountdown, result.Countdown)
	}
	if len(cart.Items()) != 0 {
		t.Error("gửi thành công phải xóa giỏ")
	}
	if phone.Value() != PhonePrefix {
		t.Errorf("gửi thành công phải reset số điện thoại, còn %q", phone.Value())
	}

	if len(backend.created) != 1 {
		t.Fatalf("phải tạo đúng 1 đơn, được %d", len(backend.created))
	}
	order := backend.created[0]
	if order.StoreNumber != 7 || order.OrderNumber != 42 {
		t.Errorf("khóa đơn sai: store %d, number %d", order.StoreNumber, order.OrderNumber)
	}
	if order.PhoneNumber != "01012345678" {
		t.Errorf("phoneNumber phải là số thô, được %q", order.PhoneNumber)
	}
	if order.Status != ordermodels.StatusNew {
		t.Errorf("đơn mới phải có status %q, được %q", ordermodels.StatusNew, order.Status)
	}
	if len(order.Menu) != 1 {
		t.Fatalf("payload phải có 1 món, được %d", len(order.Menu))
	}

	item := order.Menu[0]
	if item.ID != "americano" || item.Quantity != 2 || item.Price != 8000 {
		t.Errorf("dòng món sai: %+v", item)
	}
	if len(item.Options) != 2 {
		t.Fatalf("phải giữ đủ 2 option, được %d", len(item.Options))
	}
	// Option radio map index về nhãn, option range giữ giá trị số
	if item.Options[0].Choice != "ICE" {
		t.Errorf("option radio phải map index 1 thành ICE, được %v", item.Options[0].Choice)
	}
	if item.Options[1].Choice != 2 {
		t.Errorf("option range phải giữ giá trị 2, được %v", item.Options[1].Choice)
	}
}

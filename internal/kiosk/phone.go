package kiosk

import (
	"sync"
)

// Độ dài và prefix cố định của số điện thoại Hàn Quốc trên kiosk
const (
	PhonePrefix = "010"
	PhoneLength = 11
)

// PhoneInput là trạng thái bàn phím nhập số điện thoại.
// Prefix "010" cố định: không xóa được và chữ số nhập thêm nối vào sau.
type PhoneInput struct {
	mu     sync.Mutex
	digits string
}

// NewPhoneInput tạo PhoneInput với prefix mặc định
func NewPhoneInput() *PhoneInput {
	return &PhoneInput{digits: PhonePrefix}
}

// AddDigit thêm một chữ số, bỏ qua khi đã đủ 11 số hoặc ký tự không phải số
func (p *PhoneInput) AddDigit(digit byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.digits) >= PhoneLength {
		return
	}
	if digit < '0' || digit > '9' {
		return
	}
	p.digits += string(digit)
}

// RemoveDigit xóa chữ số cuối, không bao giờ xóa vào prefix "010"
func (p *PhoneInput) RemoveDigit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.digits) <= len(PhonePrefix) {
		return
	}
	p.digits = p.digits[:len(p.digits)-1]
}

// Reset đưa về trạng thái ban đầu "010"
func (p *PhoneInput) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.digits = PhonePrefix
}

// Value trả về chuỗi số thô hiện tại
func (p *PhoneInput) Value() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.digits
}

// IsComplete cho biết đã nhập đủ 11 số chưa; nút gửi đơn chỉ bật khi đủ
func (p *PhoneInput) IsComplete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.digits) == PhoneLength
}

// Format trả về chuỗi hiển thị dạng 010-XXXX-XXXX theo độ dài hiện tại
func (p *PhoneInput) Format() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return FormatPhone(p.digits)
}

// FormatPhone chèn dấu gạch vào chuỗi số điện thoại đang nhập dở
func FormatPhone(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 3 {
		return value + "-"
	}
	if len(value) <= 7 {
		return value[:3] + "-" + value[3:]
	}
	return value[:3] + "-" + value[3:7] + "-" + value[7:]
}

// Package kiosk - Test bàn phím số điện thoại: tiền tố 010, giới hạn độ dài và format.
package kiosk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneInput_StartsWithPrefix(t *testing.T) {
	p := NewPhoneInput()
	if p.Value() != PhonePrefix {
		t.Errorf("số điện thoại phải bắt đầu từ %q, được %q", PhonePrefix, p.Value())
	}
	if p.IsComplete() {
		t.Error("mới tạo không thể đã đủ 11 số")
	}
}

func TestPhoneInput_AddDigitsToComplete(t *testing.T) {
	p := NewPhoneInput()
	for _, d := range []byte("12345678") {
		p.AddDigit(d)
	}

	if p.Value() != "01012345678" {
		t.Errorf("giá trị phải là 01012345678, được %q", p.Value())
	}
	if !p.IsComplete() {
		t.Error("đủ 11 số phải IsComplete")
	}

	// Đã đủ 11 số thì phím bấm thêm bị bỏ qua
	p.AddDigit('9')
	if p.Value() != "01012345678" {
		t.Errorf("quá 11 số phải bị chặn, được %q", p.Value())
	}
}

func TestPhoneInput_IgnoresNonDigit(t *testing.T) {
	p := NewPhoneInput()
	p.AddDigit('a')
	p.AddDigit('*')
	if p.Value() != PhonePrefix {
		t.Errorf("ký tự không phải số phải bị bỏ qua, được %q", p.Value())
	}
}

func TestPhoneInput_RemoveDigitFloorsAtPrefix(t *testing.T) {
	p := NewPhoneInput()
	p.AddDigit('1')
	p.RemoveDigit()
	if p.Value() != PhonePrefix {
		t.Errorf("xóa hết phải còn tiền tố %q, được %q", PhonePrefix, p.Value())
	}

	// Tiền tố không xóa được
	p.RemoveDigit()
	p.RemoveDigit()
	if p.Value() != PhonePrefix {
		t.Errorf("tiền tố 010 không được xóa, được %q", p.Value())
	}
}

func TestPhoneInput_Reset(t *testing.T) {
	p := NewPhoneInput()
	for _, d := range []byte("12345678") {
		p.AddDigit(d)
	}
	p.Reset()
	if p.Value() != PhonePrefix {
		t.Errorf("Reset phải về tiền tố %q, được %q", PhonePrefix, p.Value())
	}
}

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"010", "010-"},
		{"0101", "010-1"},
		{"0101234", "010-1234"},
		{"01012345", "010-1234-5"},
		{"01012345678", "010-1234-5678"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatPhone(c.value), "FormatPhone(%q)", c.value)
	}
}

// Package kiosk - Test hành vi giỏ hàng: gộp dòng, chặn max, cấp cartId và tính tiền.
package kiosk

import "testing"

func addAmericano(c *Cart, count int, iceValue int) LineItem {
	return c.AddToCart(AddItemInput{
		MenuKey:   "americano",
		Name:      "아메리카노",
		BasePrice: 1000,
		Count:     count,
		Min:       1,
		Max:       10,
		Options: []OptionSelection{
			{Key: "temp", Name: "온도", Type: "radio", Options: []string{"HOT", "ICE"}, Value: iceValue, Price: 0},
		},
	})
}

func TestAddToCart_MergesSameSelection(t *testing.T) {
	cart := NewCart()

	first := addAmericano(cart, 1, 1)
	second := addAmericano(cart, 2, 1)

	if len(cart.Items()) != 1 {
		t.Fatalf("cùng (menuKey, options) phải gộp thành 1 dòng, có %d dòng", len(cart.Items()))
	}
	if second.CartID != first.CartID {
		t.Errorf("gộp dòng phải giữ cartId cũ: %d != %d", second.CartID, first.CartID)
	}
	if second.Count != 3 {
		t.Errorf("count sau gộp phải là 3, được %d", second.Count)
	}
	if second.TotalPrice != 3000 {
		t.Errorf("totalPrice phải là 3000, được %d", second.TotalPrice)
	}
}

func TestAddToCart_DifferentOptionsCreateNewLine(t *testing.T) {
	cart := NewCart()

	addAmericano(cart, 1, 0)
	addAmericano(cart, 1, 1)

	if len(cart.Items()) != 2 {
		t.Fatalf("options khác nhau phải tạo dòng mới, có %d dòng", len(cart.Items()))
	}
}

func TestAddToCart_CapsAtMax(t *testing.T) {
	cart := NewCart()

	line := cart.AddToCart(AddItemInput{MenuKey: "latte", Name: "카페라떼", BasePrice: 4000, Count: 5, Max: 3})
	if line.Count != 3 {
		t.Errorf("count phải bị chặn tại max 3, được %d", line.Count)
	}

	line = cart.AddToCart(AddItemInput{MenuKey: "latte", Name: "카페라떼", BasePrice: 4000, Count: 1, Max: 3})
	if line.Count != 3 {
		t.Errorf("gộp dòng vẫn phải chặn tại max 3, được %d", line.Count)
	}
}

func TestAddToCart_DefaultMaxWhenUnset(t *testing.T) {
	cart := NewCart()

	line := cart.AddToCart(AddItemInput{MenuKey: "latte", Name: "카페라떼", BasePrice: 4000, Count: 150})
	if line.Count != DefaultMaxCount {
		t.Errorf("món không khai báo max phải chặn tại %d, được %d", DefaultMaxCount, line.Count)
	}
}

func TestCartID_MonotonicNeverReused(t *testing.T) {
	cart := NewCart()

	a := cart.AddToCart(AddItemInput{MenuKey: "a", Name: "A", BasePrice: 100, Count: 1})
	b := cart.AddToCart(AddItemInput{MenuKey: "b", Name: "B", BasePrice: 100, Count: 1})
	cart.RemoveItem(b.CartID)
	c := cart.AddToCart(AddItemInput{MenuKey: "c", Name: "C", BasePrice: 100, Count: 1})

	if c.CartID <= a.CartID {
		t.Errorf("cartId phải tăng dần: %d <= %d", c.CartID, a.CartID)
	}
	// b là id lớn nhất trước khi xóa; dòng mới vẫn phải vượt qua nó
	if c.CartID <= b.CartID {
		t.Errorf("cartId %d của dòng đã xóa không được cấp lại: dòng mới nhận %d", b.CartID, c.CartID)
	}

	cart.Clear()
	d := cart.AddToCart(AddItemInput{MenuKey: "d", Name: "D", BasePrice: 100, Count: 1})
	if d.CartID != 1 {
		t.Errorf("Clear bắt đầu thế hệ id mới từ 1, được %d", d.CartID)
	}
}

func TestDecreaseCount_RemovesLineAtOne(t *testing.T) {
	cart := NewCart()

	line := cart.AddToCart(AddItemInput{MenuKey: "a", Name: "A", BasePrice: 100, Count: 1})
	if !cart.DecreaseCount(line.CartID) {
		t.Fatal("DecreaseCount phải trả về true với cartId tồn tại")
	}
	if len(cart.Items()) != 0 {
		t.Errorf("giảm từ count 1 phải xóa hẳn dòng, còn %d dòng", len(cart.Items()))
	}
}

func TestIncreaseCount_RecomputesTotal(t *testing.T) {
	cart := NewCart()

	line := cart.AddToCart(AddItemInput{
		MenuKey:   "americano",
		Name:      "아메리카노",
		BasePrice: 3000,
		Count:     1,
		Max:       10,
		Options: []OptionSelection{
			{Key: "shot", Name: "샷 추가", Type: "range", Value: 2, Price: 1000},
		},
	})
	if line.TotalPrice != 4000 {
		t.Fatalf("totalPrice ban đầu phải là 4000, được %d", line.TotalPrice)
	}

	cart.IncreaseCount(line.CartID)
	items := cart.Items()
	if items[0].TotalPrice != 8000 {
		t.Errorf("totalPrice sau tăng phải là (3000+1000)*2=8000, được %d", items[0].TotalPrice)
	}
	if cart.TotalPrice() != 8000 {
		t.Errorf("tổng giỏ phải là 8000, được %d", cart.TotalPrice())
	}
}

func TestGetItemCount_SumsAcrossLines(t *testing.T) {
	cart := NewCart()

	addAmericano(cart, 2, 0)
	addAmericano(cart, 3, 1)

	if got := cart.GetItemCount("americano"); got != 5 {
		t.Errorf("GetItemCount phải cộng mọi dòng cùng menuKey: muốn 5, được %d", got)
	}
	if got := cart.GetItemCount("latte"); got != 0 {
		t.Errorf("món chưa có trong giỏ phải trả về 0, được %d", got)
	}
}

func TestComputeOptionsSignature_OrderIndependent(t *testing.T) {
	a := ComputeOptionsSignature([]OptionSelection{
		{Key: "temp", Value: 1},
		{Key: "shot", Value: 2},
	})
	b := ComputeOptionsSignature([]OptionSelection{
		{Key: "shot", Value: 2},
		{Key: "temp", Value: 1},
	})
	if a != b {
		t.Errorf("chữ ký không được phụ thuộc thứ tự option: %q != %q", a, b)
	}
	if a != "shot:2|temp:1" {
		t.Errorf("chữ ký phải là các cặp key:value sắp xếp nối bằng |, được %q", a)
	}
}

func TestClear_EmptiesCart(t *testing.T) {
	cart := NewCart()
	addAmericano(cart, 2, 0)
	cart.Clear()

	if len(cart.Items()) != 0 || cart.TotalPrice() != 0 {
		t.Error("Clear phải xóa sạch giỏ và tổng tiền về 0")
	}
}

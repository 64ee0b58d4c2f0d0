package kiosk

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// DefaultMaxCount áp dụng khi món không khai báo max riêng
const DefaultMaxCount = 99

// OptionSelection là một lựa chọn option đã chốt trên một dòng giỏ hàng.
// Value là index nhãn với type radio, là số lượng với type range.
// Price là phần đóng góp vào giá: 0 với radio, value*đơn giá với range.
type OptionSelection struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Value   int      `json:"value"`
	Price   int64    `json:"price"`
}

// LineItem là một dòng trong giỏ hàng.
// Bất biến: mỗi cặp (MenuKey, OptionsSignature) chỉ có tối đa một dòng.
type LineItem struct {
	CartID           int               `json:"cartId"`
	MenuKey          string            `json:"menuKey"`
	Name             string            `json:"name"`
	BasePrice        int64             `json:"basePrice"`
	Count            int               `json:"count"`
	Min              int               `json:"min"`
	Max              int               `json:"max"`
	Options          []OptionSelection `json:"options"`
	OptionsSignature string            `json:"optionsSignature"`
	TotalPrice       int64             `json:"totalPrice"`
}

// ComputeOptionsSignature tạo chữ ký chuẩn cho một tập lựa chọn option:
// các cặp "key:value" sắp xếp rồi nối bằng "|". Dòng giỏ hàng có cùng
// (menuKey, chữ ký) được gộp với nhau.
func ComputeOptionsSignature(options []OptionSelection) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		parts = append(parts, o.Key+":"+strconv.Itoa(o.Value))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// AddItemInput là dữ liệu một lần "thêm vào giỏ" từ màn hình option
type AddItemInput struct {
	MenuKey   string            `json:"menuKey"`
	Name      string            `json:"name"`
	BasePrice int64             `json:"basePrice"`
	Count     int               `json:"count"`
	Min       int               `json:"min"`
	Max       int               `json:"max"`
	Options   []OptionSelection `json:"options"`
}

// Cart là giỏ hàng của kiosk, một instance cho cả tiến trình.
type Cart struct {
	mu     sync.Mutex
	items  []LineItem
	nextID int
}

// NewCart tạo giỏ hàng rỗng
func NewCart() *Cart {
	return &Cart{}
}

func optionSum(options []OptionSelection) int64 {
	var sum int64
	for _, o := range options {
		sum += o.Price
	}
	return sum
}

func maxCount(max int) int {
	if max <= 0 {
		return DefaultMaxCount
	}
	return max
}

// nextCartID cấp id mới từ bộ đếm tăng dần, không bao giờ tái sử dụng
// id của dòng đã xóa trong cùng một thế hệ giỏ.
func (c *Cart) nextCartID() int {
	c.nextID++
	return c.nextID
}

// AddToCart thêm một lựa chọn vào giỏ. Dòng đã có cùng
// (menuKey, optionsSignature) được cộng dồn count (chặn tại max),
// lựa chọn khác biệt tạo dòng mới.
func (c *Cart) AddToCart(input AddItemInput) LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	signature := ComputeOptionsSignature(input.Options)
	sum := optionSum(input.Options)
	max := maxCount(input.Max)

	for i, item := range c.items {
		if item.MenuKey == input.MenuKey && item.OptionsSignature == signature {
			newCount := item.Count + input.Count
			if newCount > max {
				newCount = max
			}
			c.items[i].Count = newCount
			c.items[i].TotalPrice = (item.BasePrice + sum) * int64(newCount)
			return c.items[i]
		}
	}

	count := input.Count
	if count > max {
		count = max
	}
	line := LineItem{
		CartID:           c.nextCartID(),
		MenuKey:          input.MenuKey,
		Name:             input.Name,
		BasePrice:        input.BasePrice,
		Count:            count,
		Min:              input.Min,
		Max:              input.Max,
		Options:          input.Options,
		OptionsSignature: signature,
		TotalPrice:       (input.BasePrice + sum) * int64(count),
	}
	c.items = append(c.items, line)
	return line
}

// IncreaseCount tăng count của một dòng thêm 1, chặn tại max.
// Trả về false nếu không có dòng với cartId tương ứng.
func (c *Cart) IncreaseCount(cartID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.CartID != cartID {
			continue
		}
		max := maxCount(item.Max)
		newCount := item.Count + 1
		if newCount > max {
			newCount = max
		}
		c.items[i].Count = newCount
		c.items[i].TotalPrice = (item.BasePrice + optionSum(item.Options)) * int64(newCount)
		return true
	}
	return false
}

// DecreaseCount giảm count của một dòng đi 1. Giảm từ 1 xóa hẳn dòng
// khỏi giỏ chứ không để count 0.
func (c *Cart) DecreaseCount(cartID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.CartID != cartID {
			continue
		}
		if item.Count == 1 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
		newCount := item.Count - 1
		c.items[i].Count = newCount
		c.items[i].TotalPrice = (item.BasePrice + optionSum(item.Options)) * int64(newCount)
		return true
	}
	return false
}

// RemoveItem xóa một dòng theo cartId
func (c *Cart) RemoveItem(cartID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.CartID == cartID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear xóa toàn bộ giỏ hàng và bắt đầu thế hệ id mới
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.nextID = 0
}

// GetItemCount trả về tổng count của mọi dòng cùng menuKey, dùng chặn
// vượt max của món khi mở màn hình option.
func (c *Cart) GetItemCount(menuKey string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		if item.MenuKey == menuKey {
			total += item.Count
		}
	}
	return total
}

// Items trả về bản sao các dòng hiện tại
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// TotalPrice trả về tổng tiền của giỏ
func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, item := range c.items {
		total += item.TotalPrice
	}
	return total
}

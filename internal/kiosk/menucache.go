package kiosk

import (
	"context"
	"sort"
	"sync"

	"meta_kiosk/internal/api/events"
	menumodels "meta_kiosk/internal/api/menu/models"
	"meta_kiosk/internal/global"
)

// CategoryAll là danh mục ảo hiển thị mọi món
const CategoryAll = "ALL"

// MenuSource là phần backend mà cache menu cần
type MenuSource interface {
	GetMenu(ctx context.Context, storeNumber int) ([]menumodels.Menu, error)
	GetCategories(ctx context.Context, storeNumber int) ([]menumodels.MenuCategory, error)
}

// MenuItemView là món đã chuẩn hóa cho UI kiosk: max/min mặc định 1,
// chỉ chứa món đang hiển thị.
type MenuItemView struct {
	MenuKey  string                  `json:"menuKey"`
	Category string                  `json:"category"`
	Name     string                  `json:"name"`
	Price    int64                   `json:"price"`
	Image    string                  `json:"image,omitempty"`
	Min      int                     `json:"min"`
	Max      int                     `json:"max"`
	Options  []menumodels.MenuOption `json:"options"`
}

// MenuSnapshot là bản chụp menu cho một lần render
type MenuSnapshot struct {
	Categories []string       `json:"categories"`
	Items      []MenuItemView `json:"items"`
}

// MenuCache giữ bản chụp menu của cửa hàng trong bộ nhớ và cập nhật dần
// theo event thay đổi dữ liệu, để UI không phải query mỗi lần render.
type MenuCache struct {
	source MenuSource

	mu          sync.Mutex
	storeNumber int
	categories  []string
	items       map[string]MenuItemView
}

// NewMenuCache tạo cache rỗng cho một cửa hàng
func NewMenuCache(source MenuSource, storeNumber int) *MenuCache {
	return &MenuCache{
		source:      source,
		storeNumber: storeNumber,
		categories:  []string{CategoryAll},
		items:       map[string]MenuItemView{},
	}
}

func normalizeMenuItem(menu menumodels.Menu) MenuItemView {
	min := menu.Min
	if min <= 0 {
		min = 1
	}
	max := menu.Max
	if max <= 0 {
		max = 1
	}
	options := menu.Options
	if options == nil {
		options = []menumodels.MenuOption{}
	}
	return MenuItemView{
		MenuKey:  menu.MenuKey,
		Category: menu.Category,
		Name:     menu.Name,
		Price:    menu.Price,
		Image:    menu.Image,
		Min:      min,
		Max:      max,
		Options:  options,
	}
}

// Load nạp lại toàn bộ danh mục và món từ backend
func (c *MenuCache) Load(ctx context.Context) error {
	categories, err := c.source.GetCategories(ctx, c.storeNumber)
	if err != nil {
		return err
	}
	menus, err := c.source.GetMenu(ctx, c.storeNumber)
	if err != nil {
		return err
	}

	names := []string{CategoryAll}
	for _, category := range categories {
		if category.Name != "" {
			names = append(names, category.Name)
		}
	}

	items := map[string]MenuItemView{}
	for _, menu := range menus {
		if !menu.Status || menu.MenuKey == "" {
			continue
		}
		items[menu.MenuKey] = normalizeMenuItem(menu)
	}

	c.mu.Lock()
	c.categories = names
	c.items = items
	c.mu.Unlock()
	return nil
}

// ReloadCategories nạp lại riêng danh mục (gọi khi danh mục thay đổi)
func (c *MenuCache) ReloadCategories(ctx context.Context) error {
	categories, err := c.source.GetCategories(ctx, c.storeNumber)
	if err != nil {
		return err
	}
	names := []string{CategoryAll}
	for _, category := range categories {
		if category.Name != "" {
			names = append(names, category.Name)
		}
	}
	c.mu.Lock()
	c.categories = names
	c.mu.Unlock()
	return nil
}

// ApplyMenuChange cập nhật cache theo một thay đổi của collection menus.
// Xóa hoặc chuyển status false gỡ món khỏi cache; thay đổi khác ghi đè.
func (c *MenuCache) ApplyMenuChange(operation string, menu *menumodels.Menu) {
	if menu == nil || menu.MenuKey == "" {
		return
	}
	if menu.StoreNumber != c.storeNumber || menu.Version != menumodels.CurrentMenuVersion {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if operation == events.OpDelete || !menu.Status {
		delete(c.items, menu.MenuKey)
		return
	}
	c.items[menu.MenuKey] = normalizeMenuItem(*menu)
}

// Subscribe đăng ký cache lên event bus thay đổi dữ liệu.
// Thay đổi danh mục nạp lại danh sách danh mục; thay đổi món áp từng phần.
func (c *MenuCache) Subscribe() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		switch e.CollectionName {
		case global.MongoDB_ColNames.Menus:
			if menu := asMenu(e.Document); menu != nil {
				c.ApplyMenuChange(e.Operation, menu)
			}
		case global.MongoDB_ColNames.MenuCategories:
			_ = c.ReloadCategories(ctx)
		}
	})
}

func asMenu(doc interface{}) *menumodels.Menu {
	switch v := doc.(type) {
	case *menumodels.Menu:
		return v
	case menumodels.Menu:
		return &v
	default:
		return nil
	}
}

// Snapshot trả về bản chụp hiện tại, món sắp theo menuKey cho ổn định
func (c *MenuCache) Snapshot() MenuSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	categories := make([]string, len(c.categories))
	copy(categories, c.categories)

	items := make([]MenuItemView, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MenuKey < items[j].MenuKey })

	return MenuSnapshot{Categories: categories, Items: items}
}

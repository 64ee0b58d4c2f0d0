// Package kiosk - Test cache menu: nạp, chuẩn hóa và cập nhật theo event.
package kiosk

import (
	"context"
	"testing"

	"meta_kiosk/internal/api/events"
	menumodels "meta_kiosk/internal/api/menu/models"
)

type fakeMenuSource struct {
	menus      []menumodels.Menu
	categories []menumodels.MenuCategory
}

func (s *fakeMenuSource) GetMenu(ctx context.Context, storeNumber int) ([]menumodels.Menu, error) {
	return s.menus, nil
}

func (s *fakeMenuSource) GetCategories(ctx context.Context, storeNumber int) ([]menumodels.MenuCategory, error) {
	return s.categories, nil
}

func testMenu(key string, category string, status bool) menumodels.Menu {
	return menumodels.Menu{
		StoreNumber: 7,
		Version:     menumodels.CurrentMenuVersion,
		MenuKey:     key,
		Category:    category,
		Name:        key,
		Price:       3000,
		Status:      status,
	}
}

func TestMenuCacheLoad_FiltersHiddenAndNormalizes(t *testing.T) {
	source := &fakeMenuSource{
		menus: []menumodels.Menu{
			testMenu("americano", "커피", true),
			testMenu("latte", "커피", false),
		},
		categories: []menumodels.MenuCategory{
			{StoreNumber: 7, Name: "커피", Order: 1},
			{StoreNumber: 7, Name: "디저트", Order: 2},
		},
	}
	cache := NewMenuCache(source, 7)

	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("Load lỗi: %v", err)
	}

	snap := cache.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("món status false phải bị lọc, còn %d món", len(snap.Items))
	}
	item := snap.Items[0]
	if item.MenuKey != "americano" {
		t.Errorf("món còn lại phải là americano, được %q", item.MenuKey)
	}
	if item.Min != 1 || item.Max != 1 {
		t.Errorf("min/max không khai báo phải chuẩn hóa về 1, được %d/%d", item.Min, item.Max)
	}
	if item.Options == nil {
		t.Error("options phải chuẩn hóa thành slice rỗng, không được nil")
	}

	if len(snap.Categories) != 3 || snap.Categories[0] != CategoryAll {
		t.Errorf("danh mục phải có %q đứng đầu: %v", CategoryAll, snap.Categories)
	}
}

func TestApplyMenuChange_IgnoresOtherStoreAndVersion(t *testing.T) {
	cache := NewMenuCache(&fakeMenuSource{}, 7)

	other := testMenu("americano", "커피", true)
	other.StoreNumber = 8
	cache.ApplyMenuChange(events.OpInsert, &other)

	oldVersion := testMenu("latte", "커피", true)
	oldVersion.Version = "v4"
	cache.ApplyMenuChange(events.OpInsert, &oldVersion)

	if len(cache.Snapshot().Items) != 0 {
		t.Error("thay đổi của cửa hàng khác hoặc version khác phải bị bỏ qua")
	}
}

func TestApplyMenuChange_UpsertAndRemove(t *testing.T) {
	cache := NewMenuCache(&fakeMenuSource{}, 7)

	menu := testMenu("americano", "커피", true)
	cache.ApplyMenuChange(events.OpInsert, &menu)
	if len(cache.Snapshot().Items) != 1 {
		t.Fatal("insert phải thêm món vào cache")
	}

	// Tắt hiển thị gỡ món khỏi cache
	hidden := testMenu("americano", "커피", false)
	cache.ApplyMenuChange(events.OpUpdate, &hidden)
	if len(cache.Snapshot().Items) != 0 {
		t.Error("status false phải gỡ món khỏi cache")
	}

	cache.ApplyMenuChange(events.OpInsert, &menu)
	cache.ApplyMenuChange(events.OpDelete, &menu)
	if len(cache.Snapshot().Items) != 0 {
		t.Error("delete phải gỡ món khỏi cache")
	}
}

func TestSnapshot_SortedByMenuKey(t *testing.T) {
	cache := NewMenuCache(&fakeMenuSource{}, 7)

	b := testMenu("b-latte", "커피", true)
	a := testMenu("a-americano", "커피", true)
	cache.ApplyMenuChange(events.OpInsert, &b)
	cache.ApplyMenuChange(events.OpInsert, &a)

	snap := cache.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("phải có 2 món, được %d", len(snap.Items))
	}
	if snap.Items[0].MenuKey != "a-americano" {
		t.Errorf("snapshot phải sắp theo menuKey, đầu tiên là %q", snap.Items[0].MenuKey)
	}
}

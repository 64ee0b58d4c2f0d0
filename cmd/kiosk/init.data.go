package main

import (
	"context"

	basesvc "meta_kiosk/internal/api/base/service"
	menumodels "meta_kiosk/internal/api/menu/models"
	menusvc "meta_kiosk/internal/api/menu/service"
	storesvc "meta_kiosk/internal/api/store/service"
	"meta_kiosk/internal/global"
	"meta_kiosk/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// InitDefaultData khởi tạo dữ liệu mẫu cho lần chạy đầu tiên.
// Chỉ chạy khi INITMODE=true; cài đặt thật quản lý store/menu qua API quản trị.
func InitDefaultData() {
	log := logger.GetAppLogger()

	if !global.MongoDB_ServerConfig.InitMode {
		log.Info("InitMode disabled, skipping default data")
		return
	}

	log.Info("InitMode enabled, seeding default data...")
	ctx := context.Background()

	if err := seedDemoStore(ctx); err != nil {
		log.Fatalf("Failed to seed demo store: %v", err)
	}
	if err := seedDemoMenu(ctx); err != nil {
		log.Fatalf("Failed to seed demo menu: %v", err)
	}

	log.Info("Default data seeded successfully")
}

// seedDemoStore tạo cửa hàng demo số 1 nếu chưa có.
// Email để trống: admin phải cập nhật email trùng tài khoản operator thì
// kiosk mới qua được bước kiểm tra cấu hình cửa hàng.
func seedDemoStore(ctx context.Context) error {
	storeService, err := storesvc.NewStoreService()
	if err != nil {
		return err
	}

	exists, err := storeService.DocumentExists(ctx, bson.M{"store_number": 1})
	if err != nil || exists {
		return err
	}

	_, err = storeService.Upsert(ctx, bson.M{"store_number": 1}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"store_number":    1,
			"name":            "데모 매장",
			"email":           "",
			"default_banners": []interface{}{},
			"default_status": map[string]interface{}{
				"banner": nil,
				"reason": "",
				"img":    "",
			},
		},
	})
	return err
}

// seedDemoMenu tạo một danh mục và hai món mẫu cho cửa hàng demo
func seedDemoMenu(ctx context.Context) error {
	categoryService, err := menusvc.NewMenuCategoryService()
	if err != nil {
		return err
	}
	menuService, err := menusvc.NewMenuService()
	if err != nil {
		return err
	}

	if _, err := categoryService.Upsert(ctx, bson.M{"store_number": 1, "name": "커피"}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"store_number": 1,
			"name":         "커피",
			"order":        1,
		},
	}); err != nil {
		return err
	}

	menus := []map[string]interface{}{
		{
			"store_number": 1,
			"version":      menumodels.CurrentMenuVersion,
			"menu_key":     "americano",
			"category":     "커피",
			"name":         "아메리카노",
			"price":        int64(3000),
			"min":          1,
			"max":          10,
			"status":       true,
			"options": []map[string]interface{}{
				{
					"key":     "temp",
					"name":    "온도",
					"type":    menumodels.OptionTypeRadio,
					"options": []string{"HOT", "ICE"},
					"default": 0,
					"price":   int64(0),
				},
				{
					"key":   "shot",
					"name":  "샷 추가",
					"type":  menumodels.OptionTypeRange,
					"min":   0,
					"max":   3,
					"price": int64(500),
				},
			},
		},
		{
			"store_number": 1,
			"version":      menumodels.CurrentMenuVersion,
			"menu_key":     "latte",
			"category":     "커피",
			"name":         "카페라떼",
			"price":        int64(4000),
			"min":          1,
			"max":          10,
			"status":       true,
			"options":      []map[string]interface{}{},
		},
	}

	for _, menu := range menus {
		filter := bson.M{
			"store_number": menu["store_number"],
			"version":      menu["version"],
			"menu_key":     menu["menu_key"],
		}
		if _, err := menuService.Upsert(ctx, filter, &basesvc.UpdateData{Set: menu}); err != nil {
			return err
		}
	}
	return nil
}

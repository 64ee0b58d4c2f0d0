// Package menusvc - service danh mục món (MenuCategory).
package menusvc

import (
	"context"
	"fmt"

	basesvc "meta_kiosk/internal/api/base/service"
	models "meta_kiosk/internal/api/menu/models"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MenuCategoryService là cấu trúc chứa các phương thức liên quan đến danh mục món
type MenuCategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.MenuCategory]
}

// NewMenuCategoryService tạo mới MenuCategoryService
func NewMenuCategoryService() (*MenuCategoryService, error) {
	categoryCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MenuCategories)
	if !exist {
		return nil, fmt.Errorf("failed to get menu_categories collection: %v", common.ErrNotFound)
	}

	return &MenuCategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.MenuCategory](categoryCollection),
	}, nil
}

// GetCategories lấy danh mục của cửa hàng theo thứ tự hiển thị
func (s *MenuCategoryService) GetCategories(ctx context.Context, storeNumber int) ([]models.MenuCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	return s.BaseServiceMongoImpl.Find(ctx, bson.M{"store_number": storeNumber}, opts)
}

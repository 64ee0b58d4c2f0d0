// Package menusvc - service món (Menu).
package menusvc

import (
	"context"
	"fmt"

	basesvc "meta_kiosk/internal/api/base/service"
	models "meta_kiosk/internal/api/menu/models"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/global"

	"go.mongodb.org/mongo-driver/bson"
)

// MenuService là cấu trúc chứa các phương thức liên quan đến món
type MenuService struct {
	*basesvc.BaseServiceMongoImpl[models.Menu]
}

// NewMenuService tạo mới MenuService
func NewMenuService() (*MenuService, error) {
	menuCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Menus)
	if !exist {
		return nil, fmt.Errorf("failed to get menus collection: %v", common.ErrNotFound)
	}

	return &MenuService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Menu](menuCollection),
	}, nil
}

// GetMenu lấy toàn bộ món version hiện hành của một cửa hàng.
// Món ẩn (status false) vẫn được trả về, tầng cache của kiosk lọc tiếp
// vì realtime update có thể chuyển status qua lại.
func (s *MenuService) GetMenu(ctx context.Context, storeNumber int) ([]models.Menu, error) {
	filter := bson.M{
		"store_number": storeNumber,
		"version":      models.CurrentMenuVersion,
	}
	return s.BaseServiceMongoImpl.Find(ctx, filter, nil)
}

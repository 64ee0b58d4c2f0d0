// Package storesvc - service cửa hàng (Store).
package storesvc

import (
	"context"
	"fmt"

	basesvc "meta_kiosk/internal/api/base/service"
	models "meta_kiosk/internal/api/store/models"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/global"

	"go.mongodb.org/mongo-driver/bson"
)

// StoreService là cấu trúc chứa các phương thức liên quan đến cửa hàng
type StoreService struct {
	*basesvc.BaseServiceMongoImpl[models.Store]
}

// NewStoreService tạo mới StoreService
func NewStoreService() (*StoreService, error) {
	storeCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Stores)
	if !exist {
		return nil, fmt.Errorf("failed to get stores collection: %v", common.ErrNotFound)
	}

	return &StoreService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Store](storeCollection),
	}, nil
}

// GetByNumber tìm cửa hàng theo số cửa hàng
func (s *StoreService) GetByNumber(ctx context.Context, storeNumber int) (*models.Store, error) {
	store, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"store_number": storeNumber}, nil)
	if err != nil {
		return nil, err
	}
	return &store, nil
}

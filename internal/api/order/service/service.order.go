// Package ordersvc - service đơn hàng (Order) và bộ đếm số thứ tự.
package ordersvc

import (
	"context"
	"fmt"
	"time"

	basesvc "meta_kiosk/internal/api/base/service"
	models "meta_kiosk/internal/api/order/models"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderService là cấu trúc chứa các phương thức liên quan đến đơn hàng
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[models.Order]
	counterService *basesvc.BaseServiceMongoImpl[models.OrderCounter]
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	counterCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrderCounters)
	if !exist {
		return nil, fmt.Errorf("failed to get order_counters collection: %v", common.ErrNotFound)
	}

	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Order](orderCollection),
		counterService:       basesvc.NewBaseServiceMongo[models.OrderCounter](counterCollection),
	}, nil
}

// CreateOrder tạo đơn hàng mới với trạng thái new
func (s *OrderService) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	if order.Status == "" {
		order.Status = models.StatusNew
	}
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// NextOrderNumber cấp số thứ tự đơn tiếp theo cho (storeNumber, date).
// $inc trên document bộ đếm với upsert đảm bảo số tuần tự, không trùng
// kể cả khi nhiều kiosk của cùng cửa hàng checkout đồng thời.
func (s *OrderService) NextOrderNumber(ctx context.Context, storeNumber int, date string) (int, error) {
	filter := bson.M{
		"store_number": storeNumber,
		"date":         date,
	}
	update := &basesvc.UpdateData{
		Inc: map[string]interface{}{"seq": 1},
		SetOnInsert: map[string]interface{}{
			"store_number": storeNumber,
			"date":         date,
			"createdAt":    time.Now().UnixMilli(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	counter, err := s.counterService.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// Today trả về ngày hiện tại dạng YYYY-MM-DD, khớp khóa date của bộ đếm
func Today() string {
	return time.Now().Format("2006-01-02")
}

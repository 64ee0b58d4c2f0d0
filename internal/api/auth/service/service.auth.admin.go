// Package authsvc - service quản trị viên cửa hàng (Admin).
package authsvc

import (
	"context"
	"fmt"

	models "meta_kiosk/internal/api/auth/models"
	basesvc "meta_kiosk/internal/api/base/service"
	"meta_kiosk/internal/common"
	"meta_kiosk/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminService là cấu trúc chứa các phương thức liên quan đến admin cửa hàng
type AdminService struct {
	*basesvc.BaseServiceMongoImpl[models.Admin]
}

// NewAdminService tạo mới AdminService
func NewAdminService() (*AdminService, error) {
	adminCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Admins)
	if !exist {
		return nil, fmt.Errorf("failed to get admins collection: %v", common.ErrNotFound)
	}

	return &AdminService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Admin](adminCollection),
	}, nil
}

// GetAdminByUserID tìm admin gắn với user đã đăng nhập
func (s *AdminService) GetAdminByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Admin, error) {
	admin, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"userId": userID}, nil)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// RequireKioskAccess kiểm tra admin của user có cờ kiosk hay không.
// Trả về admin nếu hợp lệ, lỗi ErrNoKioskAccess (403) nếu không có quyền.
func (s *AdminService) RequireKioskAccess(ctx context.Context, userID primitive.ObjectID) (*models.Admin, error) {
	admin, err := s.GetAdminByUserID(ctx, userID)
	if err != nil {
		return nil, common.ErrNoKioskAccess
	}
	if !admin.HasCapability(models.CapabilityKiosk) {
		return nil, common.ErrNoKioskAccess
	}
	return admin, nil
}

// Package devicesvc - theo dõi thay đổi thiết bị qua Mongo change stream.
package devicesvc

import (
	"context"
	"errors"

	models "meta_kiosk/internal/api/device/models"
	"meta_kiosk/internal/common"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// deviceChangeEvent là phần change stream event mà Watch cần đọc
type deviceChangeEvent struct {
	OperationType string         `bson:"operationType"`
	FullDocument  *models.Device `bson:"fullDocument"`
}

// Watch mở change stream trên collection devices và gọi onChange khi thiết bị
// theo khóa (store_number, device_code) thay đổi.
//
// Insert/update/replace khớp khóa được đẩy thẳng qua onChange. Delete event
// của Mongo không mang fullDocument nên mọi delete trong collection đều kích
// hoạt đọc lại theo khóa; nếu bản ghi không còn, onChange nhận nil để tầng
// trên tự đăng ký lại. Cách này bắt được cả trường hợp admin xóa hàng loạt
// thiết bị của cửa hàng.
//
// Hàm trả về func dừng stream. Stream lỗi giữa chừng chỉ được log, không tự
// kết nối lại; vòng resolution phía trên chịu trách nhiệm mở lại khi cần.
func (s *DeviceService) Watch(ctx context.Context, storeNumber int, deviceCode string, onChange func(*models.Device)) (func(), error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}},
		}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := s.Collection().Watch(streamCtx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, common.ConvertMongoError(err)
	}

	go func() {
		defer stream.Close(context.Background())

		for stream.Next(streamCtx) {
			var event deviceChangeEvent
			if err := stream.Decode(&event); err != nil {
				logrus.WithError(err).Warn("DeviceService.Watch: không decode được change event")
				continue
			}

			if event.OperationType == "delete" {
				latest, err := s.GetByKey(streamCtx, storeNumber, deviceCode)
				if err != nil {
					if errors.Is(err, common.ErrNotFound) {
						onChange(nil)
					} else {
						logrus.WithError(err).Warn("DeviceService.Watch: lỗi đọc lại thiết bị sau delete event")
					}
					continue
				}
				onChange(latest)
				continue
			}

			doc := event.FullDocument
			if doc == nil || doc.StoreNumber != storeNumber || doc.DeviceCode != deviceCode {
				continue
			}
			onChange(doc)
		}

		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			logrus.WithError(err).Error("DeviceService.Watch: change stream kết thúc vì lỗi")
		}
	}()

	return cancel, nil
}

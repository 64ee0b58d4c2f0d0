// Package database - Index cho các collection kiosk (unique key nghiệp vụ, compound).
package database

import (
	"context"
	"strings"

	"meta_kiosk/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateKioskIndexes tạo các index nghiệp vụ của hệ thống kiosk.
// Gọi một lần lúc boot, sau khi đăng ký registry collection.
func CreateKioskIndexes(ctx context.Context, db *mongo.Database) error {
	// auth_users: firebaseUid là khóa định danh với Firebase
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
		Options: options.Index().SetName("user_firebase_uid").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("user_email").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// admins: mỗi user chỉ gắn với một bản ghi admin
	admins := db.Collection(global.MongoDB_ColNames.Admins)
	if _, err := admins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("admin_user_id").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// stores: store_number là khóa nghiệp vụ
	stores := db.Collection(global.MongoDB_ColNames.Stores)
	if _, err := stores.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "store_number", Value: 1}},
		Options: options.Index().SetName("store_number").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// devices: (store_number, device_code) là khóa thiết bị
	devices := db.Collection(global.MongoDB_ColNames.Devices)
	if _, err := devices.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "store_number", Value: 1},
			{Key: "device_code", Value: 1},
		},
		Options: options.Index().SetName("device_store_code").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// menus: (store_number, version, menu_key) định danh một món của một version
	menus := db.Collection(global.MongoDB_ColNames.Menus)
	if _, err := menus.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "store_number", Value: 1},
			{Key: "version", Value: 1},
			{Key: "menu_key", Value: 1},
		},
		Options: options.Index().SetName("menu_store_version_key").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// menu_categories: đọc theo cửa hàng, sắp theo order hiển thị
	menuCategories := db.Collection(global.MongoDB_ColNames.MenuCategories)
	if _, err := menuCategories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "store_number", Value: 1},
			{Key: "order", Value: 1},
		},
		Options: options.Index().SetName("menu_category_store_order"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// orders: màn hình quản lý đọc đơn mới nhất của cửa hàng trước
	orders := db.Collection(global.MongoDB_ColNames.Orders)
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "store_number", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("order_store_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "store_number", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("order_store_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// order_counters: mỗi (cửa hàng, ngày) một bộ đếm duy nhất
	orderCounters := db.Collection(global.MongoDB_ColNames.OrderCounters)
	if _, err := orderCounters.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "store_number", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetName("order_counter_store_date").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}

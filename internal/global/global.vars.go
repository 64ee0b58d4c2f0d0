// Package global chứa các biến toàn cục của hệ thống: phiên MongoDB, cấu hình,
// validator và registry collections.
package global

import (
	"meta_kiosk/config"
	"meta_kiosk/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Kiosk_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Kiosk_CollectionName struct {
	Users          string // Tên collection cho người dùng
	Admins         string // Tên collection cho quản trị viên cửa hàng
	Stores         string // Tên collection cho cửa hàng
	Devices        string // Tên collection cho thiết bị kiosk
	Menus          string // Tên collection cho món
	MenuCategories string // Tên collection cho danh mục món
	Orders         string // Tên collection cho đơn hàng
	OrderCounters  string // Tên collection cho bộ đếm số thứ tự đơn theo ngày
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames MongoDB_Kiosk_CollectionName = *new(MongoDB_Kiosk_CollectionName)

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

// Package router chứa hạ tầng đăng ký route dùng chung: CRUDHandler, CRUDConfig
// và các helper đăng ký route có middleware.
package router

import (
	"fmt"
	"strings"
	"sync"

	"meta_kiosk/internal/api/middleware"

	"github.com/gofiber/fiber/v3"
)

// CRUDHandler định nghĩa các handler CRUD chuẩn mà mọi domain handler kế thừa
// từ BaseHandler đều có sẵn.
type CRUDHandler interface {
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
	Find(c fiber.Ctx) error
	UpdateOne(c fiber.Ctx) error
	UpdateMany(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	DeleteOne(c fiber.Ctx) error
	DeleteMany(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	FindOneAndUpdate(c fiber.Ctx) error
	FindOneAndDelete(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	Upsert(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// CRUDConfig cấu hình bật tắt từng nhóm route CRUD cho một domain
type CRUDConfig struct {
	EnableInsert   bool // POST /insert-one, /insert-many
	EnableFind     bool // GET /find, /find-one, /find-by-id, /find-by-ids, /find-with-pagination
	EnableUpdate   bool // PUT /update-one, /update-many, /update-by-id, /find-one-and-update
	EnableDelete   bool // DELETE /delete-one, /delete-many, /delete-by-id, /find-one-and-delete
	EnableCount    bool // GET /count
	EnableDistinct bool // GET /distinct
	EnableUpsert   bool // POST /upsert-one
	EnableExists   bool // GET /exists
	RequireAuth    bool // Có yêu cầu xác thực hay không
}

// ReadOnlyConfig chỉ bật các route đọc dữ liệu
var ReadOnlyConfig = CRUDConfig{
	EnableFind:     true,
	EnableCount:    true,
	EnableDistinct: true,
	EnableExists:   true,
	RequireAuth:    true,
}

// ReadWriteConfig bật toàn bộ route CRUD
var ReadWriteConfig = CRUDConfig{
	EnableInsert:   true,
	EnableFind:     true,
	EnableUpdate:   true,
	EnableDelete:   true,
	EnableCount:    true,
	EnableDistinct: true,
	EnableUpsert:   true,
	EnableExists:   true,
	RequireAuth:    true,
}

// RoutePrefix chứa các prefix chuẩn của API
type RoutePrefix struct {
	Base string
	V1   string
}

// Router là cấu trúc đăng ký route cho toàn hệ thống
type Router struct {
	Prefix RoutePrefix
}

var (
	routerInstance *Router
	routerOnce     sync.Once
)

// NewRouter trả về instance singleton của Router
func NewRouter() *Router {
	routerOnce.Do(func() {
		routerInstance = &Router{
			Prefix: RoutePrefix{
				Base: "/api",
				V1:   "/api/v1",
			},
		}
	})
	return routerInstance
}

// RegisterRouteWithMiddleware đăng ký route có middleware qua Group.
// Fiber v3 (beta) không chạy middleware khi truyền inline vào router.Get(path, mw, handler),
// vì vậy bắt buộc tạo Group theo prefix rồi Use middleware lên group đó.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	group := router.Group(prefix)
	for _, mw := range middlewares {
		group.Use(mw)
	}
	switch strings.ToUpper(method) {
	case fiber.MethodGet:
		group.Get(path, handler)
	case fiber.MethodPost:
		group.Post(path, handler)
	case fiber.MethodPut:
		group.Put(path, handler)
	case fiber.MethodPatch:
		group.Patch(path, handler)
	case fiber.MethodDelete:
		group.Delete(path, handler)
	default:
		panic(fmt.Sprintf("unsupported method %s for route %s%s", method, prefix, path))
	}
}

// RegisterCRUDRoutes đăng ký bộ route CRUD chuẩn cho một domain.
// capability là cờ access yêu cầu trên admin (rỗng nghĩa là chỉ cần đăng nhập).
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, handler CRUDHandler, config CRUDConfig, capability string) {
	group := router.Group(prefix)
	if config.RequireAuth {
		group.Use(middleware.AuthMiddleware(capability))
	}

	if config.EnableInsert {
		group.Post("/insert-one", handler.InsertOne)
		group.Post("/insert-many", handler.InsertMany)
	}
	if config.EnableFind {
		group.Get("/find", handler.Find)
		group.Get("/find-one", handler.FindOne)
		group.Get("/find-by-id/:id", handler.FindOneById)
		group.Post("/find-by-ids", handler.FindManyByIds)
		group.Get("/find-with-pagination", handler.FindWithPagination)
	}
	if config.EnableUpdate {
		group.Put("/update-one", handler.UpdateOne)
		group.Put("/update-many", handler.UpdateMany)
		group.Put("/update-by-id/:id", handler.UpdateById)
		group.Put("/find-one-and-update", handler.FindOneAndUpdate)
	}
	if config.EnableDelete {
		group.Delete("/delete-one", handler.DeleteOne)
		group.Delete("/delete-many", handler.DeleteMany)
		group.Delete("/delete-by-id/:id", handler.DeleteById)
		group.Delete("/find-one-and-delete", handler.FindOneAndDelete)
	}
	if config.EnableCount {
		group.Get("/count", handler.CountDocuments)
	}
	if config.EnableDistinct {
		group.Get("/distinct", handler.Distinct)
	}
	if config.EnableUpsert {
		group.Post("/upsert-one", handler.Upsert)
	}
	if config.EnableExists {
		group.Get("/exists", handler.DocumentExists)
	}
}

// RegisterFunc là chữ ký hàm đăng ký route của từng domain
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes gom các hàm đăng ký route của từng domain lại và mount lên app
func SetupRoutes(app *fiber.App, registers ...RegisterFunc) error {
	r := NewRouter()
	v1 := app.Group(r.Prefix.V1)
	for _, register := range registers {
		if err := register(v1, r); err != nil {
			return err
		}
	}
	return nil
}

package kiosk

import (
	"sync"

	"meta_kiosk/internal/utility"
)

// Tên các màn hình của kiosk
const (
	RouteLogin = "Login"
	RouteWait  = "Wait"
	RouteFront = "Front"
	RouteMain  = "Main"
	RouteError = "Error"
)

// Navigator thay màn hình hiện tại của kiosk. Triển khai thật đẩy lệnh
// điều hướng xuống UI shell; test dùng bản ghi lại lời gọi.
type Navigator interface {
	Replace(route string, params map[string]interface{})
}

// OnceNavigator bọc Navigator và nuốt các lệnh điều hướng trùng với màn
// hình hiện tại (cùng route, cùng params đã serialize). Realtime có thể
// đẩy cùng một trạng thái nhiều lần; không dedupe sẽ làm UI giật liên tục.
type OnceNavigator struct {
	mu        sync.Mutex
	target    Navigator
	curRoute  string
	curParams string
}

// NewOnceNavigator tạo OnceNavigator bọc target
func NewOnceNavigator(target Navigator) *OnceNavigator {
	return &OnceNavigator{target: target}
}

// NavigateOnce điều hướng tới route nếu khác màn hình hiện tại.
// Trả về true nếu có dispatch thật sự.
func (n *OnceNavigator) NavigateOnce(route string, params map[string]interface{}) bool {
	if params == nil {
		params = map[string]interface{}{}
	}
	// json.Marshal sắp key ổn định nên dùng được làm chữ ký so sánh
	signature, err := utility.MapToJSON(params)
	if err != nil {
		signature = ""
	}

	n.mu.Lock()
	if n.curRoute == route && n.curParams == signature {
		n.mu.Unlock()
		return false
	}
	n.curRoute = route
	n.curParams = signature
	n.mu.Unlock()

	n.target.Replace(route, params)
	return true
}

// Current trả về route hiện tại (phục vụ trạng thái phiên và test)
func (n *OnceNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.curRoute
}

// Package kiosk - Test OnceNavigator nuốt điều hướng trùng lặp.
package kiosk

import "testing"

type recordNav struct {
	calls []string
}

func (r *recordNav) Replace(route string, params map[string]interface{}) {
	r.calls = append(r.calls, route)
}

func TestNavigateOnce_DedupesSameTarget(t *testing.T) {
	target := &recordNav{}
	nav := NewOnceNavigator(target)

	if !nav.NavigateOnce(RouteWait, map[string]interface{}{"code": "wait"}) {
		t.Fatal("lần đầu phải dispatch")
	}
	if nav.NavigateOnce(RouteWait, map[string]interface{}{"code": "wait"}) {
		t.Error("cùng route cùng params không được dispatch lại")
	}
	if len(target.calls) != 1 {
		t.Errorf("target phải nhận đúng 1 lời gọi, được %d", len(target.calls))
	}
}

func TestNavigateOnce_NewParamsDispatch(t *testing.T) {
	target := &recordNav{}
	nav := NewOnceNavigator(target)

	nav.NavigateOnce(RouteWait, map[string]interface{}{"code": "wait"})
	if !nav.NavigateOnce(RouteWait, map[string]interface{}{"code": "blocked"}) {
		t.Error("cùng route nhưng params khác phải dispatch")
	}
	if !nav.NavigateOnce(RouteFront, nil) {
		t.Error("route khác phải dispatch")
	}
	if nav.Current() != RouteFront {
		t.Errorf("Current phải là %q, được %q", RouteFront, nav.Current())
	}
}

func TestNavigateOnce_NilParamsEqualsEmpty(t *testing.T) {
	target := &recordNav{}
	nav := NewOnceNavigator(target)

	nav.NavigateOnce(RouteFront, nil)
	if nav.NavigateOnce(RouteFront, map[string]interface{}{}) {
		t.Error("params nil và rỗng phải coi là một")
	}
}

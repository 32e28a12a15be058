// Package module holds the module contract and the process wide port registry
package module

import (
	"fmt"
	"reflect"
	"sync"

	phttp "botdesk/internal/platform/net/http"
)

// Module is the contract api.Mount drives; it lives apart from modkit so
// a module package can export its own Ports type without an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

var (
	mu    sync.RWMutex
	ports = map[string]any{}
)

// Register publishes a module's ports under name
func Register(name string, p any) {
	mu.Lock()
	defer mu.Unlock()
	ports[name] = p
}

// PortsAs looks up the ports registered under name as T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := ports[name]
	mu.RUnlock()
	t, ok2 := v.(T)
	return t, ok && ok2
}

// Reset empties the registry
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ports = map[string]any{}
}

// PortsOf finds T in m's ports, either the value itself or one of its
// exported struct fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if t, ok := p.(T); ok {
		return t, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if t, ok := f.Interface().(T); ok {
			return t, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap wiring, where a miss is a bug
func MustPortsOf[T any](m Module) T {
	t, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s: no port of type %T", m.Name(), (*T)(nil)))
	}
	return t
}

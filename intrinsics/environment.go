package intrinsics

import (
	"sort"
	"sync"

	"github.com/wippyai/wasiraptor/errors"
)

// Environment is the binding surface of a scripting engine.
type Environment interface {
	// Global returns the value bound to name.
	Global(name string) (any, bool)
	// SetGlobal binds value to name in the global scope.
	SetGlobal(name string, value any) error
	// SetProperty sets name on the global object called object.
	SetProperty(object, name string, value any) error
}

// Object is a property bag standing in for a script object.
type Object struct {
	props map[string]any
	mu    sync.RWMutex
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{props: make(map[string]any)}
}

// Get returns a property.
func (o *Object) Get(name string) (any, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.props[name]
	return v, ok
}

// Set assigns a property.
func (o *Object) Set(name string, value any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.props[name] = value
}

// Keys returns the property names in sorted order.
func (o *Object) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.props))
	for k := range o.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Globals is a map-backed Environment.
type Globals struct {
	Object
}

var _ Environment = (*Globals)(nil)

// NewGlobals creates an empty global scope.
func NewGlobals() *Globals {
	return &Globals{Object: Object{props: make(map[string]any)}}
}

func (g *Globals) Global(name string) (any, bool) {
	return g.Get(name)
}

func (g *Globals) SetGlobal(name string, value any) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseRegister, "global name cannot be empty")
	}
	g.Set(name, value)
	return nil
}

func (g *Globals) SetProperty(object, name string, value any) error {
	v, ok := g.Get(object)
	if !ok {
		return errors.NotFound(errors.PhaseRegister, "global", object)
	}
	obj, ok := v.(*Object)
	if !ok {
		return errors.New(errors.PhaseRegister, errors.KindTypeMismatch).
			Field(object).
			Detail("global %q is %T, not an object", object, v).
			Build()
	}
	obj.Set(name, value)
	return nil
}

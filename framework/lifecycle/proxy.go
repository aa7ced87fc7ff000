package lifecycle

import (
	"fmt"
	"reflect"
)

// Proxy is an Object whose concrete value is produced indirectly — typically
// a wrapped third-party client. The payload slot starts empty, is populated
// by the setup function during Setup, and is cleared again on Teardown.
//
// Consumers reach the wrapped value through the explicit Payload accessor;
// there is no implicit delegation. Embed a *Proxy in a struct to give it the
// Object contract plus any domain methods you need:
//
//	type Redis struct {
//	    *lifecycle.Proxy[*redis.Client]
//	}
//
//	func New() *Redis {
//	    r := &Redis{}
//	    r.Proxy = lifecycle.NewProxy(r.connect).
//	        TeardownWith(func(c *redis.Client) error { return c.Close() })
//	    return r
//	}
type Proxy[T any] struct {
	setup    func() (T, error)
	teardown func(T) error
	payload  T
	present  bool
}

// NewProxy wraps a payload-producing setup function. The function MUST
// return a usable (non-nil) payload; Setup fails with ErrContractViolation
// otherwise.
func NewProxy[T any](setup func() (T, error)) *Proxy[T] {
	return &Proxy[T]{setup: setup}
}

// TeardownWith sets the function invoked with the payload during Teardown,
// before the slot is cleared. Returns the proxy for chaining.
func (p *Proxy[T]) TeardownWith(fn func(T) error) *Proxy[T] {
	p.teardown = fn
	return p
}

// Setup populates the payload slot. Fails with ErrContractViolation if the
// setup function returns without producing a payload.
func (p *Proxy[T]) Setup() error {
	if p.setup == nil {
		return fmt.Errorf("%w: proxy has no setup function", ErrContractViolation)
	}
	v, err := p.setup()
	if err != nil {
		return err
	}
	if isNil(v) {
		return fmt.Errorf("%w: proxy payload slot is still empty after setup", ErrContractViolation)
	}
	p.payload = v
	p.present = true
	return nil
}

// Teardown runs the teardown function, if any, and clears the payload slot.
// A no-op when the slot is already empty.
func (p *Proxy[T]) Teardown() error {
	if !p.present {
		return nil
	}
	if p.teardown != nil {
		if err := p.teardown(p.payload); err != nil {
			return err
		}
	}
	var zero T
	p.payload = zero
	p.present = false
	return nil
}

// Payload returns the wrapped value, or the zero value while the slot is
// empty. Check Present when the distinction matters.
func (p *Proxy[T]) Payload() T { return p.payload }

// Present reports whether the payload slot is populated.
func (p *Proxy[T]) Present() bool { return p.present }

// isNil reports whether v is a nil pointer, interface, map, slice, channel,
// or function. Value kinds are never nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

package deeplink

import (
	"fmt"
	"reflect"
)

// HandlerFunc processes a parsed deep link.
type HandlerFunc func(DeepLink)

// MiddlewareFunc wraps the handler selected for a deep link.
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// variantEntry guards a function with a dynamic type check against one
// concrete deep link type.
type variantEntry struct {
	variant reflect.Type
	accepts func(DeepLink) bool
	err     error
}

func newVariantEntry[T any](isNil bool) variantEntry {
	typ := reflect.TypeFor[T]()
	e := variantEntry{
		variant: typ,
		accepts: func(link DeepLink) bool {
			_, ok := link.(T)
			return ok
		},
	}
	switch {
	case isNil:
		e.err = ErrNilFunc
	case typ.Kind() == reflect.Interface:
		e.err = fmt.Errorf("%w: %s", ErrAbstractVariant, typ)
	}
	return e
}

// validate returns the configuration error of an entry; zero entries are
// treated as unset functions.
func (e variantEntry) validate() error {
	if e.err != nil {
		return e.err
	}
	if e.accepts == nil {
		return ErrNilFunc
	}
	return nil
}

// Variant returns the deep link type the entry accepts.
func (e variantEntry) Variant() reflect.Type {
	return e.variant
}

// Serializer exports deep links of one concrete type.
type Serializer struct {
	variantEntry
	fn func(DeepLink) string
}

// NewSerializer returns a Serializer for links whose dynamic type is T.
// Interface types and nil functions are rejected when the serializer is
// registered.
func NewSerializer[T any](fn func(T) string) Serializer {
	s := Serializer{variantEntry: newVariantEntry[T](fn == nil)}
	if fn != nil {
		s.fn = func(link DeepLink) string {
			return fn(link.(T))
		}
	}
	return s
}

// Handler processes deep links of one concrete type.
type Handler struct {
	variantEntry
	fn HandlerFunc
}

// NewHandler returns a Handler for links whose dynamic type is T.
// Interface types and nil functions are rejected when the handler is
// registered.
func NewHandler[T any](fn func(T)) Handler {
	h := Handler{variantEntry: newVariantEntry[T](fn == nil)}
	if fn != nil {
		h.fn = func(link DeepLink) {
			fn(link.(T))
		}
	}
	return h
}

// variantName returns the Go type name of link for diagnostics.
func variantName(link DeepLink) string {
	if link == nil {
		return ""
	}
	return reflect.TypeOf(link).String()
}

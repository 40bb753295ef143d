package recordinfo

import "reflect"

// FactoryFunc produces a default value for a field when a static literal is
// not appropriate, e.g. for mutable defaults such as maps or slices.
type FactoryFunc func() any

type missingValue struct{}

func (missingValue) String() string { return "<missing>" }

// Missing is the sentinel returned where a field declares no default. It is
// distinguishable from nil and from any value a caller could declare; use
// IsMissing to test for it.
var Missing any = missingValue{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missingValue)
	return ok
}

// Field describes a single record field. Descriptors are shared between
// inspectors of the same type; treat them as read-only.
type Field struct {
	// Name is the lookup name: the struct field name unless renamed through
	// the record tag.
	Name string
	// Type is the field's declared Go type.
	Type reflect.Type
	// Index is the reflect field index path, including embedded hops.
	Index []int
	// Tag is the raw struct tag for callers that read their own keys.
	Tag reflect.StructTag
	// Default holds the converted static default, or Missing when the field
	// declares none.
	Default any
	// Factory produces a default value when no static default exists. Nil
	// when absent.
	Factory FactoryFunc
	// Metadata is the field's opaque metadata mapping, nil when absent.
	Metadata map[string]any
}

// HasDefault reports whether the field carries a static default or a factory.
func (f *Field) HasDefault() bool {
	return !IsMissing(f.Default) || f.Factory != nil
}

// DefaultValue resolves the field's default, preferring the static default
// over the factory. It returns Missing when the field has neither.
func (f *Field) DefaultValue() any {
	if !IsMissing(f.Default) {
		return f.Default
	}
	if f.Factory != nil {
		return f.Factory()
	}
	return Missing
}

func (f *Field) clone() *Field {
	out := *f
	return &out
}

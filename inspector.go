package recordinfo

import (
	"fmt"
	"maps"
	"reflect"
)

// Inspector wraps one record target at a time and answers queries about its
// fields. The descriptor list and name map are computed lazily, cached, and
// cleared when the target is reassigned.
type Inspector struct {
	opts   Options
	target any

	typ      reflect.Type
	fields   []*Field
	fieldmap map[string]*Field
}

// New constructs an Inspector for a record value: a struct value, a pointer
// to one, or a reflect.Type. It fails with ErrInvalidRecord for anything
// else, and surfaces malformed tag errors eagerly so a constructed inspector
// is known-good.
func New(v any, fns ...OptionFn) (*Inspector, error) {
	in := &Inspector{opts: NewOptions(fns...), target: v}
	if err := in.ensure(); err != nil {
		return nil, err
	}
	return in, nil
}

// Target returns the wrapped record value.
func (in *Inspector) Target() any {
	return in.target
}

// SetTarget replaces the wrapped record and clears the cached descriptor list
// and name map. The new target is not validated here; an invalid target
// surfaces as ErrInvalidRecord from the next accessor. Callers that need the
// construction-time guarantee should build a new Inspector instead.
func (in *Inspector) SetTarget(v any) {
	in.target = v
	in.typ = nil
	in.fields = nil
	in.fieldmap = nil
}

// Name returns the simple name of the wrapped record type, or "" when the
// target is not a record.
func (in *Inspector) Name() string {
	if in.typ != nil {
		return in.typ.Name()
	}
	t, err := recordType(in.target)
	if err != nil {
		return ""
	}
	return t.Name()
}

// Fields returns the record's field descriptors in declaration order. The
// list is computed once and cached; computing it also rebuilds the name map.
func (in *Inspector) Fields() ([]*Field, error) {
	if err := in.ensure(); err != nil {
		return nil, err
	}
	return in.fields, nil
}

// FieldMap returns the mapping from field name to descriptor, computing the
// field list first when it is not yet cached.
func (in *Inspector) FieldMap() (map[string]*Field, error) {
	if err := in.ensure(); err != nil {
		return nil, err
	}
	return in.fieldmap, nil
}

// RequiredFields returns the leading run of fields that lack a default,
// stopping at the first field that has one. Records are expected to declare
// required fields before optional ones; a required field declared after an
// optional one is not reported here (SplitRequiredOptional has no such
// assumption).
func (in *Inspector) RequiredFields() ([]*Field, error) {
	fields, err := in.Fields()
	if err != nil {
		return nil, err
	}
	required := []*Field{}
	for _, f := range fields {
		if f.HasDefault() {
			break
		}
		required = append(required, f)
	}
	return required, nil
}

// OptionalFields returns the trailing run of fields that have a default,
// scanning from the back and stopping at the first field without one. Same
// declaration-order assumption as RequiredFields.
func (in *Inspector) OptionalFields() ([]*Field, error) {
	fields, err := in.Fields()
	if err != nil {
		return nil, err
	}
	start := len(fields)
	for start > 0 && fields[start-1].HasDefault() {
		start--
	}
	return append([]*Field{}, fields[start:]...), nil
}

// SplitRequiredOptional partitions every field by whether it has a default,
// preserving declaration order within each group. Unlike RequiredFields and
// OptionalFields this is a complete partition with no ordering assumption.
func (in *Inspector) SplitRequiredOptional() (required, optional []*Field, err error) {
	fields, err := in.Fields()
	if err != nil {
		return nil, nil, err
	}
	required = []*Field{}
	optional = []*Field{}
	for _, f := range fields {
		if f.HasDefault() {
			optional = append(optional, f)
		} else {
			required = append(required, f)
		}
	}
	return required, optional, nil
}

// GetField returns the descriptor for name, or fallback when the name is
// absent. It never fails: schema errors after a SetTarget also yield
// fallback.
func (in *Inspector) GetField(name string, fallback *Field) *Field {
	if err := in.ensure(); err != nil {
		return fallback
	}
	if f, ok := in.fieldmap[name]; ok {
		return f
	}
	return fallback
}

// DefaultValue resolves the named field's default, preferring a static
// default over a factory invocation. It returns Missing when the field has
// neither, and ErrFieldNotFound when the record has no such field.
func (in *Inspector) DefaultValue(name string) (any, error) {
	f, err := in.lookup(name)
	if err != nil {
		return nil, err
	}
	return f.DefaultValue(), nil
}

// Metadata returns a read-only view (a copy) of the named field's metadata
// mapping, or ErrFieldNotFound when the record has no such field.
func (in *Inspector) Metadata(name string) (map[string]any, error) {
	f, err := in.lookup(name)
	if err != nil {
		return nil, err
	}
	return maps.Clone(f.Metadata), nil
}

// HasDefault reports whether the named field carries a default value or a
// factory, or ErrFieldNotFound when the record has no such field.
func (in *Inspector) HasDefault(name string) (bool, error) {
	f, err := in.lookup(name)
	if err != nil {
		return false, err
	}
	return f.HasDefault(), nil
}

func (in *Inspector) lookup(name string) (*Field, error) {
	if err := in.ensure(); err != nil {
		return nil, err
	}
	f, ok := in.fieldmap[name]
	if !ok {
		return nil, fmt.Errorf("recordinfo: %s has no field %q: %w", in.Name(), name, ErrFieldNotFound)
	}
	return f, nil
}

func (in *Inspector) ensure() error {
	if in.fields != nil {
		return nil
	}
	t, err := recordType(in.target)
	if err != nil {
		return err
	}
	fields, err := fieldsForType(t, in.opts)
	if err != nil {
		return err
	}
	fields = applyFactories(fields, in.opts.Factories)

	fieldmap := make(map[string]*Field, len(fields))
	for _, f := range fields {
		fieldmap[f.Name] = f
	}
	in.typ = t
	in.fields = fields
	in.fieldmap = fieldmap
	return nil
}

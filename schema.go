package recordinfo

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

type cacheKey struct {
	typ     reflect.Type
	tag     string
	defTag  string
	metaTag string
}

// fieldCache shares base descriptor lists between inspectors of the same
// type. Factory overlays never land here; see applyFactories.
var fieldCache sync.Map // cacheKey -> []*Field

// FieldsOf returns the ordered field descriptors for a record value. The
// value may be a struct value, a pointer to one, or a reflect.Type. It fails
// with ErrInvalidRecord for anything else, and with a descriptive error for
// malformed default or meta tags.
func FieldsOf(v any, fns ...OptionFn) ([]*Field, error) {
	opts := NewOptions(fns...)
	t, err := recordType(v)
	if err != nil {
		return nil, err
	}
	fields, err := fieldsForType(t, opts)
	if err != nil {
		return nil, err
	}
	return applyFactories(fields, opts.Factories), nil
}

func recordType(v any) (reflect.Type, error) {
	if v == nil {
		return nil, fmt.Errorf("recordinfo: invalid type <nil>: %w", ErrInvalidRecord)
	}
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("recordinfo: invalid type %s: %w", t, ErrInvalidRecord)
	}
	return t, nil
}

func fieldsForType(t reflect.Type, opts Options) ([]*Field, error) {
	key := cacheKey{typ: t, tag: opts.TagName, defTag: opts.DefaultTagName, metaTag: opts.MetaTagName}
	if cached, ok := fieldCache.Load(key); ok {
		return cached.([]*Field), nil
	}
	fields, err := buildFields(t, opts)
	if err != nil {
		return nil, err
	}
	// Concurrent first builds race to publish; every caller gets the winner
	// so descriptor sharing holds across goroutines.
	cached, _ := fieldCache.LoadOrStore(key, fields)
	return cached.([]*Field), nil
}

func buildFields(t reflect.Type, opts Options) ([]*Field, error) {
	fields := []*Field{}
	depths := map[string]int{}
	positions := map[string]int{}
	visited := map[reflect.Type]bool{t: true}
	if err := walkFields(t, nil, 0, opts, &fields, depths, positions, visited); err != nil {
		return nil, err
	}
	return fields, nil
}

// walkFields appends descriptors in declaration order, flattening anonymous
// embedded structs in place. On a name collision the shallower field wins and
// keeps the position the name first appeared at. Already-visited embedded
// types are not descended into again, so self-referential embeddings
// terminate.
func walkFields(t reflect.Type, prefix []int, depth int, opts Options, fields *[]*Field, depths, positions map[string]int, visited map[reflect.Type]bool) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if sf.Anonymous {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct && sf.Tag.Get(opts.TagName) == "" {
				if visited[et] {
					continue
				}
				visited[et] = true
				if err := walkFields(et, index, depth+1, opts, fields, depths, positions, visited); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		name := sf.Name
		if tag, ok := sf.Tag.Lookup(opts.TagName); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}

		field, err := newField(sf, index, name, opts)
		if err != nil {
			return err
		}

		if seen, ok := depths[name]; ok {
			if depth < seen {
				(*fields)[positions[name]] = field
				depths[name] = depth
			}
			continue
		}
		depths[name] = depth
		positions[name] = len(*fields)
		*fields = append(*fields, field)
	}
	return nil
}

func newField(sf reflect.StructField, index []int, name string, opts Options) (*Field, error) {
	field := &Field{
		Name:    name,
		Type:    sf.Type,
		Index:   index,
		Tag:     sf.Tag,
		Default: Missing,
	}
	if raw, ok := sf.Tag.Lookup(opts.DefaultTagName); ok {
		value, err := convertDefault(raw, sf.Type)
		if err != nil {
			return nil, fmt.Errorf("recordinfo: field %q: invalid default %q: %w", name, raw, err)
		}
		field.Default = value
	}
	if raw, ok := sf.Tag.Lookup(opts.MetaTagName); ok {
		meta, err := parseMetadata(raw)
		if err != nil {
			return nil, fmt.Errorf("recordinfo: field %q: invalid metadata %q: %w", name, raw, err)
		}
		field.Metadata = meta
	}
	return field, nil
}

// convertDefault turns a default tag literal into a value of the field's
// declared type. String-slice literals are whitespace separated.
func convertDefault(raw string, t reflect.Type) (any, error) {
	switch t {
	case durationType:
		return cast.ToDurationE(raw)
	case timeType:
		return cast.ToTimeE(raw)
	}

	var value any
	var err error
	switch t.Kind() {
	case reflect.String:
		value = raw
	case reflect.Bool:
		value, err = cast.ToBoolE(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value, err = cast.ToInt64E(raw)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value, err = cast.ToUint64E(raw)
	case reflect.Float32, reflect.Float64:
		value, err = cast.ToFloat64E(raw)
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported literal type %s", t)
		}
		value, err = cast.ToStringSliceE(raw)
	default:
		return nil, fmt.Errorf("unsupported literal type %s", t)
	}
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(value)
	if !rv.Type().ConvertibleTo(t) {
		return nil, fmt.Errorf("cannot convert %s to %s", rv.Type(), t)
	}
	return rv.Convert(t).Interface(), nil
}

// parseMetadata reads a meta tag as a YAML inline mapping, e.g.
// `meta:"{unit: seconds, secret: true}"`.
func parseMetadata(raw string) (map[string]any, error) {
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// applyFactories overlays per-field factories on top of the shared base
// descriptors, cloning only the affected entries so the cache stays pristine.
func applyFactories(fields []*Field, factories map[string]FactoryFunc) []*Field {
	if len(factories) == 0 {
		return fields
	}
	out := make([]*Field, len(fields))
	for i, f := range fields {
		if fn, ok := factories[f.Name]; ok {
			clone := f.clone()
			clone.Factory = fn
			out[i] = clone
			continue
		}
		out[i] = f
	}
	return out
}

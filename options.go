package recordinfo

// Options controls how a record type is read into field descriptors.
type Options struct {
	// TagName is the struct tag key used to rename or skip fields.
	TagName string
	// DefaultTagName is the struct tag key holding static default literals.
	DefaultTagName string
	// MetaTagName is the struct tag key holding the YAML metadata mapping.
	MetaTagName string

	// Factories maps field names to default-value factories.
	Factories map[string]FactoryFunc
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline tag configuration.
func DefaultOptions() Options {
	return Options{
		TagName:        "record",
		DefaultTagName: "default",
		MetaTagName:    "meta",
	}
}

// NewOptions applies the given option functions on top of DefaultOptions and
// backfills any zeroed tag names.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.TagName == "" {
		opts.TagName = "record"
	}
	if opts.DefaultTagName == "" {
		opts.DefaultTagName = "default"
	}
	if opts.MetaTagName == "" {
		opts.MetaTagName = "meta"
	}
	return opts
}

// WithTagName overrides the tag key used for renaming and skipping fields.
func WithTagName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TagName = name
	}
}

// WithDefaultTagName overrides the tag key used for default literals.
func WithDefaultTagName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultTagName = name
	}
}

// WithMetaTagName overrides the tag key used for metadata mappings.
func WithMetaTagName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MetaTagName = name
	}
}

// WithFactory attaches a default-value factory to the named field. A static
// default tag on the same field takes precedence when both are present.
func WithFactory(field string, fn FactoryFunc) OptionFn {
	return func(o *Options) {
		if o == nil || field == "" || fn == nil {
			return
		}
		if o.Factories == nil {
			o.Factories = make(map[string]FactoryFunc)
		}
		o.Factories[field] = fn
	}
}

// WithFactories attaches factories for several fields at once.
func WithFactories(factories map[string]FactoryFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		for field, fn := range factories {
			if field == "" || fn == nil {
				continue
			}
			if o.Factories == nil {
				o.Factories = make(map[string]FactoryFunc)
			}
			o.Factories[field] = fn
		}
	}
}

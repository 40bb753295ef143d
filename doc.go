// Package recordinfo inspects struct types ("records") and answers questions
// about their fields: enumeration in declaration order, required vs. optional
// splits, name lookup, default values, and per-field metadata. Field
// information is declared in struct tags: `record:"name"` renames a field for
// lookup (`record:"-"` skips it), `default:"literal"` declares a static
// default converted to the field's type, and `meta:"{key: value}"` attaches
// an opaque metadata mapping written as inline YAML. Anonymous embedded
// structs are flattened in place; on a name collision the shallower field
// wins, and at equal depth the field declared first wins (unlike Go's own
// promotion rules, which drop ambiguous names). Default values that cannot be expressed as
// a literal attach through the WithFactory option instead.
//
// An Inspector caches its descriptor list and name map lazily and clears both
// when the target is reassigned with SetTarget. Inspectors are not safe for
// concurrent use while SetTarget may run; construct one inspector per
// goroutine or synchronize externally. Package-level FieldsOf is safe for
// concurrent callers.
package recordinfo

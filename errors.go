package recordinfo

import "errors"

var (
	// ErrInvalidRecord reports that a value is not a struct or pointer to
	// struct and therefore cannot be inspected.
	ErrInvalidRecord = errors.New("recordinfo: not a record type")

	// ErrFieldNotFound reports a lookup for a field name the record does not
	// declare.
	ErrFieldNotFound = errors.New("recordinfo: field not found")
)

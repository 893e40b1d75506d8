package property

import (
	"errors"
	"fmt"
)

var ErrEmptyPropertyName = errors.New("empty property name")
var ErrNoRegistry = errors.New("no event registry reachable")
var ErrAccessNotSupported = errors.New("access not supported")

var ErrNilRegistrySupplied = errors.New("nil registry supplied")
var ErrNilSourceSupplied = errors.New("nil registry source supplied")
var ErrEmptyEventOverride = errors.New("empty event override supplied")

// Access identifies one of the three property access kinds. Its string form
// is the middle segment of the dispatched event names.
type Access string

const (
	AccessGet    Access = "get"
	AccessSet    Access = "set"
	AccessDelete Access = "del"
)

// AccessNotSupportedError reports an access on a property whose accessor for
// that kind is nil. It unwraps to ErrAccessNotSupported so callers can match
// the kind with errors.Is and still read the property name with errors.As.
type AccessNotSupportedError struct {
	Property string
	Access   Access
}

func (e *AccessNotSupportedError) Error() string {
	return fmt.Sprintf("property %q does not support %s access", e.Property, e.Access)
}

func (e *AccessNotSupportedError) Unwrap() error {
	return ErrAccessNotSupported
}

package generator

import "fmt"

// InvalidParameterError reports a request the generator refuses to run:
// a negative row count, a non-positive std, an empty category domain or a
// bad column name.
type InvalidParameterError struct {
	Column string
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("column %s: invalid %s: %s", e.Column, e.Param, e.Reason)
}

// UnsupportedTypeError reports a kind tag outside the closed set.
type UnsupportedTypeError struct {
	Column string
	Kind   string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("unsupported column type %q", e.Kind)
	}
	return fmt.Sprintf("column %s: unsupported column type %q", e.Column, e.Kind)
}

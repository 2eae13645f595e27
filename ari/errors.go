package ari

import "errors"

// ErrInvalidValue is returned when a literal's Go value does not match the
// Go type or numeric range required by its declared struct type.
var ErrInvalidValue = errors.New("ari: invalid value for struct type")

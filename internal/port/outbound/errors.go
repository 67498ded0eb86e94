package outbound

import "errors"

// ErrAlreadyExists is returned by Create operations when a row with the same
// unique key already exists.
var ErrAlreadyExists = errors.New("already exists")

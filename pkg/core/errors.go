package core

import "github.com/pkg/errors"

// ErrNotImplemented is returned or raised by collaborators that cannot serve
// a requested operation
var ErrNotImplemented = errors.New("core: operation not implemented")

// NotImplemented wraps ErrNotImplemented with the name of the operation
func NotImplemented(op string) error {
	return errors.Wrap(ErrNotImplemented, op)
}

package executor

import "github.com/pkg/errors"

// Sentinel errors surfaced by the public API.
var (
	ErrInvalidArgument = errors.New("executor: invalid argument")
	ErrOutOfMemory     = errors.New("executor: out of memory")
	ErrOverflow        = errors.New("executor: handle table full")
	ErrNotFound        = errors.New("executor: endpoint not registered")
	ErrTimeout         = errors.New("executor: wait timed out")
	ErrUnknownKind     = errors.New("executor: unknown handle kind")
	ErrContextInvalid  = errors.New("executor: middleware context is no longer valid")
)

package advance

import "errors"

var (
	ErrAdvanceNotFound         = errors.New("advance not found")
	ErrAdvanceAlreadyCancelled = errors.New("advance is already cancelled")
)

package directory

import "errors"

var (
	ErrNotFound         = errors.New("item not found")
	ErrInvalidMove      = errors.New("invalid move")
	ErrValidationFailed = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("item store is unavailable")
	ErrBusy             = errors.New("another operation is in progress")
)

func isKnownError(err error) bool {
	for _, known := range []error{
		ErrNotFound,
		ErrInvalidMove,
		ErrValidationFailed,
		ErrStoreUnavailable,
		ErrBusy,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/LPredmore/valorwell-clinician-portal-sub007/common"
)

// Failure taxonomy. Sub-component errors are normalized into one of these at
// the service boundary so callers switch on errors.Is instead of inspecting
// driver errors.
var (
	ErrInvalidTimeZone = common.ErrInvalidTimeZone
	ErrFetchFailed     = errors.New("fetch failed")
	ErrTimeout         = errors.New("timeout")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
)

// normalizeFetchErr maps a storage/retry error into the taxonomy.
func normalizeFetchErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	default:
		return fmt.Errorf("%w: %s: %v", ErrFetchFailed, op, err)
	}
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

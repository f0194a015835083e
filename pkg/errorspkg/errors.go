// Package errorspkg provides common app errors.
package errorspkg

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrUnavailable indicates a transient storage failure the caller may retry.
var ErrUnavailable = errors.New("unavailable")

// FromDB classifies a low-level database error: a lost connection maps to
// ErrUnavailable, everything else to ErrInternal.
func FromDB(err error) error {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return ErrUnavailable
	}

	return ErrInternal
}

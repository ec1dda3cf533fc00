/*
errors.go - Validation errors for the forecast engine

PURPOSE:
  The engine is total over numbers: negative sales or a negative term are
  computed as given. The only inputs it refuses are shape errors, where the
  caller's series do not line up with the month count. Those are reported
  instead of silently zero-filled.

USAGE:
  if errors.Is(err, forecast.ErrLengthMismatch) {
      // pad or truncate the series and try again
  }

SEE ALSO:
  - engine.go: Validate and Compute
  - api/handlers.go: Maps client errors to 400
*/
package forecast

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidMonthCount is returned when MonthCount is negative.
	ErrInvalidMonthCount = errors.New("invalid month count")

	// ErrLengthMismatch is returned when a provided series does not have
	// exactly MonthCount entries.
	ErrLengthMismatch = errors.New("series length does not match month count")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// LengthMismatchError names the offending series.
type LengthMismatchError struct {
	Series string
	Want   int
	Got    int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s has %d entries, want %d", e.Series, e.Got, e.Want)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidMonthCount) ||
		errors.Is(err, ErrLengthMismatch)
}

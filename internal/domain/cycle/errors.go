package cycle

import (
	"fmt"

	apperrors "github.com/yanqian/cycle-advisor/pkg/errors"
)

const (
	CodeMissingStartDate      = "missing_start_date"
	CodeInvalidDateFormat     = "invalid_date_format"
	CodeOutOfOrderDates       = "out_of_order_dates"
	CodeCycleLengthOutOfRange = "cycle_length_out_of_range"
	CodeMensesDaysOutOfRange  = "menses_days_out_of_range"
)

var validationCodes = map[string]struct{}{
	CodeMissingStartDate:      {},
	CodeInvalidDateFormat:     {},
	CodeOutOfOrderDates:       {},
	CodeCycleLengthOutOfRange: {},
	CodeMensesDaysOutOfRange:  {},
}

// IsValidationError reports whether err is a caller input problem raised by this package.
func IsValidationError(err error) bool {
	_, ok := validationCodes[apperrors.CodeOf(err)]
	return ok
}

func errMissingStartDate() error {
	return apperrors.Wrap(CodeMissingStartDate, "start_date is required", nil)
}

func errInvalidDate(field string, err error) error {
	return apperrors.Wrap(CodeInvalidDateFormat, field+" must be formatted as YYYY-MM-DD", err)
}

func errOutOfOrder() error {
	return apperrors.Wrap(CodeOutOfOrderDates, "observed_date cannot be earlier than start_date", nil)
}

func errCycleLength(got int) error {
	return apperrors.Wrap(CodeCycleLengthOutOfRange,
		fmt.Sprintf("cycle_length must be between %d and %d days, got %d", MinCycleLength, MaxCycleLength, got), nil)
}

func errMensesDays(got int) error {
	return apperrors.Wrap(CodeMensesDaysOutOfRange,
		fmt.Sprintf("menses_days must be between %d and %d days, got %d", MinMensesDays, MaxMensesDays, got), nil)
}

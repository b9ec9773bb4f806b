package dimension

import (
	"fmt"

	"github.com/username/calendar-dimension/internal/calendar"
)

// InvalidYearError is returned for years before 1
type InvalidYearError struct {
	Year int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid year %d: must be >= 1", e.Year)
}

// InvalidTimezoneError is returned when the timezone identifier cannot be loaded
type InvalidTimezoneError struct {
	TimezoneID string
	Err        error
}

func (e *InvalidTimezoneError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid timezone %q", e.TimezoneID)
	}
	return fmt.Sprintf("invalid timezone %q: %v", e.TimezoneID, e.Err)
}

func (e *InvalidTimezoneError) Unwrap() error {
	return e.Err
}

// HolidayDataUnavailableError is returned when the holiday provider fails for a region and year
type HolidayDataUnavailableError struct {
	Region calendar.Region
	Year   int
	Err    error
}

func (e *HolidayDataUnavailableError) Error() string {
	return fmt.Sprintf("holiday data unavailable for region %s, year %d: %v", e.Region, e.Year, e.Err)
}

func (e *HolidayDataUnavailableError) Unwrap() error {
	return e.Err
}

// Package timeofday implements a minute-of-day value type used for all
// court scheduling arithmetic. A value is the number of minutes since
// midnight in the court's local timezone, range [0, 1440). There is no
// sub-minute precision anywhere in the system.
package timeofday

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the upper bound (exclusive) of the legal domain.
const MinutesPerDay = 24 * 60

// Noon separates the AM and PM halves of the day.
const Noon = 12 * 60

// ErrMalformedTime is returned when a time string cannot be parsed into a
// minute-of-day value.
var ErrMalformedTime = errors.New("timeofday: malformed time")

// Minutes is a time of day expressed as minutes since midnight.
type Minutes int

// Parse converts a 24-hour "HH:MM" string into Minutes.
// Hours outside 0-23, minutes outside 0-59 and non-numeric input all fail
// with ErrMalformedTime.
func Parse(s string) (Minutes, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q, expected HH:MM", ErrMalformedTime, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q, non-numeric hour", ErrMalformedTime, s)
	}

	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q, non-numeric minute", ErrMalformedTime, s)
	}

	if hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q, hour out of range", ErrMalformedTime, s)
	}
	if mins < 0 || mins > 59 {
		return 0, fmt.Errorf("%w: %q, minute out of range", ErrMalformedTime, s)
	}

	return Minutes(hours*60 + mins), nil
}

// FromClock builds a Minutes value from the wall-clock components of t.
// Seconds are discarded, so the result is always on a minute boundary.
func FromClock(t time.Time) Minutes {
	return Minutes(t.Hour()*60 + t.Minute())
}

// Valid reports whether m lies in the legal domain [0, MinutesPerDay).
func (m Minutes) Valid() bool {
	return m >= 0 && m < MinutesPerDay
}

// Hour returns the wall-clock hour component (0-23).
func (m Minutes) Hour() int {
	return int(m) / 60
}

// Minute returns the minute-of-hour component (0-59).
func (m Minutes) Minute() int {
	return int(m) % 60
}

// IsAM reports whether m falls in 00:00-11:59. 12:00 and later are PM.
func (m Minutes) IsAM() bool {
	return m < Noon
}

// String renders the zero-padded 24-hour wire format, e.g. "06:05".
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Minute())
}

// Display renders the 12-hour label used for selectable slots,
// e.g. "6:05 AM" or "12:30 PM".
func (m Minutes) Display() string {
	hour := m.Hour()
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	hour = hour % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, m.Minute(), suffix)
}

// Value implements driver.Valuer. Stored as the "HH:MM" wire string so the
// column is a plain TIME/ordered text value in Postgres.
func (m Minutes) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d minutes out of range", ErrMalformedTime, int(m))
	}
	return m.String(), nil
}

// Scan implements sql.Scanner. Accepts "HH:MM", "HH:MM:SS" (postgres TIME)
// and time.Time values.
func (m *Minutes) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return m.scanString(v)
	case []byte:
		return m.scanString(string(v))
	case time.Time:
		*m = FromClock(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrMalformedTime, src)
	}
}

func (m *Minutes) scanString(s string) error {
	// Postgres TIME comes back as "HH:MM:SS"; keep only hours and minutes.
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		s = parts[0] + ":" + parts[1]
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

package domain

import (
	"fmt"
	"sort"

	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// Interval is a half-open time-of-day span [Start, End) within a single day.
// Invariant: Start < End for any interval that reaches the scheduling code.
type Interval struct {
	Start timeofday.Minutes
	End   timeofday.Minutes
}

// Duration returns the interval length in minutes.
func (i Interval) Duration() int {
	return int(i.End - i.Start)
}

// Overlaps reports whether two half-open intervals actually intersect.
// Touching boundaries (one ends exactly where the other starts) do not count
// as an overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains reports whether the instant m lies inside [Start, End).
func (i Interval) Contains(m timeofday.Minutes) bool {
	return m >= i.Start && m < i.End
}

func (i Interval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}

// OperatingWindow is the court's daily bookable window, e.g. 06:00-22:00.
type OperatingWindow struct {
	DayStart timeofday.Minutes
	DayEnd   timeofday.Minutes
}

// Validate rejects degenerate windows. A window where the day ends before it
// starts is a configuration error, caught at startup rather than retried.
func (w OperatingWindow) Validate() error {
	if !w.DayStart.Valid() || !w.DayEnd.Valid() {
		return fmt.Errorf("operating window %s-%s out of range", w.DayStart, w.DayEnd)
	}
	if w.DayStart >= w.DayEnd {
		return fmt.Errorf("operating window %s-%s is empty", w.DayStart, w.DayEnd)
	}
	return nil
}

// Interval returns the window as an Interval value.
func (w OperatingWindow) Interval() Interval {
	return Interval{Start: w.DayStart, End: w.DayEnd}
}

// FreeIntervals computes the free spans of one day: the operating window
// minus the given busy intervals. Busy intervals are assumed pairwise
// non-overlapping (admission guarantees that) but may arrive in any order.
// The result is sorted ascending, pairwise disjoint and never contains a
// zero-length interval; an empty busy list yields the whole window. The
// computation is a pure function of its inputs.
func FreeIntervals(window OperatingWindow, busy []Interval) []Interval {
	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Start < sorted[b].Start
	})

	free := make([]Interval, 0, len(sorted)+1)
	cursor := window.DayStart

	for _, b := range sorted {
		if cursor < b.Start {
			// Не выходим за конец окна: занятые интервалы могут быть шире окна
			// (например, админские брони).
			gapEnd := b.Start
			if gapEnd > window.DayEnd {
				gapEnd = window.DayEnd
			}
			if cursor < gapEnd {
				free = append(free, Interval{Start: cursor, End: gapEnd})
			}
		}
		if b.End > cursor {
			cursor = b.End
		}
	}

	if cursor < window.DayEnd {
		free = append(free, Interval{Start: cursor, End: window.DayEnd})
	}

	return free
}

// HalfDay is the optional AM/PM filter applied when enumerating selectable
// times. It shortens the presented lists only and carries no business rule.
type HalfDay string

const (
	HalfDayAny HalfDay = ""
	HalfDayAM  HalfDay = "AM"
	HalfDayPM  HalfDay = "PM"
)

// ParseHalfDay validates a half-day filter value. The empty string means
// no filtering.
func ParseHalfDay(s string) (HalfDay, error) {
	switch HalfDay(s) {
	case HalfDayAny, HalfDayAM, HalfDayPM:
		return HalfDay(s), nil
	default:
		return HalfDayAny, fmt.Errorf("invalid half-day filter %q", s)
	}
}

// Matches reports whether the instant m passes the filter. 12:00-12:59 is PM,
// 00:00-11:59 is AM, by wall-clock hour.
func (h HalfDay) Matches(m timeofday.Minutes) bool {
	switch h {
	case HalfDayAM:
		return m.IsAM()
	case HalfDayPM:
		return !m.IsAM()
	default:
		return true
	}
}

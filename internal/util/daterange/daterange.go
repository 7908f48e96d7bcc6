// Package daterange implements the two-tap date range selection used when
// scheduling an offer: pick a start day, then an end day on or after it.
package daterange

import (
	"time"

	"github.com/pkg/errors"
)

// ErrEndBeforeStart is returned when the second pick lies before the first.
// The selection in progress is left unchanged.
var ErrEndBeforeStart = errors.New("end date is before start date")

// Selection is the in-progress or completed range. Days are compared at
// day granularity; times of day on picked values are ignored.
type Selection struct {
	start *time.Time
	end   *time.Time
}

// New returns an empty selection.
func New() *Selection {
	return &Selection{}
}

// Pick advances the selection with one chosen day:
//
//   - no start yet: the day becomes the start
//   - start but no end: a day on or after the start completes the range; an
//     earlier day is rejected with ErrEndBeforeStart and nothing changes
//   - range complete: the day starts a fresh selection
func (s *Selection) Pick(day time.Time) error {
	day = truncate(day)

	switch {
	case s.start == nil:
		s.start = &day
	case s.end == nil:
		if day.Before(*s.start) {
			return ErrEndBeforeStart
		}
		s.end = &day
	default:
		s.start, s.end = &day, nil
	}

	return nil
}

// Clear resets the selection.
func (s *Selection) Clear() {
	s.start, s.end = nil, nil
}

// Complete reports whether both ends are picked. A single-day range (start
// picked twice) is complete.
func (s *Selection) Complete() bool {
	return s.start != nil && s.end != nil
}

// Bounds returns the selected [start, end] and whether the range is complete.
func (s *Selection) Bounds() (start, end time.Time, ok bool) {
	if !s.Complete() {
		return time.Time{}, time.Time{}, false
	}

	return *s.start, *s.end, true
}

// Contains reports whether the day falls inside the selected range, both
// boundaries included. An incomplete selection contains only its start day.
func (s *Selection) Contains(day time.Time) bool {
	day = truncate(day)

	if s.start == nil {
		return false
	}
	if s.end == nil {
		return day.Equal(*s.start)
	}

	return !day.Before(*s.start) && !day.After(*s.end)
}

// IsStart reports whether the day is the range's start boundary.
func (s *Selection) IsStart(day time.Time) bool {
	return s.start != nil && truncate(day).Equal(*s.start)
}

// IsEnd reports whether the day is the range's end boundary.
func (s *Selection) IsEnd(day time.Time) bool {
	return s.end != nil && truncate(day).Equal(*s.end)
}

// Days returns every day of a complete range in order, boundaries included.
func (s *Selection) Days() []time.Time {
	if !s.Complete() {
		return nil
	}

	var days []time.Time
	for day := *s.start; !day.After(*s.end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	return days
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("check-out must not precede check-in and end time must be after start time")
	ErrInvalidTimeOfDay = errors.New("time of day must be within a single day")
)

const day = 24 * time.Hour

// Span is the effective booking interval: wall-clock start/end times applied
// to the check-in/check-out boundary dates. The interval is half-open, so a
// reservation ending at T and one starting at T do not overlap.
type Span struct {
	checkIn  time.Time
	checkOut time.Time
	start    time.Duration
	end      time.Duration
}

func NewSpan(checkIn, checkOut time.Time, start, end time.Duration) (Span, error) {
	if start < 0 || start >= day || end < 0 || end >= day {
		return Span{}, ErrInvalidTimeOfDay
	}

	ci := truncateToDate(checkIn)
	co := truncateToDate(checkOut)

	if co.Before(ci) {
		return Span{}, ErrInvalidTimeRange
	}
	// A same-day reservation with end <= start is nonsensical.
	if co.Equal(ci) && end <= start {
		return Span{}, ErrInvalidTimeRange
	}

	return Span{checkIn: ci, checkOut: co, start: start, end: end}, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s Span) CheckIn() time.Time      { return s.checkIn }
func (s Span) CheckOut() time.Time     { return s.checkOut }
func (s Span) StartTime() time.Duration { return s.start }
func (s Span) EndTime() time.Duration   { return s.end }

// StartAt is the absolute beginning of the effective interval.
func (s Span) StartAt() time.Time {
	return s.checkIn.Add(s.start)
}

// EndAt is the absolute (exclusive) end of the effective interval.
func (s Span) EndAt() time.Time {
	return s.checkOut.Add(s.end)
}

func (s Span) Duration() time.Duration {
	return s.EndAt().Sub(s.StartAt())
}

// Overlaps implements half-open interval intersection:
// [aStart, aEnd) and [bStart, bEnd) conflict iff aStart < bEnd && bStart < aEnd.
func (s Span) Overlaps(other Span) bool {
	return s.StartAt().Before(other.EndAt()) && other.StartAt().Before(s.EndAt())
}

// ContainsDate reports whether d falls within [checkIn, checkOut], both ends
// inclusive.
func (s Span) ContainsDate(d time.Time) bool {
	d = truncateToDate(d)
	return !d.Before(s.checkIn) && !d.After(s.checkOut)
}

func (s Span) String() string {
	return fmt.Sprintf("[%s,%s)", s.StartAt().Format(time.RFC3339), s.EndAt().Format(time.RFC3339))
}

type Notes struct {
	value string
}

func NewNotes(value string) Notes {
	return Notes{value: value}
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}

// Package schedule produces the bookable calendar: open days for the booking
// window and the time slots offered on each of them.
package schedule

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// SlotLayout is the wire format for slot times (24-hour HH:MM).
	SlotLayout = "15:04"

	// DefaultWindowDays is how far ahead visitors may book.
	DefaultWindowDays = 14
	// ClosedWeekday is the one day a week the clinic takes no bookings.
	ClosedWeekday = time.Sunday
)

// Day is one calendar day open for booking.
type Day struct {
	Date    string       `json:"date"`
	Label   string       `json:"label"`
	Weekday time.Weekday `json:"weekday"`
}

// OpenDays returns the days from now's calendar date through the following
// window-1 days, skipping ClosedWeekday. Days are computed in now's location.
// A non-positive window falls back to DefaultWindowDays.
func OpenDays(now time.Time, window int) []Day {
	if window <= 0 {
		window = DefaultWindowDays
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	days := make([]Day, 0, window)
	for i := 0; i < window; i++ {
		d := start.AddDate(0, 0, i)
		if d.Weekday() == ClosedWeekday {
			continue
		}
		days = append(days, Day{
			Date:    d.Format(DateLayout),
			Label:   d.Format("Mon, 02 Jan"),
			Weekday: d.Weekday(),
		})
	}
	return days
}

// Combine joins a YYYY-MM-DD date and an HH:MM time into one instant in loc.
func Combine(date, slot string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout+" "+SlotLayout, date+" "+slot, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: combine %q %q: %w", date, slot, err)
	}
	return t, nil
}

// LoadLocation resolves the clinic time zone, falling back to UTC when the
// name is unknown.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Errorf("schedule: load location %q: %w", name, err)
	}
	return loc, nil
}

package site

import (
	"html/template"
	"time"

	"github.com/wolfman30/physio-clinic/internal/bookings"
	"github.com/wolfman30/physio-clinic/internal/clinic"
	"github.com/wolfman30/physio-clinic/internal/schedule"
	"github.com/wolfman30/physio-clinic/internal/state"
)

const startLabelLayout = "Mon, 02 Jan 2006 · 15:04"

// PageData is everything the page template renders.
type PageData struct {
	Profile          *clinic.Profile
	TelURL           template.URL
	HoursSummary     string
	Year             int
	Days             []schedule.Day
	Slots            []string
	Modes            []bookings.Mode
	FirstAvailable   string
	Form             bookings.Form
	Rejection        *bookings.RejectionError
	Confirmation     *ConfirmationView
	Bookings         []BookingView
	ShowCookieBanner bool
	Prefs            state.Preferences

	PainStart    float64
	PainEnd      float64
	ROMGain      int
	OutcomeWeeks int
}

// ConfirmationView backs the "You're booked!" panel.
type ConfirmationView struct {
	StartLabel  string
	DownloadURL string
	Filename    string
	EmailURL    string
}

// BookingView is one row of the upcoming bookings list.
type BookingView struct {
	bookings.Booking
	StartLabel    string
	CalendarURL   string
	RescheduleURL string
}

func newPageData(profile *clinic.Profile, now time.Time) *PageData {
	d := &PageData{
		Profile:        profile,
		TelURL:         template.URL(profile.TelURL()),
		HoursSummary:   profile.HoursSummary(),
		Year:           now.Year(),
		Modes:          bookings.Modes,
		FirstAvailable: bookings.TherapistFirstAvailable,
		Form:           bookings.DefaultForm(),
		Prefs:          state.DefaultPreferences(),
	}
	if n := len(profile.Outcomes); n > 0 {
		first, last := profile.Outcomes[0], profile.Outcomes[n-1]
		d.PainStart, d.PainEnd = first.Pain, last.Pain
		d.ROMGain = last.ROM - first.ROM
		d.OutcomeWeeks = last.Week
	}
	return d
}

func startLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(startLabelLayout)
}

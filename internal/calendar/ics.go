// Package calendar renders bookings as iCalendar (RFC 5545) documents that
// visitors can import into their own calendar apps.
package calendar

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// ContentType is served with every .ics download.
	ContentType = "text/calendar; charset=utf-8"
	// ProductID identifies the generator inside the document.
	ProductID = "-//Karpagam Physiotherapy//Booking//EN"
	// UIDDomain scopes generated event identifiers.
	UIDDomain = "karpagam.physio"

	utcLayout = "20060102T150405Z"
	crlf      = "\r\n"
)

// Event is the calendar view of one appointment.
type Event struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// Artifact is a rendered calendar document ready for download.
type Artifact struct {
	UID         string `json:"uid"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Encoder renders events. UIDs come from NewID so two artifacts never share
// one, even when created in the same instant.
type Encoder struct {
	NewID func() string
	Now   func() time.Time
}

// NewEncoder returns an encoder using random UUIDs and the wall clock.
func NewEncoder() *Encoder {
	return &Encoder{NewID: uuid.NewString, Now: time.Now}
}

// Encode renders ev as a single-event VCALENDAR document. filename is used
// as-is for the download name.
func (e *Encoder) Encode(ev Event, filename string) Artifact {
	newID, now := uuid.NewString, time.Now
	if e != nil && e.NewID != nil {
		newID = e.NewID
	}
	if e != nil && e.Now != nil {
		now = e.Now
	}
	uid := newID() + "@" + UIDDomain

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ProductID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + FormatUTC(now()),
		"DTSTART:" + FormatUTC(ev.Start),
		"DTEND:" + FormatUTC(ev.End),
		"SUMMARY:" + EscapeText(ev.Title),
		"DESCRIPTION:" + EscapeText(ev.Description),
		"LOCATION:" + EscapeText(ev.Location),
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return Artifact{
		UID:         uid,
		Filename:    filename,
		ContentType: ContentType,
		Body:        []byte(strings.Join(lines, crlf)),
	}
}

// FormatUTC renders t as a compact UTC timestamp (YYYYMMDDTHHMMSSZ), dropping
// sub-second precision.
func FormatUTC(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(utcLayout)
}

// EscapeText doubles backslashes and replaces line breaks with the
// two-character sequence \n so a value never spans more than one content line.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}

package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/physio-clinic/internal/bookings"
	"github.com/wolfman30/physio-clinic/internal/calendar"
	"github.com/wolfman30/physio-clinic/internal/clinic"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

// ConfirmationSubject matches the pre-filled "Email confirmation" link.
const ConfirmationSubject = "Your Physio Booking"

// BookingMailer emails visitors a summary of each booking they make.
type BookingMailer struct {
	sender  EmailSender
	profile *clinic.Profile
	loc     *time.Location
	encoder *calendar.Encoder
	logger  *logging.Logger
}

// NewBookingMailer creates a mailer. A nil sender disables sending.
func NewBookingMailer(sender EmailSender, profile *clinic.Profile, loc *time.Location, logger *logging.Logger) *BookingMailer {
	if profile == nil {
		profile = clinic.DefaultProfile()
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingMailer{sender: sender, profile: profile, loc: loc, encoder: calendar.NewEncoder(), logger: logger}
}

// BookingConfirmed sends the confirmation email for b.
func (m *BookingMailer) BookingConfirmed(ctx context.Context, b bookings.Booking) error {
	if m.sender == nil {
		m.logger.Debug("notify: email sender not configured, skipping confirmation", "booking_id", b.ID)
		return nil
	}
	return m.sender.Send(ctx, m.Message(b))
}

// Message builds the confirmation email for b with its .ics attached.
func (m *BookingMailer) Message(b bookings.Booking) EmailMessage {
	start := b.Start.In(m.loc)

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", b.Name)
	fmt.Fprintf(&body, "You're booked with %s. See you soon!\n\n", m.profile.Brand)
	fmt.Fprintf(&body, "Service:   %s\n", b.Service)
	fmt.Fprintf(&body, "Therapist: %s\n", b.Therapist)
	fmt.Fprintf(&body, "Mode:      %s\n", b.Mode)
	fmt.Fprintf(&body, "When:      %s (%d minutes)\n", start.Format("Mon, 02 Jan 2006 15:04 MST"), int(bookings.SessionLength.Minutes()))
	fmt.Fprintf(&body, "Where:     %s, %s\n\n", m.profile.StreetAddress, m.profile.Locality)
	body.WriteString("Please arrive 10 minutes early.\n")
	fmt.Fprintf(&body, "If unwell, reschedule via %s or %s.\n", m.profile.Email, m.profile.Phone)
	fmt.Fprintf(&body, "Directions: %s\n", m.profile.MapsURL)

	ics := m.encoder.Encode(b.Event(m.profile.EventLocation()), b.Filename())
	return EmailMessage{
		To:      b.Email,
		ToName:  b.Name,
		ReplyTo: m.profile.Email,
		Subject: ConfirmationSubject,
		Body:    body.String(),
		Attachments: []Attachment{{
			Filename:    ics.Filename,
			ContentType: ics.ContentType,
			Data:        ics.Body,
		}},
	}
}

var _ bookings.Notifier = (*BookingMailer)(nil)

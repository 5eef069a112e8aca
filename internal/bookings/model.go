package bookings

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wolfman30/physio-clinic/internal/calendar"
)

// SessionLength is the fixed duration of every appointment.
const SessionLength = 45 * time.Minute

const (
	// TherapistFirstAvailable lets the clinic assign whoever is free.
	TherapistFirstAvailable = "First available"
	// DefaultService is preselected on the booking form.
	DefaultService = "Pain Management"
)

// Mode is how the session is delivered.
type Mode string

const (
	ModeInClinic   Mode = "In-Clinic"
	ModeHomeVisit  Mode = "Home Visit"
	ModeTelehealth Mode = "Telehealth"
)

// Modes lists the visit modes in display order.
var Modes = []Mode{ModeInClinic, ModeHomeVisit, ModeTelehealth}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// Booking is one committed appointment. It is never mutated after creation.
type Booking struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Therapist string    `json:"therapist"`
	Mode      Mode      `json:"mode"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Event maps the booking onto the calendar file shown after confirmation.
func (b Booking) Event(location string) calendar.Event {
	return calendar.Event{
		Title: "Physiotherapy: " + b.Service,
		Description: fmt.Sprintf("Therapist: %s\nMode: %s\nBooked for %s (%s)\nPlease arrive 10 minutes early.\nIf unwell, reschedule via email or phone.",
			b.Therapist, b.Mode, b.Name, b.Phone),
		Location: location,
		Start:    b.Start,
		End:      b.End,
	}
}

// Filename is the download name of the booking's calendar file.
func (b Booking) Filename() string {
	return "Physio-" + b.ID + ".ics"
}

// Form is a booking request as submitted by the visitor. Email and phone are
// free text; only presence is checked.
type Form struct {
	Name      string `json:"name" form:"name" validate:"required"`
	Email     string `json:"email" form:"email" validate:"required"`
	Phone     string `json:"phone" form:"phone" validate:"required"`
	Service   string `json:"service" form:"service"`
	Therapist string `json:"therapist" form:"therapist"`
	Mode      Mode   `json:"mode" form:"mode" validate:"visit_mode"`
	Date      string `json:"date" form:"date" validate:"required"`
	Time      string `json:"time" form:"time" validate:"required"`
}

// DefaultForm is the blank form with the preselected options.
func DefaultForm() Form {
	return Form{
		Service:   DefaultService,
		Therapist: TherapistFirstAvailable,
		Mode:      ModeInClinic,
	}
}

// Normalize trims every field and fills the optional ones with defaults.
func (f Form) Normalize() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Service = strings.TrimSpace(f.Service)
	f.Therapist = strings.TrimSpace(f.Therapist)
	f.Mode = Mode(strings.TrimSpace(string(f.Mode)))
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)

	if f.Service == "" {
		f.Service = DefaultService
	}
	if f.Therapist == "" {
		f.Therapist = TherapistFirstAvailable
	}
	if f.Mode == "" {
		f.Mode = ModeInClinic
	}
	return f
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("visit_mode", func(fl validator.FieldLevel) bool {
		return Mode(fl.Field().String()).Valid()
	})
}

// Validate checks a normalized form and returns a *RejectionError naming
// every offending field.
func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var missing []string
	modeInvalid := false
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "visit_mode":
			modeInvalid = true
		}
	}
	if len(missing) > 0 {
		return reject(ReasonIncomplete, missing...)
	}
	if modeInvalid {
		return reject(ReasonInvalidMode, "mode")
	}
	return nil
}

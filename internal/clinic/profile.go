// Package clinic provides the clinic's public profile: contact details,
// opening hours, and the marketing content shown on the site.
package clinic

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DayHours represents the opening hours for a single day.
// Nil means the clinic is closed that day.
type DayHours struct {
	Open  string `json:"open"`  // "08:30" in 24-hour format
	Close string `json:"close"` // "18:00" in 24-hour format
}

// BusinessHours maps day names to their hours.
type BusinessHours struct {
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
	Sunday    *DayHours `json:"sunday,omitempty"`
}

// GetHoursForDay returns the hours for a given weekday (0=Sunday, 6=Saturday).
func (b *BusinessHours) GetHoursForDay(weekday time.Weekday) *DayHours {
	switch weekday {
	case time.Sunday:
		return b.Sunday
	case time.Monday:
		return b.Monday
	case time.Tuesday:
		return b.Tuesday
	case time.Wednesday:
		return b.Wednesday
	case time.Thursday:
		return b.Thursday
	case time.Friday:
		return b.Friday
	case time.Saturday:
		return b.Saturday
	default:
		return nil
	}
}

// ClosedDays lists the weekdays with no hours, Sunday first.
func (b *BusinessHours) ClosedDays() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if b.GetHoursForDay(d) == nil {
			out = append(out, d)
		}
	}
	return out
}

// Service is one treatment line offered by the clinic.
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Therapist is a member of the care team.
type Therapist struct {
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Blurb  string  `json:"blurb"`
	Rating float64 `json:"rating"`
}

// Outcome is one weekly data point of the published recovery figures.
type Outcome struct {
	Week int     `json:"week"`
	Pain float64 `json:"pain"`
	ROM  int     `json:"rom"`
}

// Plan is a pricing card.
type Plan struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

// FAQ is a question with its answer.
type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// Review is a patient testimonial.
type Review struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Profile is everything the public site says about the clinic.
type Profile struct {
	Brand         string        `json:"brand"`
	BrandShort    string        `json:"brand_short"`
	Tagline       string        `json:"tagline"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	MapsURL       string        `json:"maps_url"`
	MapEmbedURL   string        `json:"map_embed_url"`
	StreetAddress string        `json:"street_address"`
	Locality      string        `json:"locality"`
	City          string        `json:"city"`
	Timezone      string        `json:"timezone"`
	BusinessHours BusinessHours `json:"business_hours"`
	Services      []Service     `json:"services"`
	Therapists    []Therapist   `json:"therapists"`
	Outcomes      []Outcome     `json:"outcomes"`
	Pricing       []Plan        `json:"pricing"`
	FAQs          []FAQ         `json:"faqs"`
	Reviews       []Review      `json:"reviews"`
}

// DefaultProfile returns the Karpagam Physiotherapy profile.
func DefaultProfile() *Profile {
	weekday := &DayHours{Open: "08:30", Close: "18:00"}
	return &Profile{
		Brand:         "Karpagam Physiotherapy",
		BrandShort:    "KP",
		Tagline:       "Feel better. Move better.",
		Email:         "hello@karpagam.physio",
		Phone:         "+91 99990 00111",
		MapsURL:       "https://www.google.com/maps/search/?api=1&query=12.9700,77.6450",
		MapEmbedURL:   "https://www.openstreetmap.org/export/embed.html?bbox=77.640%2C12.96%2C77.65%2C12.98&layer=mapnik&marker=12.97%2C77.645",
		StreetAddress: "221B Wellness Ave",
		Locality:      "Indiranagar, Bengaluru 560038",
		City:          "Bengaluru",
		Timezone:      "Asia/Kolkata",
		BusinessHours: BusinessHours{
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
			Friday:    weekday,
			Saturday:  weekday,
		},
		Services: []Service{
			{Name: "Pain Management", Description: "Evidence-based treatment for back, neck, knee and shoulder pain."},
			{Name: "Sports Rehab", Description: "Return-to-sport programs with strength & mobility testing."},
			{Name: "Post-Operative Care", Description: "Customized protocols after ACL, meniscus, rotator cuff & more."},
			{Name: "Neurological Rehab", Description: "Stroke, Parkinson's, vestibular therapy & balance training."},
			{Name: "Pediatric Physio", Description: "Milestone support, torticollis, scoliosis & postural care."},
			{Name: "Ergonomics @ Work", Description: "Desk set-up audits and injury-prevention workshops."},
		},
		Therapists: []Therapist{
			{Name: "Dr. Aisha Raman, PT, DPT", Role: "Sports Rehab Lead", Blurb: "Certified in return-to-play testing; loves marathon strength plans.", Rating: 4.9},
			{Name: "Arjun Mehta, MPT", Role: "Spine & Post-op", Blurb: "Manual therapy + progressive loading for sustainable recovery.", Rating: 4.8},
			{Name: "Meera Iyer, BPT", Role: "Neuro & Vestibular", Blurb: "Balance retraining and dizziness resolution specialist.", Rating: 4.9},
		},
		Outcomes: []Outcome{
			{Week: 0, Pain: 7.6, ROM: 52},
			{Week: 1, Pain: 6.8, ROM: 58},
			{Week: 2, Pain: 5.9, ROM: 64},
			{Week: 3, Pain: 4.9, ROM: 70},
			{Week: 4, Pain: 4.1, ROM: 76},
			{Week: 5, Pain: 3.4, ROM: 81},
			{Week: 6, Pain: 2.7, ROM: 86},
			{Week: 7, Pain: 2.2, ROM: 90},
			{Week: 8, Pain: 1.8, ROM: 93},
		},
		Pricing: []Plan{
			{Name: "Evaluation", Price: "₹1,200", Features: []string{"45–60 min", "Movement screen", "Plan of care"}},
			{Name: "Follow-up", Price: "₹900", Features: []string{"30–45 min", "Hands-on + exercise", "Progress tracking"}},
			{Name: "Recovery Pack (6)", Price: "₹4,800", Features: []string{"Save 10%", "Flexible scheduling", "Home program"}},
		},
		FAQs: []FAQ{
			{Question: "Do I need a doctor's prescription?", Answer: "In most cases, no. We can evaluate you directly and coordinate with your physician as needed."},
			{Question: "How long is each session?", Answer: "Initial evaluations are 45–60 minutes; follow-ups are typically 30–45 minutes depending on your plan."},
			{Question: "Do you offer home visits or telehealth?", Answer: "Yes, we provide in-clinic, at-home, and secure video sessions."},
			{Question: "Which insurance providers do you accept?", Answer: "We support most major insurers and provide cash packages. See Billing & Insurance below."},
		},
		Reviews: []Review{
			{Name: "Saanvi R.", Text: "After my ACL surgery, the return-to-run plan was spot on. Back on the pitch!"},
			{Name: "Rohit K.", Text: "The back pain education changed everything. No more fear of bending."},
			{Name: "Ishaan M.", Text: "Vestibular therapy stopped the dizziness in two weeks. Life saver."},
		},
	}
}

// EventLocation is the location line written into calendar files.
func (p *Profile) EventLocation() string {
	return fmt.Sprintf("%s, %s, %s", p.Brand, p.StreetAddress, p.City)
}

// TelURL is the tel: link for the clinic phone number.
func (p *Profile) TelURL() string {
	return "tel:" + strings.Join(strings.Fields(p.Phone), "")
}

// HoursSummary renders the opening hours the way the contact card shows
// them, e.g. "Mon–Sat 8:30–18:00 · Sundays closed".
func (p *Profile) HoursSummary() string {
	var open []time.Weekday
	var hours *DayHours
	for d := time.Monday; d <= time.Saturday; d++ {
		if h := p.BusinessHours.GetHoursForDay(d); h != nil {
			open = append(open, d)
			hours = h
		}
	}
	if len(open) == 0 {
		return "By appointment"
	}
	span := open[0].String()[:3]
	if len(open) > 1 {
		span += "–" + open[len(open)-1].String()[:3]
	}
	out := fmt.Sprintf("%s %s–%s", span, strings.TrimPrefix(hours.Open, "0"), hours.Close)
	if p.BusinessHours.Sunday == nil {
		out += " · Sundays closed"
	}
	return out
}

// MailtoURL builds a mailto: link with an encoded subject and optional body.
func MailtoURL(to, subject, body string) string {
	q := "subject=" + url.PathEscape(subject)
	if body != "" {
		q += "&body=" + url.PathEscape(body)
	}
	return "mailto:" + to + "?" + q
}

// ConfirmationMailto is the "Email confirmation" link of the booking panel.
func ConfirmationMailto(to string) string {
	return MailtoURL(to, "Your Physio Booking", "See you soon!")
}

// RescheduleMailto is the "Reschedule" link of the upcoming bookings list.
func RescheduleMailto(to string) string {
	return MailtoURL(to, "Reschedule request", "")
}

package schedule

import "strings"

// SlotTemplate is the fixed daily list of appointment start times.
var SlotTemplate = []string{
	"08:30",
	"09:30",
	"10:30",
	"11:30",
	"14:00",
	"15:00",
	"16:00",
	"17:00",
}

// PlaceholderBlockedIndex picks the template slot hidden on date. It stands in
// for a real scheduling backend: the date's digits (separators removed) are
// reduced to their last two characters, read as a decimal number and taken
// modulo the template length. The result depends on the date string alone,
// never on other bookings.
//
// Leading digits of the two-character tail are used; when there are none
// (empty or non-numeric input) the index is 0.
func PlaceholderBlockedIndex(date string) int {
	seed := strings.ReplaceAll(date, "-", "")
	if len(seed) > 2 {
		seed = seed[len(seed)-2:]
	}
	n, ok := leadingDigits(seed)
	if !ok {
		return 0
	}
	return n % len(SlotTemplate)
}

// AvailableSlots lists the bookable times for date in template order. An empty
// date means nothing has been picked yet and yields no slots.
func AvailableSlots(date string) []string {
	if strings.TrimSpace(date) == "" {
		return []string{}
	}
	blocked := PlaceholderBlockedIndex(date)
	out := make([]string, 0, len(SlotTemplate)-1)
	for i, slot := range SlotTemplate {
		if i == blocked {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// IsAvailable reports whether slot is offered on date.
func IsAvailable(date, slot string) bool {
	for _, s := range AvailableSlots(date) {
		if s == slot {
			return true
		}
	}
	return false
}

func leadingDigits(s string) (int, bool) {
	n, seen := 0, false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	return n, seen
}

package state

import (
	"context"
	"math"
	"strconv"
)

// PreferencesKey holds the visitor's display preferences.
const PreferencesKey = "a11y_prefs_v1"

// Font scale bounds and step for the accessibility toolbar.
const (
	MinFontScale     = 0.9
	MaxFontScale     = 1.4
	DefaultFontScale = 1.0
	FontScaleStep    = 0.05
)

// Preferences are the visitor's accessibility toggles.
type Preferences struct {
	HighContrast bool    `json:"high_contrast"`
	FontScale    float64 `json:"font_scale"`
}

// DefaultPreferences is normal contrast at 1rem.
func DefaultPreferences() Preferences {
	return Preferences{FontScale: DefaultFontScale}
}

// Normalize clamps FontScale into range and rounds it to two decimals.
// A zero scale means unset.
func (p Preferences) Normalize() Preferences {
	if p.FontScale == 0 || math.IsNaN(p.FontScale) {
		p.FontScale = DefaultFontScale
	}
	p.FontScale = math.Round(p.FontScale*100) / 100
	p.FontScale = math.Min(MaxFontScale, math.Max(MinFontScale, p.FontScale))
	return p
}

// Apply performs one toolbar action: "contrast", "larger" or "smaller".
// It reports false for an unknown action and leaves p unchanged.
func (p Preferences) Apply(action string) (Preferences, bool) {
	p = p.Normalize()
	switch action {
	case "contrast":
		p.HighContrast = !p.HighContrast
	case "larger":
		p.FontScale += FontScaleStep
	case "smaller":
		p.FontScale -= FontScaleStep
	default:
		return p, false
	}
	return p.Normalize(), true
}

// FontSize renders the scale as a CSS length, e.g. "1.05rem".
func (p Preferences) FontSize() string {
	return strconv.FormatFloat(p.Normalize().FontScale, 'f', 2, 64) + "rem"
}

// Preferences returns the visitor's display preferences.
func (s *Service) Preferences(ctx context.Context, visitorID string) Preferences {
	return Load(ctx, s, PreferencesKey, visitorID, DefaultPreferences()).Normalize()
}

// SetPreferences stores p after clamping it.
func (s *Service) SetPreferences(ctx context.Context, visitorID string, p Preferences) error {
	return Save(ctx, s, PreferencesKey, visitorID, p.Normalize())
}

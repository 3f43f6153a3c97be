package filter

import "fmt"

// ID identifies one of the adjustable image filters.
type ID string

const (
	Brightness ID = "brightness"
	Contrast   ID = "contrast"
	Grayscale  ID = "grayscale"
	Sepia      ID = "sepia"
	Saturate   ID = "saturate"
)

// Neutral is the percentage at which brightness, contrast and saturate have
// no effect. Grayscale and sepia are neutral at zero.
const Neutral = 100.0

// chainOrder is the fixed compositing order of the filter chain.
var chainOrder = []ID{Brightness, Contrast, Grayscale, Sepia, Saturate}

// Settings holds the current value of each filter knob, all percentages.
type Settings struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Grayscale  float64 `json:"grayscale"`
	Sepia      float64 `json:"sepia"`
	Saturate   float64 `json:"saturate"`
}

// Boosts holds the values each toggle switches to when activated.
type Boosts struct {
	Brightness float64
	Contrast   float64
	Saturate   float64
	Grayscale  float64
	Sepia      float64
}

// DefaultSettings returns the neutral knob values.
func DefaultSettings() Settings {
	return Settings{
		Brightness: Neutral,
		Contrast:   Neutral,
		Grayscale:  0,
		Sepia:      0,
		Saturate:   Neutral,
	}
}

// value returns the current value of the given knob.
func (s Settings) value(id ID) float64 {
	switch id {
	case Brightness:
		return s.Brightness
	case Contrast:
		return s.Contrast
	case Grayscale:
		return s.Grayscale
	case Sepia:
		return s.Sepia
	case Saturate:
		return s.Saturate
	}
	return 0
}

// IsActive reports whether the given filter is away from its neutral value.
func (s Settings) IsActive(id ID) bool {
	switch id {
	case Grayscale, Sepia:
		return s.value(id) != 0
	case Brightness, Contrast, Saturate:
		return s.value(id) != Neutral
	}
	return false
}

// Active returns the set of filters currently toggled on, in chain order.
// It is derived from the knob values; there is no separately tracked set.
func (s Settings) Active() []ID {
	var out []ID
	for _, id := range chainOrder {
		if s.IsActive(id) {
			out = append(out, id)
		}
	}
	return out
}

// Toggle flips the given filter between its neutral value and the configured
// boost. Grayscale and sepia are mutually exclusive: activating one forces
// the other to zero.
func (s *Settings) Toggle(id ID, b Boosts) {
	switch id {
	case Brightness:
		s.Brightness = flip(s.Brightness, Neutral, b.Brightness)
	case Contrast:
		s.Contrast = flip(s.Contrast, Neutral, b.Contrast)
	case Saturate:
		s.Saturate = flip(s.Saturate, Neutral, b.Saturate)
	case Grayscale:
		s.Grayscale = flip(s.Grayscale, 0, b.Grayscale)
		if s.Grayscale != 0 {
			s.Sepia = 0
		}
	case Sepia:
		s.Sepia = flip(s.Sepia, 0, b.Sepia)
		if s.Sepia != 0 {
			s.Grayscale = 0
		}
	}
}

// flip returns boosted if current is at neutral, neutral otherwise.
func flip(current, neutral, boosted float64) float64 {
	if current == neutral {
		return boosted
	}
	return neutral
}

// Chain renders the settings as a filter string in the fixed compositing
// order: brightness, contrast, grayscale, sepia, saturate.
func (s Settings) Chain() string {
	return fmt.Sprintf("brightness(%g%%) contrast(%g%%) grayscale(%g%%) sepia(%g%%) saturate(%g%%)",
		s.Brightness, s.Contrast, s.Grayscale, s.Sepia, s.Saturate)
}

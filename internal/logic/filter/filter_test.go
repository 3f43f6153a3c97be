package filter

import (
	"strings"
	"testing"
)

var testBoosts = Boosts{
	Brightness: 125,
	Contrast:   150,
	Saturate:   200,
	Grayscale:  100,
	Sepia:      80,
}

func TestDefaultSettings_Neutral(t *testing.T) {
	s := DefaultSettings()
	if got := s.Active(); len(got) != 0 {
		t.Errorf("default settings should have no active filters, got %v", got)
	}
}

func TestToggle_OnOff(t *testing.T) {
	cases := []struct {
		id      ID
		boosted float64
		neutral float64
	}{
		{Brightness, 125, Neutral},
		{Contrast, 150, Neutral},
		{Saturate, 200, Neutral},
		{Grayscale, 100, 0},
		{Sepia, 80, 0},
	}
	for _, tc := range cases {
		t.Run(string(tc.id), func(t *testing.T) {
			s := DefaultSettings()
			s.Toggle(tc.id, testBoosts)
			if got := s.value(tc.id); got != tc.boosted {
				t.Errorf("after toggle on: %s = %g, want %g", tc.id, got, tc.boosted)
			}
			if !s.IsActive(tc.id) {
				t.Errorf("%s should be active after toggle on", tc.id)
			}
			s.Toggle(tc.id, testBoosts)
			if got := s.value(tc.id); got != tc.neutral {
				t.Errorf("after toggle off: %s = %g, want %g", tc.id, got, tc.neutral)
			}
			if s.IsActive(tc.id) {
				t.Errorf("%s should be inactive after toggle off", tc.id)
			}
		})
	}
}

func TestToggle_GrayscaleSepiaExclusive(t *testing.T) {
	s := DefaultSettings()

	s.Toggle(Grayscale, testBoosts)
	s.Toggle(Sepia, testBoosts)
	if s.Grayscale != 0 {
		t.Errorf("activating sepia should zero grayscale, got %g", s.Grayscale)
	}
	if s.Sepia != 80 {
		t.Errorf("sepia = %g, want 80", s.Sepia)
	}

	s.Toggle(Grayscale, testBoosts)
	if s.Sepia != 0 {
		t.Errorf("activating grayscale should zero sepia, got %g", s.Sepia)
	}
	if s.Grayscale != 100 {
		t.Errorf("grayscale = %g, want 100", s.Grayscale)
	}
}

// Exhaustively toggle every filter in every order pair; grayscale and sepia
// must never both be non-zero.
func TestToggle_ExclusivityInvariant(t *testing.T) {
	ids := []ID{Brightness, Contrast, Grayscale, Sepia, Saturate}
	s := DefaultSettings()
	for _, a := range ids {
		for _, b := range ids {
			s.Toggle(a, testBoosts)
			s.Toggle(b, testBoosts)
			if s.Grayscale != 0 && s.Sepia != 0 {
				t.Fatalf("grayscale (%g) and sepia (%g) both non-zero after toggling %s then %s",
					s.Grayscale, s.Sepia, a, b)
			}
		}
	}
}

func TestActive_Derived(t *testing.T) {
	s := DefaultSettings()
	s.Toggle(Sepia, testBoosts)
	s.Toggle(Brightness, testBoosts)

	got := s.Active()
	want := []ID{Brightness, Sepia}
	if len(got) != len(want) {
		t.Fatalf("active = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("active[%d] = %s, want %s (chain order)", i, got[i], want[i])
		}
	}
}

func TestChain_Order(t *testing.T) {
	s := DefaultSettings()
	s.Toggle(Contrast, testBoosts)
	s.Toggle(Sepia, testBoosts)

	chain := s.Chain()
	if chain != "brightness(100%) contrast(150%) grayscale(0%) sepia(80%) saturate(100%)" {
		t.Errorf("chain = %q", chain)
	}

	// Order is structural: brightness before contrast before grayscale
	// before sepia before saturate.
	idx := func(sub string) int { return strings.Index(chain, sub) }
	if !(idx("brightness") < idx("contrast") && idx("contrast") < idx("grayscale") &&
		idx("grayscale") < idx("sepia") && idx("sepia") < idx("saturate")) {
		t.Errorf("chain order wrong: %q", chain)
	}
}

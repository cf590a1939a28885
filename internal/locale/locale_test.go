package locale

import "testing"

func TestFilterPredicates(t *testing.T) {
	f := Filter{Neutral: "master", Display: "en"}

	tests := []struct {
		lang        string
		canonical   bool
		displayOnly bool
		neutralOnly bool
	}{
		{"master", true, false, true},
		{"en", true, true, false},
		{"de", false, false, false},
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := f.Canonical(tt.lang); got != tt.canonical {
				t.Errorf("Canonical(%q) = %v, want %v", tt.lang, got, tt.canonical)
			}
			if got := f.DisplayOnly(tt.lang); got != tt.displayOnly {
				t.Errorf("DisplayOnly(%q) = %v, want %v", tt.lang, got, tt.displayOnly)
			}
			if got := f.NeutralOnly(tt.lang); got != tt.neutralOnly {
				t.Errorf("NeutralOnly(%q) = %v, want %v", tt.lang, got, tt.neutralOnly)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	if Default.Neutral != "master" {
		t.Errorf("expected neutral locale master, got %s", Default.Neutral)
	}
	if Default.Display != "en" {
		t.Errorf("expected display locale en, got %s", Default.Display)
	}
}

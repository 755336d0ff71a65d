package completeness

import (
	"reflect"
	"testing"
)

func TestParseFullAssessment(t *testing.T) {
	text := `Here is my assessment of the material.

Overall completeness score: 82
Covered aspects:
- Installation steps
- Basic configuration
Missing or unclear aspects:
- Upgrade procedure
Recommendations:
- Add a troubleshooting guide
`

	a := Parse(text)

	if a.Score != 0.82 {
		t.Errorf("Score = %v, want 0.82", a.Score)
	}
	if want := []string{"Installation steps", "Basic configuration"}; !reflect.DeepEqual(a.CoveredAspects, want) {
		t.Errorf("CoveredAspects = %v, want %v", a.CoveredAspects, want)
	}
	if want := []string{"Upgrade procedure"}; !reflect.DeepEqual(a.MissingAspects, want) {
		t.Errorf("MissingAspects = %v, want %v", a.MissingAspects, want)
	}
	if want := []string{"Add a troubleshooting guide"}; !reflect.DeepEqual(a.Recommendations, want) {
		t.Errorf("Recommendations = %v, want %v", a.Recommendations, want)
	}
}

func TestParseScoreDefaultsWhenAbsent(t *testing.T) {
	a := Parse("The context covers most topics reasonably well.")
	if a.Score != 0.5 {
		t.Errorf("Score = %v, want default 0.5", a.Score)
	}
}

func TestParseScoreVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"plain number", "Overall score: 82", 0.82},
		{"score out of hundred", "Completeness score is 95 out of 100", 0.95},
		{"zero", "score: 0", 0.0},
		{"first score line wins", "score: 30\nsecond score: 90", 0.3},
		{"no digits on score line", "The score is high", 0.5},
		{"out of range clamped", "score: 999", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).Score; got != tt.want {
				t.Errorf("Parse(%q).Score = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseBulletMarkersStripped(t *testing.T) {
	text := `Covered aspects:
- dash item
• bullet item
1. numbered item`

	a := Parse(text)
	want := []string{"dash item", "bullet item", "numbered item"}
	if !reflect.DeepEqual(a.CoveredAspects, want) {
		t.Errorf("CoveredAspects = %v, want %v", a.CoveredAspects, want)
	}
}

func TestParseLinesBeforeAnyHeaderIgnored(t *testing.T) {
	text := `- orphan item before any section
Missing aspects:
- real gap`

	a := Parse(text)
	if len(a.CoveredAspects) != 0 {
		t.Errorf("CoveredAspects = %v, want empty", a.CoveredAspects)
	}
	if want := []string{"real gap"}; !reflect.DeepEqual(a.MissingAspects, want) {
		t.Errorf("MissingAspects = %v, want %v", a.MissingAspects, want)
	}
}

func TestParseUnclearKeywordMapsToMissing(t *testing.T) {
	text := `Unclear aspects:
- deployment details`

	a := Parse(text)
	if want := []string{"deployment details"}; !reflect.DeepEqual(a.MissingAspects, want) {
		t.Errorf("MissingAspects = %v, want %v", a.MissingAspects, want)
	}
}

func TestParseEmptyInput(t *testing.T) {
	a := Parse("")
	if a.Score != 0.5 {
		t.Errorf("Score = %v, want 0.5", a.Score)
	}
	if len(a.CoveredAspects)+len(a.MissingAspects)+len(a.Recommendations) != 0 {
		t.Errorf("sections not empty: %+v", a)
	}
}

package muscles_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/petrikoro/liftlog/internal/muscles"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantName   string
		wantGroups []string
	}{
		{
			name:       "exact match",
			input:      "bench press",
			wantName:   "bench press",
			wantGroups: []string{"chest", "triceps", "shoulders"},
		},
		{
			name:       "case and whitespace insensitive",
			input:      "  Bench Press  ",
			wantName:   "bench press",
			wantGroups: []string{"chest", "triceps", "shoulders"},
		},
		{
			name:       "variation substring match",
			input:      "smith bench press",
			wantName:   "bench press",
			wantGroups: []string{"chest", "triceps", "shoulders"},
		},
		{
			name:       "unknown name returns identity",
			input:      "zercher yoke carry",
			wantName:   "zercher yoke carry",
			wantGroups: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotGroups := muscles.Normalize(tt.input)
			if gotName != tt.wantName {
				t.Errorf("Normalize(%q) name = %q, want %q", tt.input, gotName, tt.wantName)
			}
			if diff := cmp.Diff(tt.wantGroups, gotGroups); diff != "" {
				t.Errorf("Normalize(%q) groups mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestExtractUnionsMappedGroups(t *testing.T) {
	groups := muscles.Extract([]string{"bench press", "pull-up"}, nil)

	for _, want := range []string{"chest", "triceps", "shoulders", "back", "biceps"} {
		if !slices.Contains(groups, want) {
			t.Errorf("Extract missing group %q, got %v", want, groups)
		}
	}
}

func TestExtractKeywordInference(t *testing.T) {
	tests := []struct {
		exercise string
		want     string
	}{
		{"bulgarian split squat", "glutes"},
		{"walking lunge", "glutes"},
		{"hip thrust", "glutes"},
		{"one leg calf raises", "calves"},
		{"weighted crunch", "abs"},
		{"plank", "abs"},
	}

	for _, tt := range tests {
		t.Run(tt.exercise, func(t *testing.T) {
			groups := muscles.Extract([]string{tt.exercise}, nil)
			if !slices.Contains(groups, tt.want) {
				t.Errorf("Extract(%q) = %v, want to contain %q", tt.exercise, groups, tt.want)
			}
		})
	}
}

func TestExtractUnknownExercise(t *testing.T) {
	if groups := muscles.Extract([]string{"mystery machine"}, nil); len(groups) != 0 {
		t.Errorf("Extract of unknown exercise = %v, want empty", groups)
	}
}

func TestExtractKnowledgeBaseNested(t *testing.T) {
	kbJSON := `{
		"muscle_groups": {
			"categorization": {
				"chest": {"primary_exercises": ["bench press", "cable fly"]},
				"arms": {
					"biceps": {"primary_exercises": ["concentration curl"]},
					"triceps": {"primary_exercises": ["close grip bench"]}
				}
			}
		}
	}`
	var kb muscles.KnowledgeBase
	if err := json.Unmarshal([]byte(kbJSON), &kb); err != nil {
		t.Fatalf("decode knowledge base: %v", err)
	}

	groups := muscles.Extract([]string{"concentration curl"}, &kb)
	for _, want := range []string{"arms", "biceps"} {
		if !slices.Contains(groups, want) {
			t.Errorf("Extract = %v, want to contain %q", groups, want)
		}
	}

	// Substring matching works in both directions: the logged name may be
	// shorter than the knowledge-base entry.
	groups = muscles.Extract([]string{"close grip bench press goes here"}, &kb)
	if !slices.Contains(groups, "triceps") {
		t.Errorf("Extract = %v, want to contain triceps", groups)
	}
}

func TestLoadKnowledgeBaseMissingFile(t *testing.T) {
	if kb := muscles.LoadKnowledgeBase("/nonexistent/kb.json"); kb != nil {
		t.Errorf("LoadKnowledgeBase of missing file = %v, want nil", kb)
	}
	if kb := muscles.LoadKnowledgeBase(""); kb != nil {
		t.Errorf("LoadKnowledgeBase of empty path = %v, want nil", kb)
	}
}

package workout_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/petrikoro/liftlog/internal/workout"
)

func TestSuggestProgression(t *testing.T) {
	tests := []struct {
		name       string
		lastWeight float64
		lastReps   int
		daysSince  int
		want       workout.Suggestion
	}{
		{
			name:       "recent low reps adds a rep",
			lastWeight: 135, lastReps: 5, daysSince: 3,
			want: workout.Suggestion{Weight: 135, Reps: 6, Reason: workout.ReasonAddRep},
		},
		{
			name:       "rep progression caps at twelve",
			lastWeight: 135, lastReps: 9, daysSince: 3,
			want: workout.Suggestion{Weight: 135, Reps: 10, Reason: workout.ReasonAddRep},
		},
		{
			name:       "ten reps at forty bumps to the next quarter step",
			lastWeight: 40, lastReps: 10, daysSince: 7,
			want: workout.Suggestion{Weight: 42.5, Reps: 10, Reason: workout.ReasonIncreaseWeight},
		},
		{
			name:       "heavy weight uses the five pound grid",
			lastWeight: 200, lastReps: 12, daysSince: 7,
			want: workout.Suggestion{Weight: 205, Reps: 12, Reason: workout.ReasonIncreaseWeight},
		},
		{
			name:       "grid rounding never swallows the increase",
			lastWeight: 50, lastReps: 10, daysSince: 7,
			want: workout.Suggestion{Weight: 55, Reps: 10, Reason: workout.ReasonIncreaseWeight},
		},
		{
			name:       "two to four week gap repeats the performance",
			lastWeight: 135, lastReps: 8, daysSince: 21,
			want: workout.Suggestion{Weight: 135, Reps: 8, Reason: workout.ReasonMatch},
		},
		{
			name:       "long layoff deloads",
			lastWeight: 100, lastReps: 8, daysSince: 45,
			want: workout.Suggestion{Weight: 95, Reps: 7, Reason: workout.ReasonDeload},
		},
		{
			name:       "deload never drops below one",
			lastWeight: 2, lastReps: 1, daysSince: 60,
			want: workout.Suggestion{Weight: 1, Reps: 1, Reason: workout.ReasonDeload},
		},
		{
			name:     "bodyweight adds a rep",
			lastReps: 8, daysSince: 3,
			want: workout.Suggestion{Weight: 0, Reps: 9, Reason: workout.ReasonAddRep},
		},
		{
			name:     "bodyweight at twelve reps moves to added weight",
			lastReps: 12, daysSince: 3,
			want: workout.Suggestion{Weight: 25, Reps: 5, Reason: workout.ReasonAddWeight},
		},
		{
			name:     "bodyweight layoff deloads a rep",
			lastReps: 10, daysSince: 40,
			want: workout.Suggestion{Weight: 0, Reps: 9, Reason: workout.ReasonDeload},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workout.SuggestProgression(tt.lastWeight, tt.lastReps, tt.daysSince)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SuggestProgression(%v, %d, %d) mismatch (-want +got):\n%s",
					tt.lastWeight, tt.lastReps, tt.daysSince, diff)
			}
		})
	}
}

func TestSuggestProgressionBounds(t *testing.T) {
	for _, weight := range []float64{20, 47.5, 50, 90, 135, 225} {
		for _, reps := range []int{1, 5, 9, 10, 11, 12} {
			for _, days := range []int{1, 14, 15, 30, 31, 90} {
				got := workout.SuggestProgression(weight, reps, days)
				if got.Weight < 1 {
					t.Errorf("SuggestProgression(%v, %d, %d).Weight = %v, below floor", weight, reps, days, got.Weight)
				}
				if got.Reps < 1 || got.Reps > 12 {
					t.Errorf("SuggestProgression(%v, %d, %d).Reps = %d, outside [1, 12]", weight, reps, days, got.Reps)
				}
			}
		}
	}
}

func TestLastPerformances(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	entries := []workout.Entry{
		{Date: "3/12/26", Text: "bench press - 135 * 8, 120 * 10"},
		{Date: "3/5/26", Text: "bench press - 150 * 3\npull ups 10, 8"},
		{Date: "garbage", Text: "bench press - 999 * 1"},
	}

	got := workout.LastPerformances(entries, now)

	want := map[string]workout.LastPerformance{
		// Most recent wins even though the older session was heavier.
		"bench press": {Exercise: "bench press", Weight: 135, Reps: 8, DaysAgo: 3},
		"pull ups":    {Exercise: "pull ups", Weight: 0, Reps: 10, DaysAgo: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LastPerformances mismatch (-want +got):\n%s", diff)
	}
}

func TestLastPerformancesRepsAtHeaviestSet(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// Reps come from the heaviest set, not the drop set with more reps.
	entries := []workout.Entry{
		{Date: "3/12/26", Text: "squat - 225 * 3, 185 * 10"},
	}

	got := workout.LastPerformances(entries, now)

	if perf := got["squat"]; perf.Weight != 225 || perf.Reps != 3 {
		t.Errorf("squat last performance = %+v, want weight 225 reps 3", perf)
	}
}

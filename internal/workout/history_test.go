package workout_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/petrikoro/liftlog/internal/workout"
)

func TestHistoryBefore(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	all := []workout.Entry{
		{Date: "3/14/26", Text: "bench press - 145 * 3"},
		{Date: "3/10/26", Text: "Bench Press - 135 * 8, 8\npull ups 12, 10"},
		{Date: "3/1/26", Text: "bench press - 140 * 5\npull ups 10"},
		{Date: "not a date", Text: "bench press - 500 * 1"},
	}
	ref := workout.Entry{Date: "3/14/26", Text: "bench press - 145 * 3"}

	got := workout.HistoryBefore(all, ref, now)

	want := map[string]workout.HistoryRecord{
		// Best weight 140 on 3/1 with 5 first reps; best first reps 8 on 3/10.
		"bench press": {BestWeight: 140, BestReps: 8, BestWeightReps: 5},
		"pull ups":    {BestWeight: 0, BestReps: 12, BestWeightReps: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HistoryBefore mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryBeforeExcludesReferenceDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	all := []workout.Entry{
		{Date: "3/14/26", Text: "bench press - 200 * 1"},
		{Date: "3/10/26", Text: "bench press - 135 * 5"},
	}
	ref := all[0]

	got := workout.HistoryBefore(all, ref, now)

	if rec := got["bench press"]; rec.BestWeight != 135 {
		t.Errorf("BestWeight = %d, want 135 (reference entry must not see itself)", rec.BestWeight)
	}
}

func TestHistoryBeforeUnparseableReference(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	all := []workout.Entry{{Date: "3/10/26", Text: "bench press - 135 * 5"}}
	ref := workout.Entry{Date: "someday", Text: "bench press - 135 * 5"}

	if got := workout.HistoryBefore(all, ref, now); len(got) != 0 {
		t.Errorf("HistoryBefore with unparseable reference = %v, want empty", got)
	}
}

func TestDetectAchievements(t *testing.T) {
	history := map[string]workout.HistoryRecord{
		"bench press": {BestWeight: 140, BestReps: 8, BestWeightReps: 5},
		"pull ups":    {BestWeight: 0, BestReps: 12},
		"squat":       {BestWeight: 225, BestReps: 5, BestWeightReps: 5},
	}

	tests := []struct {
		name         string
		text         string
		wantPR       bool
		wantStrength bool
	}{
		{
			name:   "weighted weight PR",
			text:   "bench press - 145 * 3",
			wantPR: true,
		},
		{
			name:         "strength increase at equal weight",
			text:         "squat - 225 * 6",
			wantStrength: true,
		},
		{
			name:   "bodyweight rep PR",
			text:   "pull ups 13, 10",
			wantPR: true,
		},
		{
			name: "matching previous best flags nothing",
			text: "bench press - 140 * 5",
		},
		{
			name: "no history flags nothing",
			text: "overhead press - 95 * 5",
		},
		{
			name: "fewer reps at equal weight flags nothing",
			text: "squat - 225 * 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workout.DetectAchievements(workout.Parse(tt.text), history)
			if got.HasPR != tt.wantPR {
				t.Errorf("HasPR = %v, want %v", got.HasPR, tt.wantPR)
			}
			if got.HasStrengthIncrease != tt.wantStrength {
				t.Errorf("HasStrengthIncrease = %v, want %v", got.HasStrengthIncrease, tt.wantStrength)
			}
		})
	}
}

func TestDetectAchievementsFlagsAreExclusivePerExercise(t *testing.T) {
	history := map[string]workout.HistoryRecord{
		"squat": {BestWeight: 225, BestReps: 5, BestWeightReps: 5},
	}

	// Heavier and more reps: the weight PR wins, never both flags.
	got := workout.DetectAchievements(workout.Parse("squat - 235 * 6"), history)

	if len(got.Exercises) != 1 {
		t.Fatalf("flagged exercises = %d, want 1", len(got.Exercises))
	}
	ach := got.Exercises[0]
	if !ach.IsPR || ach.IsStrengthIncrease {
		t.Errorf("achievement = %+v, want PR only", ach)
	}
}

package workout_test

import (
	"slices"
	"testing"
	"time"

	"github.com/petrikoro/liftlog/internal/workout"
)

func TestRecoveryStatusBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	entries := []workout.Entry{
		{Date: "3/15/26", Text: "bench press - 135 * 5"},       // chest today: too soon
		{Date: "3/12/26", Text: "squat - 225 * 5"},             // legs and glutes 3 days ago: optimal
		{Date: "3/10/26", Text: "pull ups 10, 8"},              // back and biceps 5 days ago: ready
		{Date: "2/1/26", Text: "overhead press - 95 * 5"},      // outside the 14 day window
	}

	report := workout.RecoveryStatus(entries, nil, now)

	for _, want := range []string{"chest", "triceps", "shoulders"} {
		if !slices.Contains(report.TooSoon, want) {
			t.Errorf("TooSoon missing %q: %v", want, report.TooSoon)
		}
	}
	for _, want := range []string{"legs", "glutes"} {
		if !slices.Contains(report.Optimal, want) {
			t.Errorf("Optimal missing %q: %v", want, report.Optimal)
		}
	}
	for _, want := range []string{"back", "biceps"} {
		if !slices.Contains(report.Ready, want) {
			t.Errorf("Ready missing %q: %v", want, report.Ready)
		}
	}
	// Shoulders were only trained outside the window, but the bench press
	// today covers them; calves were never trained at all.
	if !slices.Contains(report.Neglected, "calves") {
		t.Errorf("Neglected missing calves: %v", report.Neglected)
	}
}

func TestRecoveryStatusPrefersSpecificArmGroups(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// Nothing trains arms, biceps or triceps: all three would be
	// neglected, and the general group yields to the specific ones.
	entries := []workout.Entry{
		{Date: "3/14/26", Text: "squat - 225 * 5"},
	}

	report := workout.RecoveryStatus(entries, nil, now)

	if slices.Contains(report.Neglected, "arms") {
		t.Errorf("Neglected contains arms alongside biceps/triceps: %v", report.Neglected)
	}
	if !slices.Contains(report.Neglected, "biceps") || !slices.Contains(report.Neglected, "triceps") {
		t.Errorf("Neglected missing specific arm groups: %v", report.Neglected)
	}
}

func TestRecoveryStatusEmptyLog(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	report := workout.RecoveryStatus(nil, nil, now)

	if len(report.TooSoon)+len(report.Optimal)+len(report.Ready) != 0 {
		t.Errorf("empty log produced trained buckets: %+v", report)
	}
	if len(report.Neglected) == 0 {
		t.Error("empty log should report every group neglected")
	}
}

package workout

import "math"

// Suggestion reasons. Kept as constants so handlers and tests compare
// against the same strings.
const (
	ReasonAddRep         = "add a rep"
	ReasonIncreaseWeight = "increase weight"
	ReasonAddWeight      = "add weight, reset reps"
	ReasonMatch          = "match last performance"
	ReasonDeload         = "deload after layoff"
	ReasonNoHistory      = "no previous data"
)

// SuggestProgression computes the next target for one exercise from its last
// known performance and how many days ago that was.
//
// Recent work (within 14 days) progresses: below 10 reps add a rep, capped
// at 12; at 10 or more bump the weight by 2.5% or 2.5 lb, whichever is
// larger, snapped to the weight grid. A 15 to 30 day gap just repeats the
// last performance. Beyond 30 days the load deloads by 5% and one rep.
//
// Bodyweight (lastWeight 0) progresses on reps until 12, then suggests
// switching to added weight at 25 lb for 5 reps.
func SuggestProgression(lastWeight float64, lastReps, daysSince int) Suggestion {
	if lastWeight <= 0 {
		return suggestBodyweight(lastReps, daysSince)
	}

	switch {
	case daysSince <= 14:
		if lastReps < 10 {
			return Suggestion{
				Weight: lastWeight,
				Reps:   min(lastReps+1, 12),
				Reason: ReasonAddRep,
			}
		}
		return Suggestion{
			Weight: increasedWeight(lastWeight),
			Reps:   min(lastReps, 12),
			Reason: ReasonIncreaseWeight,
		}
	case daysSince <= 30:
		return Suggestion{Weight: lastWeight, Reps: lastReps, Reason: ReasonMatch}
	default:
		reps := lastReps
		if reps > 1 {
			reps--
		}
		return Suggestion{
			Weight: deloadedWeight(lastWeight),
			Reps:   reps,
			Reason: ReasonDeload,
		}
	}
}

func suggestBodyweight(lastReps, daysSince int) Suggestion {
	switch {
	case daysSince <= 14:
		if lastReps < 12 {
			return Suggestion{Weight: 0, Reps: lastReps + 1, Reason: ReasonAddRep}
		}
		return Suggestion{Weight: 25, Reps: 5, Reason: ReasonAddWeight}
	case daysSince <= 30:
		return Suggestion{Weight: 0, Reps: lastReps, Reason: ReasonMatch}
	default:
		reps := lastReps
		if reps > 1 {
			reps--
		}
		return Suggestion{Weight: 0, Reps: reps, Reason: ReasonDeload}
	}
}

// gridStep is the plate increment: 2.5 lb below 50, 5 lb from 50 up.
func gridStep(weight float64) float64 {
	if weight < 50 {
		return 2.5
	}
	return 5
}

// increasedWeight adds 2.5% (at least 2.5 lb) and snaps to the grid. Grid
// rounding can swallow a small increase, so the result is forced at least
// one full step above the starting weight.
func increasedWeight(lastWeight float64) float64 {
	step := gridStep(lastWeight)
	increase := math.Max(lastWeight*0.025, 2.5)
	next := math.Round((lastWeight+increase)/step) * step
	if next <= lastWeight {
		next = lastWeight + step
	}
	return next
}

// deloadedWeight drops 5%, rounded down to the grid, never below 1.
func deloadedWeight(lastWeight float64) float64 {
	step := gridStep(lastWeight)
	next := math.Floor(lastWeight*0.95/step) * step
	return math.Max(next, 1)
}

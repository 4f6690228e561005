package workout

import (
	"strings"
	"time"
)

// historyKey is how exercises are matched across workouts: raw name,
// lowercased and trimmed. "Bench press" and "bench press" fold together;
// "incline bench press" stays separate.
func historyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// HistoryBefore folds every entry strictly older than ref into per-exercise
// best records. Entries whose date fails to parse are skipped, as is
// everything dated on or after ref, so a workout never competes against
// itself or the future. Returns an empty map when ref's own date is
// unparseable, since there is no cutoff to compare against.
func HistoryBefore(all []Entry, ref Entry, now time.Time) map[string]HistoryRecord {
	history := make(map[string]HistoryRecord)

	refDate, ok := ParseEntryDate(ref.Date, now)
	if !ok {
		return history
	}

	for _, entry := range all {
		entryDate, ok := ParseEntryDate(entry.Date, now)
		if !ok || !entryDate.Before(refDate) {
			continue
		}

		for _, ex := range Parse(entry.Text).Exercises {
			key := historyKey(ex.Name)
			rec, seen := history[key]
			if !seen {
				rec = HistoryRecord{
					BestWeight: ex.MaxWeight,
					BestReps:   ex.FirstReps,
				}
				if ex.MaxWeight > 0 {
					rec.BestWeightReps = ex.FirstReps
				}
				history[key] = rec
				continue
			}
			if ex.MaxWeight > rec.BestWeight {
				rec.BestWeight = ex.MaxWeight
				rec.BestWeightReps = ex.FirstReps
			}
			if ex.FirstReps > rec.BestReps {
				rec.BestReps = ex.FirstReps
			}
			history[key] = rec
		}
	}

	return history
}

// DetectAchievements compares each exercise of a parsed workout against the
// history map. Bodyweight exercises PR on reps; weighted exercises PR on
// max weight, and count as a strength increase when the weight only equals
// the best but the first-set reps beat the reps recorded at that weight.
// The two flags are mutually exclusive per exercise. An exercise with no
// history cannot flag either way.
func DetectAchievements(parsed ParsedWorkout, history map[string]HistoryRecord) Achievements {
	var result Achievements

	for _, ex := range parsed.Exercises {
		rec, seen := history[historyKey(ex.Name)]
		if !seen {
			continue
		}

		ach := ExerciseAchievement{Exercise: ex.Name}
		if ex.IsBodyweight || ex.MaxWeight == 0 {
			ach.IsPR = ex.FirstReps > rec.BestReps
		} else {
			switch {
			case ex.MaxWeight > rec.BestWeight:
				ach.IsPR = true
			case ex.MaxWeight == rec.BestWeight && ex.FirstReps > rec.BestWeightReps:
				ach.IsStrengthIncrease = true
			}
		}

		if ach.IsPR || ach.IsStrengthIncrease {
			result.HasPR = result.HasPR || ach.IsPR
			result.HasStrengthIncrease = result.HasStrengthIncrease || ach.IsStrengthIncrease
			result.Exercises = append(result.Exercises, ach)
		}
	}

	return result
}

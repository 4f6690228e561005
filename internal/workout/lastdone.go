package workout

import "time"

// LastPerformance is the most recent recorded performance of one exercise.
// Weight is the heaviest set's weight and Reps the reps performed at that
// weight, not the overall max reps, which could come from a drop set.
type LastPerformance struct {
	Exercise string
	Weight   int
	Reps     int
	DaysAgo  int
}

// LastPerformances folds entries into a per-exercise lookup of the most
// recent performance, keyed like HistoryBefore. Entries dated in the future
// or more than ten years back are ignored.
func LastPerformances(entries []Entry, now time.Time) map[string]LastPerformance {
	lastDone := make(map[string]LastPerformance)

	for _, entry := range entries {
		entryDate, ok := ParseEntryDate(entry.Date, now)
		if !ok {
			continue
		}
		daysAgo := DaysBetween(entryDate, now)
		if daysAgo < 0 || daysAgo > 3650 {
			continue
		}

		for _, ex := range Parse(entry.Text).Exercises {
			key := historyKey(ex.Name)
			if prev, seen := lastDone[key]; seen && daysAgo >= prev.DaysAgo {
				continue
			}

			reps := ex.FirstReps
			if !ex.IsBodyweight && ex.MaxWeight > 0 {
				for _, s := range ex.Sets {
					if s.Weight == ex.MaxWeight {
						reps = s.Reps
						break
					}
				}
			}

			lastDone[key] = LastPerformance{
				Exercise: ex.Name,
				Weight:   ex.MaxWeight,
				Reps:     reps,
				DaysAgo:  daysAgo,
			}
		}
	}

	return lastDone
}

package workout

import (
	"regexp"
	"strconv"
	"strings"
)

// Two line grammars, tried in order. The bodyweight grammar wins ties, which
// keeps "pull ups 10, 8, 6" out of the weighted parser even though it also
// has no " - " separator.
//
//nolint:gochecknoglobals // compiled once.
var (
	bodyweightLine = regexp.MustCompile(`^([a-zA-Z\s\-]+?)\s+(\d+(?:\s*,\s*\d+)*)$`)
	leadingWeight  = regexp.MustCompile(`^(\d+)\s*(?:\([^)]*\))?\s*\*`)
	inlineWeight   = regexp.MustCompile(`(\d+)\s*\*\s*(\d+)`)
)

// ParseLine parses one line of workout text into a structured exercise.
//
// Bodyweight grammar: "name r1, r2, r3" with a letters-spaces-hyphens name.
// Weighted grammar: "name - weight [(qualifier)] * reps, reps; weight * reps".
// A bare rep token inherits the most recent weight; an inline "w * r" token
// switches the working weight for the rest of the list. Semicolons and commas
// both separate sets.
//
// Blank lines and lines starting with "SKIP" or "run" report ok == false, as
// does anything that fits neither grammar.
func ParseLine(line string) (ParsedExercise, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "SKIP") || strings.HasPrefix(line, "run") {
		return ParsedExercise{}, false
	}

	if m := bodyweightLine.FindStringSubmatch(line); m != nil {
		return parseBodyweight(m[1], m[2])
	}

	name, rest, found := strings.Cut(line, " - ")
	if !found {
		return ParsedExercise{}, false
	}
	return parseWeighted(strings.TrimSpace(name), strings.TrimSpace(rest))
}

func parseBodyweight(name, repList string) (ParsedExercise, bool) {
	var sets []Set
	for _, token := range strings.Split(repList, ",") {
		reps, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return ParsedExercise{}, false
		}
		sets = append(sets, Set{Weight: 0, Reps: reps})
	}
	if len(sets) == 0 {
		return ParsedExercise{}, false
	}
	return newParsedExercise(strings.TrimSpace(name), sets, 0), true
}

func parseWeighted(name, rest string) (ParsedExercise, bool) {
	m := leadingWeight.FindStringSubmatch(rest)
	if m == nil {
		return ParsedExercise{}, false
	}
	firstWeight, err := strconv.Atoi(m[1])
	if err != nil {
		return ParsedExercise{}, false
	}

	_, repList, found := strings.Cut(rest, "*")
	if !found {
		return ParsedExercise{}, false
	}

	currentWeight := firstWeight
	var sets []Set
	for _, group := range strings.Split(repList, ";") {
		for _, token := range strings.Split(group, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if wr := inlineWeight.FindStringSubmatch(token); wr != nil {
				weight, werr := strconv.Atoi(wr[1])
				reps, rerr := strconv.Atoi(wr[2])
				if werr != nil || rerr != nil {
					continue
				}
				currentWeight = weight
				sets = append(sets, Set{Weight: weight, Reps: reps})
				continue
			}
			reps, rerr := strconv.Atoi(token)
			if rerr != nil {
				continue
			}
			sets = append(sets, Set{Weight: currentWeight, Reps: reps})
		}
	}
	if len(sets) == 0 {
		return ParsedExercise{}, false
	}
	return newParsedExercise(name, sets, firstWeight), true
}

// newParsedExercise computes the derived aggregates. firstWeight comes from
// the line header rather than sets[0]: a rep list may open with an inline
// weight change and the header still defines the canonical starting load.
func newParsedExercise(name string, sets []Set, firstWeight int) ParsedExercise {
	ex := ParsedExercise{
		Name:         name,
		Sets:         sets,
		FirstWeight:  firstWeight,
		FirstReps:    sets[0].Reps,
		TotalSets:    len(sets),
		IsBodyweight: firstWeight == 0,
	}
	for _, s := range sets {
		ex.MaxWeight = max(ex.MaxWeight, s.Weight)
		ex.MaxReps = max(ex.MaxReps, s.Reps)
	}
	return ex
}

// Parse parses a whole workout entry, one exercise per line. Lines that fit
// neither grammar are skipped rather than failing the workout.
func Parse(text string) ParsedWorkout {
	var parsed ParsedWorkout
	for _, line := range strings.Split(text, "\n") {
		ex, ok := ParseLine(line)
		if !ok {
			continue
		}
		parsed.Exercises = append(parsed.Exercises, ex)
		parsed.TotalSets += ex.TotalSets
	}
	parsed.ExerciseCount = len(parsed.Exercises)
	return parsed
}

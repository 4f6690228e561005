// Package searchindex maintains a per-user index mapping preset search
// queries to workouts. Three categories are rule-based and updated
// incrementally; two are assigned by a language model and rebuilt
// asynchronously when the log changes.
//
// The index stores stable workout keys rather than positions, so entries
// survive inserts and deletes elsewhere in the log. Callers resolve keys to
// display positions at read time.
package searchindex

import "time"

// Preset categories. The rule-based ones are recomputed locally on every
// change; the AI ones only during a rebuild.
const (
	CategoryPR       = "PR personal record"
	CategoryChest    = "chest workout"
	CategoryFullBody = "full body"
	CategoryLegDay   = "leg day"
	CategoryUpper    = "upper body"
)

//nolint:gochecknoglobals // static category sets.
var (
	RuleCategories = []string{CategoryPR, CategoryChest, CategoryFullBody}
	AICategories   = []string{CategoryLegDay, CategoryUpper}
)

// maxCategoryEntries caps every category at build time.
const maxCategoryEntries = 20

// Doc is the indexable view of one workout: its stable key plus the facts
// the categorizers need. Summary carries the raw workout text; the prompt
// builder truncates it.
type Doc struct {
	Key                 string
	Date                string
	Theme               string
	Summary             string
	HasPR               bool
	HasStrengthIncrease bool
	MuscleGroups        []string
}

// Metadata records what state of the workout log the index reflects.
type Metadata struct {
	WorkoutHash  string    `json:"workout_hash"`
	WorkoutCount int       `json:"workout_count"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Index maps categories to workout keys.
type Index struct {
	Categories map[string][]string `json:"categories"`
	Metadata   Metadata            `json:"_metadata"`
}

// Resolve translates a category's stored keys into positions using the
// caller's key-to-position map. Keys for workouts that no longer exist are
// dropped silently.
func (idx Index) Resolve(category string, positions map[string]int) []int {
	keys := idx.Categories[category]
	resolved := make([]int, 0, len(keys))
	for _, key := range keys {
		if pos, ok := positions[key]; ok {
			resolved = append(resolved, pos)
		}
	}
	return resolved
}

// Op is an incremental index operation.
type Op int

const (
	OpAdd Op = iota
	OpUpdate
	OpRemove
)

// inPR, inChest and inFullBody are the rule-based membership tests.
func inPR(doc Doc) bool { return doc.HasPR }

func inChest(doc Doc) bool {
	for _, g := range doc.MuscleGroups {
		if g == "chest" {
			return true
		}
	}
	return false
}

func inFullBody(doc Doc) bool { return len(doc.MuscleGroups) >= 3 }

func ruleMembership(category string, doc Doc) bool {
	switch category {
	case CategoryPR:
		return inPR(doc)
	case CategoryChest:
		return inChest(doc)
	case CategoryFullBody:
		return inFullBody(doc)
	default:
		return false
	}
}

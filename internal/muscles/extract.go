package muscles

import (
	"slices"
	"strings"
)

// Keyword inference for groups the mapping table often misses. Squat-pattern
// movements recruit glutes even when logged as a leg exercise, and so on.
//
//nolint:gochecknoglobals // static keyword tables.
var (
	gluteKeywords = []string{"squat", "lunge", "split", "hip", "glute"}
	absKeywords   = []string{"crunch", "sit-up", "plank", "ab", "core"}
)

// Extract derives the set of muscle groups worked by the named exercises.
//
// It unions the mapping-table groups for every exercise, consults the
// optional knowledge base with substring matching in both directions
// (including nested sub-groups such as arms.biceps), and finally applies
// keyword inference for glutes, calves and abs. The result is sorted and
// deduplicated.
func Extract(exerciseNames []string, kb *KnowledgeBase) []string {
	found := make(map[string]struct{})

	for _, rawName := range exerciseNames {
		_, mapped := Normalize(rawName)
		for _, group := range mapped {
			found[group] = struct{}{}
		}

		name := strings.ToLower(rawName)

		if kb != nil {
			for group, info := range kb.MuscleGroups.Categorization {
				if matchesCategory(name, info) {
					found[group] = struct{}{}
				}
				// Nested sub-groups attribute both the parent and the
				// specific group so callers can match on either.
				for subGroup, subInfo := range info.Subgroups {
					if matchesCategory(name, subInfo) {
						found[group] = struct{}{}
						found[subGroup] = struct{}{}
					}
				}
			}
		}

		for _, keyword := range gluteKeywords {
			if strings.Contains(name, keyword) {
				found["glutes"] = struct{}{}
				break
			}
		}
		if strings.Contains(name, "calf") {
			found["calves"] = struct{}{}
		}
		for _, keyword := range absKeywords {
			if strings.Contains(name, keyword) {
				found["abs"] = struct{}{}
				break
			}
		}
	}

	groups := make([]string, 0, len(found))
	for group := range found {
		groups = append(groups, group)
	}
	slices.Sort(groups)
	return groups
}

// matchesCategory reports whether the exercise name matches any of the
// category's primary exercises, as a substring in either direction.
func matchesCategory(lowerName string, category Category) bool {
	for _, exercise := range category.PrimaryExercises {
		candidate := strings.ToLower(exercise)
		if strings.Contains(lowerName, candidate) || strings.Contains(candidate, lowerName) {
			return true
		}
	}
	return false
}

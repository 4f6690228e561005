package muscles

import (
	"encoding/json"
	"fmt"
	"os"
)

// KnowledgeBase is an optional secondary source of muscle-group attribution
// loaded from a JSON file. Categories may nest sub-groups, e.g. arms holds
// biceps and triceps.
type KnowledgeBase struct {
	MuscleGroups struct {
		Categorization map[string]Category `json:"categorization"`
	} `json:"muscle_groups"`
}

// Category lists the exercises that primarily work a muscle group, with
// optional nested sub-groups.
type Category struct {
	PrimaryExercises []string
	Subgroups        map[string]Category
}

// UnmarshalJSON accepts both flat categories ({"primary_exercises": [...]})
// and nested ones where sibling keys are sub-group objects.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode category: %w", err)
	}

	for key, value := range raw {
		if key == "primary_exercises" {
			if err := json.Unmarshal(value, &c.PrimaryExercises); err != nil {
				return fmt.Errorf("decode primary_exercises: %w", err)
			}
			continue
		}

		var sub Category
		if err := json.Unmarshal(value, &sub); err != nil {
			// Non-object siblings (descriptions etc.) are not sub-groups.
			continue
		}
		if len(sub.PrimaryExercises) == 0 && len(sub.Subgroups) == 0 {
			continue
		}
		if c.Subgroups == nil {
			c.Subgroups = make(map[string]Category)
		}
		c.Subgroups[key] = sub
	}

	return nil
}

// LoadKnowledgeBase reads the knowledge base from path. A missing or
// malformed file yields a nil knowledge base, not an error; the extractor
// works without it.
func LoadKnowledgeBase(path string) *KnowledgeBase {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var kb KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil
	}
	return &kb
}

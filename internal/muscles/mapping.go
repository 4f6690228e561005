// Package muscles maps raw exercise names to canonical names and muscle
// groups. The mapping table is static configuration embedded at build time;
// it is necessarily incomplete, so lookups degrade to identity rather than
// failing.
package muscles

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "embed"
)

//go:embed mapping.json
var mappingJSON []byte

type mappingEntry struct {
	Normalized   string   `json:"normalized"`
	MuscleGroups []string `json:"muscle_groups"`
	Variations   []string `json:"variations"`
}

type mappingTable struct {
	Mappings map[string]mappingEntry `json:"mappings"`
}

//nolint:gochecknoglobals // the table is read-only after loadMapping.
var (
	mappingOnce sync.Once
	mapping     mappingTable
)

func loadMapping() mappingTable {
	mappingOnce.Do(func() {
		if err := json.Unmarshal(mappingJSON, &mapping); err != nil {
			// The table ships inside the binary, so a decode failure is a
			// build defect rather than a runtime condition.
			panic(fmt.Sprintf("muscles: decode embedded mapping: %v", err))
		}
	})
	return mapping
}

// Normalize maps a raw exercise name to its canonical name and muscle groups.
//
// It tries an exact lowercased match first and then scans each entry's
// variations for an exact or substring match. Unknown names return the
// original spelling and no groups; absence of a mapping is a valid, common
// outcome.
func Normalize(rawName string) (string, []string) {
	name := strings.ToLower(strings.TrimSpace(rawName))
	table := loadMapping()

	if entry, ok := table.Mappings[name]; ok {
		return entry.Normalized, entry.MuscleGroups
	}

	for _, entry := range table.Mappings {
		for _, variation := range entry.Variations {
			v := strings.ToLower(variation)
			if v == name || strings.Contains(name, v) {
				return entry.Normalized, entry.MuscleGroups
			}
		}
	}

	return rawName, nil
}

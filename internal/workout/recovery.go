package workout

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/petrikoro/liftlog/internal/muscles"
)

// The canonical muscle groups a recovery report speaks about. Both the
// general group (arms) and its specific halves (biceps, triceps) are
// tracked because exercise mappings attribute to either.
//
//nolint:gochecknoglobals // static group list.
var recoveryGroups = []string{
	"chest", "back", "shoulders",
	"arms", "biceps", "triceps",
	"legs", "glutes", "calves",
	"core", "abs",
}

// RecoveryStatus buckets every canonical muscle group by how recently it was
// trained. Only the 20 newest entries are examined and anything older than
// 14 days is ignored, so a group trained 15 days ago reads the same as one
// never trained at all: neglected.
//
// Buckets: 0-1 days too soon, 2-3 optimal, 4-6 ready, 7 or more (or never)
// neglected. When arms would be reported neglected alongside biceps or
// triceps, the general group is dropped in favour of the specific ones.
func RecoveryStatus(recent []Entry, kb *muscles.KnowledgeBase, now time.Time) RecoveryReport {
	lastTrained := make(map[string]int)

	entries := recent
	if len(entries) > 20 {
		entries = entries[:20]
	}
	for _, entry := range entries {
		entryDate, ok := ParseEntryDate(entry.Date, now)
		if !ok {
			continue
		}
		daysAgo := DaysBetween(entryDate, now)
		if daysAgo > 14 {
			continue
		}

		parsed := Parse(entry.Text)
		names := make([]string, 0, len(parsed.Exercises))
		for _, ex := range parsed.Exercises {
			names = append(names, ex.Name)
		}

		for _, group := range muscles.Extract(names, kb) {
			if prev, seen := lastTrained[group]; !seen || daysAgo < prev {
				lastTrained[group] = daysAgo
			}
		}
	}

	var report RecoveryReport
	for _, group := range recoveryGroups {
		days, trained := lastTrained[group]
		switch {
		case !trained:
			report.Neglected = append(report.Neglected, group)
		case days <= 1:
			report.TooSoon = append(report.TooSoon, group)
		case days <= 3:
			report.Optimal = append(report.Optimal, group)
		case days <= 6:
			report.Ready = append(report.Ready, group)
		default:
			report.Neglected = append(report.Neglected, group)
		}
	}

	if slices.Contains(report.Neglected, "biceps") || slices.Contains(report.Neglected, "triceps") {
		report.Neglected = slices.DeleteFunc(report.Neglected, func(g string) bool {
			return g == "arms"
		})
	}

	report.Status = recoveryMessage(report, lastTrained)
	return report
}

func recoveryMessage(report RecoveryReport, lastTrained map[string]int) string {
	var parts []string
	if len(report.Neglected) > 0 {
		top := report.Neglected
		if len(top) > 3 {
			top = top[:3]
		}
		parts = append(parts, "Neglected: "+strings.Join(top, ", "))
	}
	if len(report.Ready) > 0 {
		labelled := make([]string, len(report.Ready))
		for i, group := range report.Ready {
			labelled[i] = fmt.Sprintf("%s (%d days ago)", group, lastTrained[group])
		}
		parts = append(parts, "Ready to train: "+strings.Join(labelled, ", "))
	}
	if len(parts) == 0 {
		return "No recent workout data"
	}
	return strings.Join(parts, " • ")
}

package workout

import "time"

// Entry dates are tried against these layouts in order and the first
// plausible hit wins, so ambiguous strings resolve greedily: "1-2-06" is
// January 2nd 2006, never anything else. The order is load-bearing.
//
//nolint:gochecknoglobals // static layout table.
var dateLayouts = []string{
	"1/2/06 3:04 PM",
	"1/2/2006 3:04 PM",
	"1/2/06 15:04",
	"1/2/2006 15:04",
	"1/2/06",
	"2006-01-02",
	"1-2-06",
	"1/2/2006",
}

// ParseEntryDate interprets a raw entry date against the known layouts.
// A parse that lands implausibly far in the future (a year beyond next year,
// or two or more days ahead of now) is treated as a misread and the next
// layout is tried. Returns ok == false when nothing plausible matches.
func ParseEntryDate(raw string, now time.Time) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if t.Year() > now.Year()+1 {
			continue
		}
		if daysAhead := int(t.Sub(now).Hours() / 24); daysAhead > 1 {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

// DaysBetween returns whole days from then to now, truncated toward zero.
// Negative when then is in the future.
func DaysBetween(then, now time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}

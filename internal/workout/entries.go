package workout

import (
	"regexp"
	"strings"
)

// Markdown logs interleave date header lines with free-form exercise lines.
// A line matching any of these opens a new entry; everything until the next
// date line belongs to it.
//
//nolint:gochecknoglobals // compiled once.
var (
	dateLinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\d{1,2}/\d{1,2}/\d{2,4}\s+\d{1,2}:\d{2}\s+(AM|PM)`),
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}\s+\d{1,2}:\d{2}`),
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`),
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}`),
		regexp.MustCompile(`(?i)^(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\s+\d{1,2}/\d{1,2}/\d{2,4}`),
		regexp.MustCompile(`(?i)^(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\s+\d{1,2}/\d{1,2}`),
	}
	dateWithTime = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]?\d{0,4})\s+(\d{1,2}:\d{2}(?:\s+(AM|PM))?)`)
	dateISO      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dateOnly     = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]?\d{0,4})`)
)

// ParseEntries splits a markdown workout log into dated entries, newest
// first as written. Weekday prefixes on date lines are dropped; a trailing
// time of day is kept as part of the stored date string.
func ParseEntries(content string) []Entry {
	var (
		entries     []Entry
		currentDate string
		currentText []string
	)

	flush := func() {
		if currentDate == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(currentText, "\n"))
		if text != "" {
			entries = append(entries, Entry{Date: currentDate, Text: text})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)

		if stripped == "" && currentDate == "" {
			continue
		}
		if stripped == "Workout" {
			continue
		}

		if isDateLine(stripped) {
			flush()
			currentDate = extractDate(stripped)
			currentText = nil
			continue
		}

		if currentDate != "" && stripped != "" {
			currentText = append(currentText, strings.TrimRight(line, " \t\r"))
		}
	}
	flush()

	return entries
}

func isDateLine(stripped string) bool {
	for _, p := range dateLinePatterns {
		if p.MatchString(stripped) {
			return true
		}
	}
	return false
}

func extractDate(stripped string) string {
	// ISO dates must be taken whole; the generic patterns would clip the
	// century off the year.
	if m := dateISO.FindString(stripped); m != "" {
		return m
	}
	if m := dateWithTime.FindStringSubmatch(stripped); m != nil {
		return m[1] + " " + m[2]
	}
	if m := dateOnly.FindStringSubmatch(stripped); m != nil {
		return m[1]
	}
	return stripped
}

package workout

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary.
	"encoding/hex"
	"strings"
)

// Key returns the stable identifier of a workout entry, derived from its
// date and the first 100 characters of its text. Rewriting the tail of a
// long entry keeps the key stable, which is what theme caching and the
// search index want.
func Key(date, text string) string {
	if len(text) > 100 {
		text = text[:100]
	}
	sum := md5.Sum([]byte(date + ":" + text)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// LogFingerprint hashes the whole workout log so the search index can tell
// whether its snapshot is stale. Any edit, insert or delete changes it.
func LogFingerprint(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Date)
		b.WriteByte('\n')
		b.WriteString(e.Text)
		b.WriteString("\n\n")
	}
	sum := md5.Sum([]byte(b.String())) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

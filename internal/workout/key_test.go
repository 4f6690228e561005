package workout_test

import (
	"strings"
	"testing"

	"github.com/petrikoro/liftlog/internal/workout"
)

func TestKeyStableForLongTextTails(t *testing.T) {
	long := strings.Repeat("bench press - 135 * 5\n", 20)

	a := workout.Key("3/12/26", long)
	b := workout.Key("3/12/26", long+"\nextra set added later")

	if a != b {
		t.Error("key changed when only text beyond 100 characters changed")
	}
	if a == workout.Key("3/13/26", long) {
		t.Error("key identical across different dates")
	}
	if a == workout.Key("3/12/26", "squat - 225 * 5") {
		t.Error("key identical across different leading text")
	}
}

func TestLogFingerprintChangesOnAnyEdit(t *testing.T) {
	entries := []workout.Entry{
		{Date: "3/12/26", Text: "bench press - 135 * 5"},
		{Date: "3/10/26", Text: "squat - 225 * 5"},
	}

	base := workout.LogFingerprint(entries)

	edited := []workout.Entry{entries[0], {Date: "3/10/26", Text: "squat - 230 * 5"}}
	if base == workout.LogFingerprint(edited) {
		t.Error("fingerprint unchanged after an edit")
	}
	if base == workout.LogFingerprint(entries[:1]) {
		t.Error("fingerprint unchanged after a delete")
	}
	if base != workout.LogFingerprint(entries) {
		t.Error("fingerprint not deterministic")
	}
}

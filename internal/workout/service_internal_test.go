package workout

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/petrikoro/liftlog/internal/errors"
	"github.com/petrikoro/liftlog/internal/searchindex"
	"github.com/petrikoro/liftlog/internal/sqlite"
	"github.com/petrikoro/liftlog/internal/testhelpers"
)

type scriptedCompleter struct {
	calls atomic.Int64
	reply string
}

func (c *scriptedCompleter) Complete(context.Context, string, int64) (string, error) {
	c.calls.Add(1)
	return c.reply, nil
}

type serviceFixture struct {
	svc       *Service
	store     *searchindex.SQLiteStore
	completer *scriptedCompleter
	userID    int64
	clock     *time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	result, err := db.ReadWrite.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ('tester', 'x')`)
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
	userID, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("test user id: %v", err)
	}

	completer := &scriptedCompleter{reply: "leg day:\nupper body:"}
	store := searchindex.NewSQLiteStore(db)
	maintainer := searchindex.NewMaintainer(store, completer, logger)
	t.Cleanup(maintainer.Wait)

	svc := NewService(db, maintainer, completer, nil, logger)
	clock := time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return clock }

	return &serviceFixture{svc: svc, store: store, completer: completer, userID: userID, clock: &clock}
}

func (f *serviceFixture) advanceDays(days int) {
	*f.clock = f.clock.AddDate(0, 0, days)
}

func TestServiceLogAndWorkouts(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Log(ctx, f.userID, "bench press - 135 * 5"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	f.advanceDays(2)
	if _, err := f.svc.Log(ctx, f.userID, "bench press - 140 * 5"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	views, err := f.svc.Workouts(ctx, f.userID)
	if err != nil {
		t.Fatalf("Workouts: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d workouts, want 2", len(views))
	}
	if views[0].Text != "bench press - 140 * 5" {
		t.Errorf("newest first violated: %q", views[0].Text)
	}
	if !views[0].HasPR {
		t.Error("heavier follow-up workout not flagged as PR")
	}
	if views[1].HasPR {
		t.Error("first ever workout flagged as PR with no history")
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	entry, err := f.svc.Log(ctx, f.userID, "squat - 225 * 5")
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	updated, err := f.svc.Update(ctx, f.userID, entry.ID, "squat - 230 * 5")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Text != "squat - 230 * 5" || updated.Date != entry.Date {
		t.Errorf("updated entry = %+v, want new text and original date", updated)
	}

	if err := f.svc.Delete(ctx, f.userID, entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	views, err := f.svc.Workouts(ctx, f.userID)
	if err != nil {
		t.Fatalf("Workouts: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("got %d workouts after delete, want 0", len(views))
	}

	if _, err := f.svc.Update(ctx, f.userID, entry.ID, "squat - 235 * 5"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update of deleted workout = %v, want ErrNotFound", err)
	}
}

func TestServiceSuggestions(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Log(ctx, f.userID, "bench press - 135 * 9"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	f.advanceDays(3)

	suggestions, err := f.svc.Suggestions(ctx, f.userID, "bench press - 135 * 9\nnew exercise - 50 * 5")
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}

	bench := suggestions[0]
	if bench.Weight != 135 || bench.Reps != 10 || bench.Reason != ReasonAddRep {
		t.Errorf("bench suggestion = %+v, want 135 x 10 (%s)", bench, ReasonAddRep)
	}
	if !bench.HasHistory || bench.DaysSince != 3 {
		t.Errorf("bench history = %+v, want HasHistory with 3 days since", bench)
	}

	fresh := suggestions[1]
	if fresh.HasHistory || fresh.Reason != ReasonNoHistory {
		t.Errorf("no-history suggestion = %+v, want echo with %q", fresh, ReasonNoHistory)
	}
	if fresh.Weight != 50 || fresh.Reps != 5 {
		t.Errorf("no-history suggestion = %+v, want current values echoed", fresh)
	}
}

func TestServiceApplyProgression(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Log(ctx, f.userID, "bench press - 135 * 9"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	f.advanceDays(3)

	got, err := f.svc.ApplyProgression(ctx, f.userID, "bench press - 135 * 9")
	if err != nil {
		t.Fatalf("ApplyProgression: %v", err)
	}
	if got != "bench press - 135 * 10" {
		t.Errorf("ApplyProgression = %q, want bench press - 135 * 10", got)
	}

	// The rewritten text must parse back through the same grammar.
	parsed := Parse(got)
	if parsed.ExerciseCount != 1 {
		t.Errorf("rewritten workout failed to parse: %+v", parsed)
	}
}

func TestServiceInsight(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	f.completer.reply = "Keep crushing it"

	if _, err := f.svc.Log(ctx, f.userID, "bench press - 135 * 5"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	f.advanceDays(2)
	if _, err := f.svc.Log(ctx, f.userID, "bench press - 145 * 3"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	insight, ach, err := f.svc.Insight(ctx, f.userID, "bench press - 145 * 3")
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if !ach.HasPR {
		t.Error("heavier bench not detected as PR")
	}
	if !strings.HasPrefix(insight, "PR reached!") {
		t.Errorf("insight = %q, want PR message", insight)
	}
	if !strings.Contains(insight, "Keep crushing it!") {
		t.Errorf("insight = %q, want model encouragement appended", insight)
	}
}

func TestServiceThemeCaches(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	f.completer.reply = "Leg day"

	theme, cached, err := f.svc.Theme(ctx, f.userID, "3/12/26", "squat - 225 * 5")
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != "Leg day" || cached {
		t.Errorf("first Theme = %q cached=%v, want fresh Leg day", theme, cached)
	}

	calls := f.completer.calls.Load()
	theme, cached, err = f.svc.Theme(ctx, f.userID, "3/12/26", "squat - 225 * 5")
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != "Leg day" || !cached {
		t.Errorf("second Theme = %q cached=%v, want cached Leg day", theme, cached)
	}
	if f.completer.calls.Load() != calls {
		t.Error("cached theme still called the model")
	}
}

func TestServiceSearchPresetUsesIndex(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Log(ctx, f.userID, "squat - 225 * 5"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	f.advanceDays(1)
	if _, err := f.svc.Log(ctx, f.userID, "bench press - 135 * 5"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	positions, err := f.svc.Search(ctx, f.userID, searchindex.CategoryChest)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Newest first: the bench workout is position 0.
	if len(positions) != 1 || positions[0] != 0 {
		t.Errorf("chest search = %v, want [0]", positions)
	}
}

func TestServiceDeleteRemovesFromIndex(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	entry, err := f.svc.Log(ctx, f.userID, "bench press - 135 * 5")
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if _, err := f.svc.Search(ctx, f.userID, searchindex.CategoryChest); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if err := f.svc.Delete(ctx, f.userID, entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	idx, ok, err := f.store.Load(ctx, f.userID)
	if err != nil || !ok {
		t.Fatalf("Load index: ok=%v err=%v", ok, err)
	}
	key := Key(entry.Date, entry.Text)
	for _, stored := range idx.Categories[searchindex.CategoryChest] {
		if stored == key {
			t.Error("deleted workout still in chest category")
		}
	}
}

func TestServiceImport(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	content := "3/12/26\nbench press - 135 * 5\n\n3/10/26\nsquat - 225 * 5\n"
	count, err := f.svc.Import(ctx, f.userID, content)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if count != 2 {
		t.Fatalf("imported %d entries, want 2", count)
	}

	views, err := f.svc.Workouts(ctx, f.userID)
	if err != nil {
		t.Fatalf("Workouts: %v", err)
	}
	if len(views) != 2 || views[0].Date != "3/12/26" {
		t.Errorf("Workouts after import = %+v, want newest (3/12/26) first", views)
	}
}

func TestServiceLastWorkout(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Log(ctx, f.userID, "squat - 225 * 5"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	f.advanceDays(10)
	if _, err := f.svc.Log(ctx, f.userID, "bench press - 135 * 5"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	// The squat session is 10 days old, past the neglect threshold.
	got, err := f.svc.LastWorkout(ctx, f.userID)
	if err != nil {
		t.Fatalf("LastWorkout: %v", err)
	}
	if got != "squat - 225 * 5" {
		t.Errorf("LastWorkout = %q, want the neglected squat session", got)
	}
}

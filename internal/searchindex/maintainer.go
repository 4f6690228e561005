package searchindex

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/petrikoro/liftlog/internal/ai"
	"github.com/petrikoro/liftlog/internal/errors"
	"golang.org/x/sync/singleflight"
)

const (
	maxPromptWorkouts = 100
	maxSummaryChars   = 200
	aiMaxTokens       = 150
	rebuildTimeout    = 60 * time.Second
)

//nolint:gochecknoglobals // compiled once.
var (
	legDayReply = regexp.MustCompile(`(?i)leg day[^:]*:\s*([0-9,\s]+)`)
	upperReply  = regexp.MustCompile(`(?i)upper body[^:]*:\s*([0-9,\s]+)`)
)

// Store persists one index per user.
type Store interface {
	Load(ctx context.Context, userID int64) (Index, bool, error)
	Save(ctx context.Context, userID int64, idx Index) error
}

// Maintainer keeps per-user search indexes consistent with the workout log.
type Maintainer struct {
	store  Store
	ai     ai.Completer
	logger *slog.Logger

	// Concurrent stale reads must trigger at most one AI rebuild per log
	// state. Keyed by user and fingerprint.
	group singleflight.Group
	wg    sync.WaitGroup
}

func NewMaintainer(store Store, completer ai.Completer, logger *slog.Logger) *Maintainer {
	return &Maintainer{store: store, ai: completer, logger: logger}
}

// Ensure returns an index consistent enough to serve a search. A missing
// index is built synchronously. A stale one is returned as-is while an
// asynchronous rebuild refreshes the AI categories; the rule-based ones are
// already correct because every write path updates them incrementally.
func (m *Maintainer) Ensure(ctx context.Context, userID int64, docs []Doc, fingerprint string) (Index, error) {
	idx, ok, err := m.store.Load(ctx, userID)
	if err != nil {
		return Index{}, errors.Wrap(err, "load search index", slog.Int64("user_id", userID))
	}

	if !ok || idx.Metadata.WorkoutHash == "" {
		built := m.buildFull(ctx, docs, fingerprint)
		if err := m.store.Save(ctx, userID, built); err != nil {
			return Index{}, errors.Wrap(err, "save search index", slog.Int64("user_id", userID))
		}
		return built, nil
	}

	if idx.Metadata.WorkoutHash != fingerprint {
		m.rebuildAIAsync(userID, docs, fingerprint)
	}
	return idx, nil
}

// Update applies one workout change to the rule-based categories. Without an
// existing index there is nothing to patch; the next Ensure builds from
// scratch. The AI categories are left alone, which makes them stale until
// the next Ensure notices the fingerprint mismatch.
func (m *Maintainer) Update(ctx context.Context, userID int64, doc Doc, op Op, fingerprint string) error {
	idx, ok, err := m.store.Load(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "load search index", slog.Int64("user_id", userID))
	}
	if !ok || idx.Metadata.WorkoutHash == "" {
		return nil
	}
	if idx.Categories == nil {
		idx.Categories = make(map[string][]string)
	}

	for _, category := range RuleCategories {
		idx.Categories[category] = slices.DeleteFunc(idx.Categories[category], func(k string) bool {
			return k == doc.Key
		})
	}

	if op == OpAdd || op == OpUpdate {
		for _, category := range RuleCategories {
			if ruleMembership(category, doc) && !slices.Contains(idx.Categories[category], doc.Key) {
				idx.Categories[category] = append(idx.Categories[category], doc.Key)
			}
		}
	}

	idx.Metadata.WorkoutHash = fingerprint
	idx.Metadata.LastUpdated = time.Now()

	if err := m.store.Save(ctx, userID, idx); err != nil {
		return errors.Wrap(err, "save search index", slog.Int64("user_id", userID))
	}
	return nil
}

// Wait blocks until all background rebuilds have finished. For shutdown and
// tests.
func (m *Maintainer) Wait() {
	m.wg.Wait()
}

func (m *Maintainer) buildFull(ctx context.Context, docs []Doc, fingerprint string) Index {
	categories := make(map[string][]string)
	for _, category := range RuleCategories {
		var keys []string
		for _, doc := range docs {
			if ruleMembership(category, doc) {
				keys = append(keys, doc.Key)
			}
		}
		if len(keys) > maxCategoryEntries {
			keys = keys[:maxCategoryEntries]
		}
		categories[category] = keys
	}

	aiCats, err := m.aiCategories(ctx, docs)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "AI categorization failed, leaving AI categories empty",
			errors.SlogError(err))
		aiCats = map[string][]string{CategoryLegDay: nil, CategoryUpper: nil}
	}
	for category, keys := range aiCats {
		categories[category] = keys
	}

	return Index{
		Categories: categories,
		Metadata: Metadata{
			WorkoutHash:  fingerprint,
			WorkoutCount: len(docs),
			LastUpdated:  time.Now(),
		},
	}
}

// rebuildAIAsync refreshes the AI categories in the background. Rebuilds for
// the same user and log state collapse into one flight.
func (m *Maintainer) rebuildAIAsync(userID int64, docs []Doc, fingerprint string) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		key := fmt.Sprintf("%d:%s", userID, fingerprint)
		_, err, _ := m.group.Do(key, func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), rebuildTimeout)
			defer cancel()
			return nil, m.rebuildAI(ctx, userID, docs, fingerprint)
		})
		if err != nil {
			m.logger.LogAttrs(context.Background(), slog.LevelWarn, "background AI index rebuild failed",
				slog.Int64("user_id", userID), errors.SlogError(err))
		}
	}()
}

func (m *Maintainer) rebuildAI(ctx context.Context, userID int64, docs []Doc, fingerprint string) error {
	aiCats, err := m.aiCategories(ctx, docs)
	if err != nil {
		return err
	}

	idx, ok, err := m.store.Load(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "load search index")
	}
	if !ok {
		return nil
	}
	if idx.Categories == nil {
		idx.Categories = make(map[string][]string)
	}
	for category, keys := range aiCats {
		idx.Categories[category] = keys
	}
	idx.Metadata.WorkoutHash = fingerprint
	idx.Metadata.WorkoutCount = len(docs)
	idx.Metadata.LastUpdated = time.Now()

	if err := m.store.Save(ctx, userID, idx); err != nil {
		return errors.Wrap(err, "save search index")
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "AI search index rebuilt",
		slog.Int64("user_id", userID), slog.Int("workouts", len(docs)))
	return nil
}

// aiCategories asks the model to assign workouts to the AI-backed categories
// and parses its reply back into workout keys.
func (m *Maintainer) aiCategories(ctx context.Context, docs []Doc) (map[string][]string, error) {
	if len(docs) == 0 {
		return map[string][]string{CategoryLegDay: nil, CategoryUpper: nil}, nil
	}

	reply, err := m.ai.Complete(ctx, buildPrompt(docs), aiMaxTokens)
	if err != nil {
		return nil, errors.Wrap(err, "categorize workouts")
	}

	return map[string][]string{
		CategoryLegDay: parseIndexReply(legDayReply, reply, docs),
		CategoryUpper:  parseIndexReply(upperReply, reply, docs),
	}, nil
}

func buildPrompt(docs []Doc) string {
	if len(docs) > maxPromptWorkouts {
		docs = docs[:maxPromptWorkouts]
	}

	var lines []string
	for i, doc := range docs {
		summary := doc.Summary
		if len(summary) > maxSummaryChars {
			summary = summary[:maxSummaryChars]
		}
		var flags []string
		if doc.HasPR {
			flags = append(flags, "PR")
		}
		if doc.HasStrengthIncrease {
			flags = append(flags, "Strength")
		}
		suffix := ""
		if len(flags) > 0 {
			suffix = " " + strings.Join(flags, " ")
		}
		lines = append(lines, fmt.Sprintf("[%d] %s | %s%s | %s", i, doc.Date, doc.Theme, suffix, summary))
	}

	return fmt.Sprintf(`Analyze this workout history and find workouts matching these queries.

Workout history (format: [index] date | theme | workout text):
%s

For each query below, return ONLY the workout indices (numbers in brackets) that match:
1. "leg day" means workouts focused on leg exercises (squats, lunges, leg press, etc.)
2. "upper body" means workouts focused on upper body (chest, back, shoulders, arms)

Return your answer in this EXACT format (one line per query):
leg day: 1, 5, 9
upper body: 2, 4, 8

Return at most 20 indices per query, prioritizing most relevant matches. Be precise and only include workouts that clearly match the category.`, strings.Join(lines, "\n"))
}

// parseIndexReply extracts the index list after the category label and maps
// each in-range index back to its workout key. Anything unparseable is
// dropped rather than failing the rebuild.
func parseIndexReply(pattern *regexp.Regexp, reply string, docs []Doc) []string {
	match := pattern.FindStringSubmatch(reply)
	if match == nil {
		return nil
	}

	var keys []string
	for _, token := range strings.Split(match[1], ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || idx < 0 || idx >= len(docs) {
			continue
		}
		keys = append(keys, docs[idx].Key)
		if len(keys) == maxCategoryEntries {
			break
		}
	}
	return keys
}

package workout

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/petrikoro/liftlog/internal/ai"
	"github.com/petrikoro/liftlog/internal/errors"
	"github.com/petrikoro/liftlog/internal/muscles"
	"github.com/petrikoro/liftlog/internal/searchindex"
	"github.com/petrikoro/liftlog/internal/sqlite"
)

// Query windows (in workouts) and prompt limits.
const (
	listWindow       = 100
	historyWindow    = 30
	recoveryWindow   = 20
	lastWorkoutScan  = 50
	themePromptChars = 1000
	themeMaxTokens   = 20
	insightMaxTokens = 20
	searchMaxTokens  = 100
)

// logDateLayout matches how entry dates are written when logging through
// the API: zero-padded date, unpadded 12-hour clock.
const logDateLayout = "01/02/06 3:04 PM"

//nolint:gochecknoglobals // compiled once.
var anyNumber = regexp.MustCompile(`\b(\d+)\b`)

// Service owns the workout log and everything derived from it.
type Service struct {
	repo   *repository
	index  *searchindex.Maintainer
	ai     ai.Completer
	kb     *muscles.KnowledgeBase
	logger *slog.Logger
	now    func() time.Time
}

func NewService(db *sqlite.Database, index *searchindex.Maintainer, completer ai.Completer, kb *muscles.KnowledgeBase, logger *slog.Logger) *Service {
	return &Service{
		repo:   newRepository(db, logger),
		index:  index,
		ai:     completer,
		kb:     kb,
		logger: logger,
		now:    time.Now,
	}
}

// Workouts lists the user's workouts newest first, each annotated with its
// cached theme and the achievements it scored against the history strictly
// before it.
func (s *Service) Workouts(ctx context.Context, userID int64) ([]WorkoutView, error) {
	entries, err := s.repo.list(ctx, userID, listWindow)
	if err != nil {
		return nil, err
	}
	themes, err := s.repo.themes(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]WorkoutView, len(entries))
	for i, entry := range entries {
		ach := DetectAchievements(Parse(entry.Text), HistoryBefore(entries, entry, now))
		views[i] = WorkoutView{
			Entry:               entry,
			Theme:               themes[Key(entry.Date, entry.Text)],
			HasPR:               ach.HasPR,
			HasStrengthIncrease: ach.HasStrengthIncrease,
		}
	}
	return views, nil
}

// Log records a new workout dated now and patches the search index.
func (s *Service) Log(ctx context.Context, userID int64, text string) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, errors.New("workout text required")
	}

	date := s.now().Format(logDateLayout)
	entry, err := s.repo.add(ctx, userID, date, text)
	if err != nil {
		return Entry{}, err
	}

	s.patchIndex(ctx, userID, entry, searchindex.OpAdd)
	return entry, nil
}

// Update rewrites a workout's text and patches the search index.
func (s *Service) Update(ctx context.Context, userID, id int64, text string) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, errors.New("workout text required")
	}

	entry, err := s.repo.update(ctx, userID, id, text)
	if err != nil {
		return Entry{}, err
	}

	s.patchIndex(ctx, userID, entry, searchindex.OpUpdate)
	return entry, nil
}

// Delete removes a workout and patches the search index.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	entry, err := s.repo.delete(ctx, userID, id)
	if err != nil {
		return err
	}

	s.patchIndex(ctx, userID, entry, searchindex.OpRemove)
	return nil
}

// Import splits a markdown workout log into entries and stores them all.
// The markdown convention is newest first; entries are inserted oldest
// first so that listing by descending id preserves the order.
func (s *Service) Import(ctx context.Context, userID int64, content string) (int, error) {
	entries := ParseEntries(content)
	for i := len(entries) - 1; i >= 0; i-- {
		if _, err := s.repo.add(ctx, userID, entries[i].Date, entries[i].Text); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

// Insight summarises what a just-logged workout achieved, with a short
// model-generated encouragement. The model failing never fails the insight;
// a canned phrase takes its place.
func (s *Service) Insight(ctx context.Context, userID int64, text string) (string, Achievements, error) {
	parsed := Parse(text)
	if parsed.ExerciseCount == 0 {
		return "Workout logged!", Achievements{}, nil
	}

	entries, err := s.repo.list(ctx, userID, historyWindow+1)
	if err != nil {
		return "", Achievements{}, err
	}
	// The newest stored entry is the workout being reported on; it must not
	// count as its own history.
	if len(entries) > 0 {
		entries = entries[1:]
	}

	history := foldHistory(entries)
	ach := DetectAchievements(parsed, history)
	fact := insightFact(parsed, ach, history)

	encouragement := s.encouragement(ctx, fact)
	return fact + ". " + encouragement + "!", ach, nil
}

func (s *Service) encouragement(ctx context.Context, fact string) string {
	prompt := fmt.Sprintf(`Generate a brief, encouraging phrase (3-5 words) for this workout achievement:

%s

Examples: "You're crushing it!", "Amazing work!", "Keep it up!", "Nice job!", "Well done!"

Generate a fresh, natural encouragement phrase (3-5 words only, no punctuation needed):`, fact)

	reply, err := s.ai.Complete(ctx, prompt, insightMaxTokens)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "encouragement generation failed", errors.SlogError(err))
		return "Great job"
	}
	return strings.TrimRight(reply, ".,!")
}

// Recovery reports muscle-group recovery over the recent training window.
func (s *Service) Recovery(ctx context.Context, userID int64) (RecoveryReport, error) {
	entries, err := s.repo.list(ctx, userID, recoveryWindow)
	if err != nil {
		return RecoveryReport{}, err
	}
	return RecoveryStatus(entries, s.kb, s.now()), nil
}

// Suggestions computes a progression target for every exercise in the given
// workout text from its most recent recorded performance.
func (s *Service) Suggestions(ctx context.Context, userID int64, text string) ([]ExerciseSuggestion, error) {
	parsed := Parse(text)
	if parsed.ExerciseCount == 0 {
		return nil, nil
	}

	entries, err := s.repo.list(ctx, userID, historyWindow)
	if err != nil {
		return nil, err
	}
	lastDone := LastPerformances(entries, s.now())

	suggestions := make([]ExerciseSuggestion, 0, parsed.ExerciseCount)
	for _, ex := range parsed.Exercises {
		es := ExerciseSuggestion{
			Exercise:      ex.Name,
			CurrentWeight: ex.MaxWeight,
			CurrentReps:   ex.FirstReps,
		}
		if last, ok := lastDone[historyKey(ex.Name)]; ok {
			sug := SuggestProgression(float64(last.Weight), last.Reps, last.DaysAgo)
			es.Weight = sug.Weight
			es.Reps = sug.Reps
			es.Reason = sug.Reason
			es.LastWeight = float64(last.Weight)
			es.LastReps = last.Reps
			es.DaysSince = last.DaysAgo
			es.HasHistory = true
		} else {
			es.Weight = float64(ex.MaxWeight)
			es.Reps = ex.FirstReps
			es.Reason = ReasonNoHistory
		}
		suggestions = append(suggestions, es)
	}
	return suggestions, nil
}

// ApplyProgression rewrites a workout text with progression applied to each
// weighted exercise. The line grammar only carries whole-pound weights, so
// fractional suggestions are truncated. Exercises without usable values are
// dropped from the result.
func (s *Service) ApplyProgression(ctx context.Context, userID int64, text string) (string, error) {
	parsed := Parse(text)
	if parsed.ExerciseCount == 0 {
		return "", errors.New("could not parse workout")
	}

	entries, err := s.repo.list(ctx, userID, historyWindow)
	if err != nil {
		return "", err
	}
	lastDone := LastPerformances(entries, s.now())

	var lines []string
	for _, ex := range parsed.Exercises {
		weight, reps := ex.MaxWeight, ex.FirstReps
		if last, ok := lastDone[historyKey(ex.Name)]; ok && last.Weight > 0 {
			sug := SuggestProgression(float64(last.Weight), last.Reps, last.DaysAgo)
			weight, reps = int(sug.Weight), sug.Reps
		}
		if weight > 0 && reps > 0 {
			lines = append(lines, fmt.Sprintf("%s - %d * %d", ex.Name, weight, reps))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Theme returns the cached theme for a workout, generating and caching one
// when absent. The second return reports whether it came from the cache.
func (s *Service) Theme(ctx context.Context, userID int64, date, text string) (string, bool, error) {
	key := Key(date, text)
	if theme, err := s.repo.theme(ctx, userID, key); err == nil {
		return theme, true, nil
	} else if !errors.Is(err, ErrNotFound) {
		return "", false, err
	}

	snippet := text
	if len(snippet) > themePromptChars {
		snippet = snippet[:themePromptChars]
	}
	prompt := fmt.Sprintf(`Read this workout entry and write a very short theme (5 words or less) that captures what this workout was about.

Workout:
%s

Write a very concise theme, just the workout type/focus. Examples:
- "Upper body workout"
- "Leg day"
- "Chest and tricep"
- "Full body"
- "Shoulder and bicep"

Keep it to 5 words maximum. Just the workout type, nothing else.

Theme:`, snippet)

	theme, err := s.ai.Complete(ctx, prompt, themeMaxTokens)
	if err != nil {
		return "", false, errors.Wrap(err, "generate theme")
	}
	if err := s.repo.saveTheme(ctx, userID, key, theme); err != nil {
		return "", false, err
	}
	return theme, false, nil
}

// SetTheme overrides the cached theme for a workout.
func (s *Service) SetTheme(ctx context.Context, userID int64, date, text, theme string) error {
	return s.repo.saveTheme(ctx, userID, Key(date, text), theme)
}

// LastWorkout returns a workout text to start the next session from: the
// most neglected one when it has been at least a week, otherwise the most
// recent.
func (s *Service) LastWorkout(ctx context.Context, userID int64) (string, error) {
	entries, err := s.repo.list(ctx, userID, lastWorkoutScan)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "Start with your favorite exercises!", nil
	}

	now := s.now()
	var (
		oldestText string
		oldestDays int
	)
	for _, entry := range entries {
		if strings.TrimSpace(entry.Text) == "" {
			continue
		}
		entryDate, ok := ParseEntryDate(entry.Date, now)
		if !ok {
			continue
		}
		if days := DaysBetween(entryDate, now); days > oldestDays {
			oldestDays = days
			oldestText = entry.Text
		}
	}

	if oldestDays >= 7 && oldestText != "" {
		return oldestText, nil
	}
	return entries[0].Text, nil
}

// Search resolves a query to workout positions in the newest-first list.
// Preset queries hit the maintained index; free-form queries go to the
// model, falling back to substring matching when it is unavailable.
func (s *Service) Search(ctx context.Context, userID int64, query string) ([]int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	entries, err := s.repo.list(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	themes, err := s.repo.themes(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs := s.buildDocs(entries, themes)

	if isPresetQuery(query) {
		idx, err := s.index.Ensure(ctx, userID, docs, LogFingerprint(entries))
		if err != nil {
			return nil, err
		}
		positions := make(map[string]int, len(docs))
		for i, doc := range docs {
			positions[doc.Key] = i
		}
		return idx.Resolve(query, positions), nil
	}

	return s.freeFormSearch(ctx, query, docs), nil
}

func isPresetQuery(query string) bool {
	switch query {
	case searchindex.CategoryPR, searchindex.CategoryChest, searchindex.CategoryFullBody,
		searchindex.CategoryLegDay, searchindex.CategoryUpper:
		return true
	}
	return false
}

func (s *Service) freeFormSearch(ctx context.Context, query string, docs []searchindex.Doc) []int {
	var lines []string
	limit := min(len(docs), listWindow)
	for i, doc := range docs[:limit] {
		summary := doc.Summary
		if len(summary) > 200 {
			summary = summary[:200]
		}
		lines = append(lines, fmt.Sprintf("[%d] %s | %s | %s", i, doc.Date, doc.Theme, summary))
	}

	prompt := fmt.Sprintf(`You are searching through workout history. Find workouts that match this query semantically (meaning, not just keywords).

Query: %q

Workout history (format: [index] date | theme | workout text):
%s

Return ONLY a comma-separated list of indices (numbers in brackets) that match the query. For example: "0, 3, 7, 12"
If no workouts match, return an empty string.

Return at most 20 indices, prioritizing the most relevant matches.`, query, strings.Join(lines, "\n"))

	reply, err := s.ai.Complete(ctx, prompt, searchMaxTokens)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "AI search failed, falling back to substring match",
			errors.SlogError(err))
		return substringSearch(query, docs[:limit])
	}

	var positions []int
	for _, m := range anyNumber.FindAllStringSubmatch(reply, -1) {
		pos, convErr := strconv.Atoi(m[1])
		if convErr == nil && pos < len(docs) {
			positions = append(positions, pos)
		}
	}
	return positions
}

func substringSearch(query string, docs []searchindex.Doc) []int {
	query = strings.ToLower(query)
	var positions []int
	for i, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Summary), query) ||
			strings.Contains(strings.ToLower(doc.Theme), query) {
			positions = append(positions, i)
		}
	}
	return positions
}

// patchIndex applies one workout change to the search index. Index failures
// are logged, never surfaced: the log write already succeeded and the index
// will heal on the next full build.
func (s *Service) patchIndex(ctx context.Context, userID int64, entry Entry, op searchindex.Op) {
	entries, err := s.repo.list(ctx, userID, 0)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "list workouts for index patch", errors.SlogError(err))
		return
	}

	doc := s.docFor(entries, entry)
	if err := s.index.Update(ctx, userID, doc, op, LogFingerprint(entries)); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "patch search index", errors.SlogError(err))
	}
}

// docFor builds the index document for one entry, judged against the rest
// of the log.
func (s *Service) docFor(all []Entry, entry Entry) searchindex.Doc {
	parsed := Parse(entry.Text)
	ach := DetectAchievements(parsed, HistoryBefore(all, entry, s.now()))
	return searchindex.Doc{
		Key:                 Key(entry.Date, entry.Text),
		Date:                entry.Date,
		Summary:             entry.Text,
		HasPR:               ach.HasPR,
		HasStrengthIncrease: ach.HasStrengthIncrease,
		MuscleGroups:        mappedGroups(parsed),
	}
}

func (s *Service) buildDocs(entries []Entry, themes map[string]string) []searchindex.Doc {
	now := s.now()
	docs := make([]searchindex.Doc, len(entries))
	for i, entry := range entries {
		parsed := Parse(entry.Text)
		ach := DetectAchievements(parsed, HistoryBefore(entries, entry, now))
		key := Key(entry.Date, entry.Text)
		docs[i] = searchindex.Doc{
			Key:                 key,
			Date:                entry.Date,
			Theme:               themes[key],
			Summary:             entry.Text,
			HasPR:               ach.HasPR,
			HasStrengthIncrease: ach.HasStrengthIncrease,
			MuscleGroups:        mappedGroups(parsed),
		}
	}
	return docs
}

// mappedGroups unions the mapping-table groups of a workout's exercises.
// Rule-based categorization intentionally skips the knowledge base and
// keyword inference; those widen recovery tracking, not search.
func mappedGroups(parsed ParsedWorkout) []string {
	seen := make(map[string]struct{})
	var groups []string
	for _, ex := range parsed.Exercises {
		_, mapped := muscles.Normalize(ex.Name)
		for _, group := range mapped {
			if _, ok := seen[group]; !ok {
				seen[group] = struct{}{}
				groups = append(groups, group)
			}
		}
	}
	return groups
}

// foldHistory folds entries into best records without a date cutoff, for
// comparing a workout that is already the newest thing in the log.
func foldHistory(entries []Entry) map[string]HistoryRecord {
	history := make(map[string]HistoryRecord)
	for _, entry := range entries {
		for _, ex := range Parse(entry.Text).Exercises {
			key := historyKey(ex.Name)
			rec, seen := history[key]
			if !seen {
				rec = HistoryRecord{BestWeight: ex.MaxWeight, BestReps: ex.FirstReps}
				if ex.MaxWeight > 0 {
					rec.BestWeightReps = ex.FirstReps
				}
				history[key] = rec
				continue
			}
			if ex.MaxWeight > rec.BestWeight {
				rec.BestWeight = ex.MaxWeight
				rec.BestWeightReps = ex.FirstReps
			}
			if ex.FirstReps > rec.BestReps {
				rec.BestReps = ex.FirstReps
			}
			history[key] = rec
		}
	}
	return history
}

// insightFact renders the rule-based part of the insight message.
func insightFact(parsed ParsedWorkout, ach Achievements, history map[string]HistoryRecord) string {
	var prs, improvements []string
	for _, exAch := range ach.Exercises {
		rec := history[historyKey(exAch.Exercise)]
		for _, ex := range parsed.Exercises {
			if ex.Name != exAch.Exercise {
				continue
			}
			switch {
			case exAch.IsPR && (ex.IsBodyweight || ex.MaxWeight == 0):
				prs = append(prs, fmt.Sprintf("%s (%d reps, previous best: %d)", ex.Name, ex.FirstReps, rec.BestReps))
			case exAch.IsPR:
				prs = append(prs, fmt.Sprintf("%s (%dlbs, previous best: %dlbs)", ex.Name, ex.MaxWeight, rec.BestWeight))
			case exAch.IsStrengthIncrease:
				improvements = append(improvements, fmt.Sprintf("%s (+%d reps at %dlbs)", ex.Name, ex.FirstReps-rec.BestWeightReps, ex.MaxWeight))
			}
			break
		}
	}

	switch {
	case len(prs) == 1:
		return "PR reached! " + prs[0]
	case len(prs) > 1:
		top := prs
		if len(top) > 2 {
			top = top[:2]
		}
		return fmt.Sprintf("Big accomplishment! %d new PRs: %s", len(prs), strings.Join(top, ", "))
	case len(improvements) > 0:
		return "Strength increase: " + improvements[0]
	default:
		plural := "s"
		if parsed.ExerciseCount == 1 {
			plural = ""
		}
		return fmt.Sprintf("Logged %d exercise%s", parsed.ExerciseCount, plural)
	}
}

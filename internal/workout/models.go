// Package workout implements the exercise-log parser and the analytics
// derived from it: temporal history reconstruction, personal-record and
// recovery detection, and progressive-overload suggestions.
package workout

// Set is a single performed set. Weight 0 signals a bodyweight set.
type Set struct {
	Weight int `json:"weight"`
	Reps   int `json:"reps"`
}

// ParsedExercise is one structured exercise line. It is derived entirely from
// a single line of input and never mutated after creation.
//
// FirstWeight/FirstReps are the first set's values: later sets in a line are
// often drop-sets, so the first set is treated as the canonical current
// performance. MaxWeight/MaxReps are taken over all sets independently.
// IsBodyweight follows FirstWeight, not MaxWeight, because a line can start
// at bodyweight and add load mid-line.
type ParsedExercise struct {
	Name         string `json:"exercise"`
	Sets         []Set  `json:"sets"`
	FirstWeight  int    `json:"first_weight"`
	FirstReps    int    `json:"first_reps"`
	TotalSets    int    `json:"total_sets"`
	MaxWeight    int    `json:"max_weight"`
	MaxReps      int    `json:"max_reps"`
	IsBodyweight bool   `json:"is_bodyweight"`
}

// ParsedWorkout is the structured form of one logged entry.
type ParsedWorkout struct {
	Exercises     []ParsedExercise `json:"exercises"`
	ExerciseCount int              `json:"exercise_count"`
	TotalSets     int              `json:"total_sets"`
}

// Entry is a stored workout. Date keeps the raw string the user typed: date
// parsing is lossy and heuristic, so the interpretation happens transiently
// at read time and is never written back.
type Entry struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Text string `json:"text"`
}

// HistoryRecord is the best known performance of one exercise, keyed by the
// lowercased, trimmed raw exercise name. BestWeightReps is the rep count
// observed at the best weight, which may differ from BestReps achieved at a
// lighter weight. Built transiently per query; never persisted.
type HistoryRecord struct {
	BestWeight     int `json:"best_weight"`
	BestReps       int `json:"best_reps"`
	BestWeightReps int `json:"best_weight_reps"`
}

// ExerciseAchievement flags what a single exercise accomplished against its
// history. A PR and a strength increase are disjoint by construction.
type ExerciseAchievement struct {
	Exercise           string `json:"exercise"`
	IsPR               bool   `json:"is_pr"`
	IsStrengthIncrease bool   `json:"is_strength_increase"`
}

// Achievements summarises PR and strength-increase detection for a workout.
type Achievements struct {
	HasPR               bool                  `json:"has_pr"`
	HasStrengthIncrease bool                  `json:"has_strength_increase"`
	Exercises           []ExerciseAchievement `json:"exercises,omitempty"`
}

// WorkoutView is an entry enriched for listing: cached theme and achievement
// flags computed against the history strictly before it.
type WorkoutView struct {
	Entry
	Theme               string `json:"theme,omitempty"`
	HasPR               bool   `json:"has_pr"`
	HasStrengthIncrease bool   `json:"has_strength_increase"`
}

// Suggestion is the progressive-overload output for one exercise. Weight is a
// float because grid rounding lands on 2.5 lb steps.
type Suggestion struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Reason string  `json:"reason"`
}

// ExerciseSuggestion pairs a suggestion with the exercise and the last
// performance it was derived from.
type ExerciseSuggestion struct {
	Exercise     string  `json:"exercise"`
	Weight       float64 `json:"suggested_weight"`
	Reps         int     `json:"suggested_reps"`
	Reason       string  `json:"reason"`
	LastWeight   float64 `json:"last_weight"`
	LastReps     int     `json:"last_reps"`
	DaysSince    int     `json:"days_since"`
	HasHistory   bool    `json:"has_history"`
	CurrentReps  int     `json:"current_reps"`
	CurrentWeight int    `json:"current_weight"`
}

// RecoveryReport buckets every canonical muscle group by training recency.
// Status is a short human-readable summary of the actionable buckets.
type RecoveryReport struct {
	TooSoon   []string `json:"too_soon"`
	Optimal   []string `json:"optimal"`
	Ready     []string `json:"ready"`
	Neglected []string `json:"neglected"`
	Status    string   `json:"recovery_status"`
}

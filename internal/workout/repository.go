package workout

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/petrikoro/liftlog/internal/errors"
	"github.com/petrikoro/liftlog/internal/sqlite"
)

// ErrNotFound is returned when a workout or theme does not exist for the
// given user.
var ErrNotFound = errors.NewSentinel("workout not found")

type repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{db: db, logger: logger}
}

// list returns the user's workouts newest first. limit <= 0 means all.
func (r *repository) list(ctx context.Context, userID int64, limit int) ([]Entry, error) {
	query := `SELECT id, workout_date, workout_text FROM workouts WHERE user_id = ? ORDER BY id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query workouts", slog.Int64("user_id", userID))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "close workout rows", errors.SlogError(closeErr))
		}
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Text); err != nil {
			return nil, errors.Wrap(err, "scan workout row")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate workout rows")
	}
	return entries, nil
}

func (r *repository) get(ctx context.Context, userID, id int64) (Entry, error) {
	var e Entry
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT id, workout_date, workout_text FROM workouts WHERE user_id = ? AND id = ?`,
		userID, id,
	).Scan(&e.ID, &e.Date, &e.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, errors.Wrap(err, "query workout", slog.Int64("workout_id", id))
	}
	return e, nil
}

func (r *repository) add(ctx context.Context, userID int64, date, text string) (Entry, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx,
		`INSERT INTO workouts (user_id, workout_date, workout_text) VALUES (?, ?, ?)`,
		userID, date, text,
	)
	if err != nil {
		return Entry{}, errors.Wrap(err, "insert workout", slog.Int64("user_id", userID))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Entry{}, errors.Wrap(err, "workout insert id")
	}
	return Entry{ID: id, Date: date, Text: text}, nil
}

func (r *repository) update(ctx context.Context, userID, id int64, text string) (Entry, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx,
		`UPDATE workouts SET workout_text = ? WHERE user_id = ? AND id = ?`,
		text, userID, id,
	)
	if err != nil {
		return Entry{}, errors.Wrap(err, "update workout", slog.Int64("workout_id", id))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Entry{}, errors.Wrap(err, "workout update affected rows")
	}
	if affected == 0 {
		return Entry{}, ErrNotFound
	}
	return r.get(ctx, userID, id)
}

func (r *repository) delete(ctx context.Context, userID, id int64) (Entry, error) {
	entry, err := r.get(ctx, userID, id)
	if err != nil {
		return Entry{}, err
	}
	if _, err := r.db.ReadWrite.ExecContext(ctx,
		`DELETE FROM workouts WHERE user_id = ? AND id = ?`, userID, id,
	); err != nil {
		return Entry{}, errors.Wrap(err, "delete workout", slog.Int64("workout_id", id))
	}
	return entry, nil
}

func (r *repository) theme(ctx context.Context, userID int64, key string) (string, error) {
	var theme string
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT theme FROM workout_themes WHERE user_id = ? AND workout_key = ?`,
		userID, key,
	).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "query theme", slog.String("workout_key", key))
	}
	return theme, nil
}

func (r *repository) saveTheme(ctx context.Context, userID int64, key, theme string) error {
	_, err := r.db.ReadWrite.ExecContext(ctx,
		`INSERT INTO workout_themes (user_id, workout_key, theme) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, workout_key) DO UPDATE SET theme = excluded.theme`,
		userID, key, theme,
	)
	if err != nil {
		return errors.Wrap(err, "save theme", slog.String("workout_key", key))
	}
	return nil
}

// themes returns every cached theme for the user, keyed by workout key.
func (r *repository) themes(ctx context.Context, userID int64) (map[string]string, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx,
		`SELECT workout_key, theme FROM workout_themes WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query themes", slog.Int64("user_id", userID))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "close theme rows", errors.SlogError(closeErr))
		}
	}()

	themes := make(map[string]string)
	for rows.Next() {
		var key, theme string
		if err := rows.Scan(&key, &theme); err != nil {
			return nil, errors.Wrap(err, "scan theme row")
		}
		themes[key] = theme
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate theme rows")
	}
	return themes, nil
}

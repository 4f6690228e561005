package searchindex

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/petrikoro/liftlog/internal/errors"
	"github.com/petrikoro/liftlog/internal/sqlite"
)

// SQLiteStore persists indexes as JSON blobs, one row per user.
type SQLiteStore struct {
	db *sqlite.Database
}

func NewSQLiteStore(db *sqlite.Database) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context, userID int64) (Index, bool, error) {
	var data []byte
	err := s.db.ReadOnly.QueryRowContext(ctx,
		`SELECT data FROM search_indexes WHERE user_id = ?`, userID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Index{}, false, nil
	}
	if err != nil {
		return Index{}, false, errors.Wrap(err, "query search index", slog.Int64("user_id", userID))
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		// A corrupt blob is treated as missing so the caller rebuilds.
		return Index{}, false, nil
	}
	return idx, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, userID int64, idx Index) error {
	data, err := json.Marshal(idx)
	if err != nil {
		return errors.Wrap(err, "marshal search index")
	}
	if _, err := s.db.ReadWrite.ExecContext(ctx,
		`INSERT INTO search_indexes (user_id, data) VALUES (?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET data = excluded.data`,
		userID, data,
	); err != nil {
		return errors.Wrap(err, "save search index", slog.Int64("user_id", userID))
	}
	return nil
}

// Package users handles account registration and password authentication.
package users

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/petrikoro/liftlog/internal/errors"
	"github.com/petrikoro/liftlog/internal/sqlite"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.NewSentinel("invalid credentials")
	ErrUsernameTaken      = errors.NewSentinel("username already taken")
	ErrWeakPassword       = errors.NewSentinel("password too short")
	ErrInvalidUsername    = errors.NewSentinel("invalid username")
)

const (
	minUsernameLen = 3
	minPasswordLen = 8
	bcryptCost     = 12
)

// User is an authenticated account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Service struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Register creates an account. Usernames are case-insensitive: they are
// lowercased before storage so "Alice" and "alice" collide.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < minUsernameLen {
		return User{}, ErrInvalidUsername
	}
	if len(password) < minPasswordLen {
		return User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, errors.Wrap(err, "hash password")
	}

	result, err := s.db.ReadWrite.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username, hash,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return User{}, ErrUsernameTaken
		}
		return User{}, errors.Wrap(err, "insert user", slog.String("username", username))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return User{}, errors.Wrap(err, "user insert id")
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "user registered",
		slog.Int64("user_id", id), slog.String("username", username))
	return User{ID: id, Username: username}, nil
}

// Authenticate verifies a username and password pair. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var (
		user User
		hash []byte
	)
	err := s.db.ReadOnly.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = ?`, username,
	).Scan(&user.ID, &user.Username, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, errors.Wrap(err, "query user", slog.String("username", username))
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

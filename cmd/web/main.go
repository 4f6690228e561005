package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/petrikoro/liftlog/internal/ai"
	"github.com/petrikoro/liftlog/internal/envstruct"
	"github.com/petrikoro/liftlog/internal/errors"
	"github.com/petrikoro/liftlog/internal/logging"
	"github.com/petrikoro/liftlog/internal/muscles"
	"github.com/petrikoro/liftlog/internal/searchindex"
	"github.com/petrikoro/liftlog/internal/sqlite"
	"github.com/petrikoro/liftlog/internal/users"
	"github.com/petrikoro/liftlog/internal/workout"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	userService    *users.Service
	workoutService *workout.Service
	indexer        *searchindex.Maintainer
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"LIFTLOG_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"LIFTLOG_SQLITE_URL" envDefault:"./liftlog.sqlite3"`
	// OpenAIAPIKey authorizes theme, insight and search categorization calls.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	// OpenAIModel overrides the default chat model.
	OpenAIModel string `env:"LIFTLOG_OPENAI_MODEL" envDefault:""`
	// KnowledgeBasePath points to an optional muscle-group knowledge base
	// JSON file. Empty disables it.
	KnowledgeBasePath string `env:"LIFTLOG_KNOWLEDGE_BASE" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	aiClient := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
	kb := muscles.LoadKnowledgeBase(cfg.KnowledgeBasePath)
	indexer := searchindex.NewMaintainer(searchindex.NewSQLiteStore(db), aiClient, logger)

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		userService:    users.NewService(db, logger),
		workoutService: workout.NewService(db, indexer, aiClient, kb, logger),
		indexer:        indexer,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}

	// Let in-flight background index rebuilds finish before exiting.
	indexer.Wait()
	return nil
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                                //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "fatal error", errors.SlogError(err))
		os.Exit(1)
	}
}

// Package app wires the bot together: storage, sessions, the notification
// queue, the document archive, the chat transport and the ops endpoints. It
// handles graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/cargobot/internal/bot"
	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/chat/telegram"
	"github.com/dmitrijs2005/cargobot/internal/config"
	"github.com/dmitrijs2005/cargobot/internal/cryptox"
	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/documents"
	"github.com/dmitrijs2005/cargobot/internal/filex"
	"github.com/dmitrijs2005/cargobot/internal/importer"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/metrics"
	"github.com/dmitrijs2005/cargobot/internal/notify"
	"github.com/dmitrijs2005/cargobot/internal/ops"
	"github.com/dmitrijs2005/cargobot/internal/registration"
	"github.com/dmitrijs2005/cargobot/internal/repositories/repomanager"
	"github.com/dmitrijs2005/cargobot/internal/services"
	"github.com/dmitrijs2005/cargobot/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Messenger is the chat transport: it sends messages and delivers updates.
type Messenger interface {
	chat.Messenger
	Poll(ctx context.Context, handle func(context.Context, chat.Update))
}

var newMessenger = func(token string, logger logging.Logger) (Messenger, error) {
	b, err := telegram.New(token, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	redis     *redis.Client
	registry  *prometheus.Registry
	queue     *notify.Queue
	messenger Messenger
	bot       *bot.Bot
	checks    map[string]ops.Check
}

// NewApp connects to every backing service described by cfg. On error the
// resources opened so far are released.
func NewApp(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	app := &App{config: cfg, logger: logger, checks: map[string]ops.Check{}}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	if cfg.TempDir, err = tempDir(cfg.TempDir); err != nil {
		return nil, fmt.Errorf("temp dir init error: %w", err)
	}

	if err = sqliteDir(cfg); err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db, rm, err := repomanager.Open(ctx, dbx.Dialect(cfg.DBDriver), cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	app.checks["database"] = db.PingContext

	var sessions session.Store = session.NewMemoryStore(cfg.SessionTTL)
	if app.redis, err = session.NewRedisClient(ctx, cfg.RedisURL); err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}
	if app.redis != nil {
		sessions = session.NewRedisStore(app.redis, cfg.SessionTTL)
		app.checks["redis"] = func(ctx context.Context) error { return app.redis.Ping(ctx).Err() }
	} else {
		logger.Warn(ctx, "REDIS_URL not set, sessions are kept in memory")
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(app.registry)

	if app.messenger, err = newMessenger(cfg.BotToken, logger); err != nil {
		return nil, fmt.Errorf("chat init error: %w", err)
	}

	customers := services.NewCustomerService(db, rm, cfg, logger)
	shipments := services.NewShipmentService(db, rm, logger)
	feedback := services.NewFeedbackService(db, rm, logger)
	verifications := services.NewVerificationService(db, rm, logger)

	app.queue = notify.NewQueue(notify.Options{
		Workers:    cfg.NotifyWorkers,
		QueueSize:  cfg.NotifyQueueSize,
		MaxRetries: cfg.NotifyMaxRetries,
		Backoff:    cfg.NotifyBackoff,
	}, logger, m)

	deps := registration.Deps{
		Customers:     customers,
		Verifications: verifications,
		Messenger:     app.messenger,
		Dispatcher:    app.queue,
		Rules:         cfg.Rules(),
		Channels:      registration.Channels{Verification: cfg.VerificationGroupID, Approved: cfg.VerifiedGroupID},
		TemplatesDir:  cfg.TemplatesDir,
		Logger:        logger,
		Metrics:       m,
	}
	archive, err := documents.New(ctx, documents.Options{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		BaseEndpoint: cfg.S3BaseEndpoint,
		TempDir:      cfg.TempDir,
	}, cryptox.NewSealer(cfg.DocumentKey), logger)
	if err != nil {
		return nil, fmt.Errorf("document archive init error: %w", err)
	}
	if archive != nil {
		deps.Archive = archive
	}

	app.bot = bot.New(bot.Deps{
		Config:        cfg,
		Sessions:      sessions,
		Customers:     customers,
		Shipments:     shipments,
		Feedback:      feedback,
		Verifications: verifications,
		Importer:      importer.New(customers, shipments, cfg.Rules(), cfg.TempDir, logger),
		Workflow:      registration.New(deps),
		Messenger:     app.messenger,
		Logger:        logger,
		Metrics:       m,
	})

	return app, nil
}

// tempDir resolves a relative directory against the working directory and
// makes sure it exists.
func tempDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		return filex.EnsureSubdDir(dir)
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", err
	}
	return dir, nil
}

// sqliteDir creates the directory of a plain-file SQLite database.
func sqliteDir(cfg *config.Config) error {
	dsn := cfg.DatabaseDSN
	if dbx.Dialect(cfg.DBDriver) != dbx.DialectSQLite || strings.HasPrefix(dsn, "file:") || strings.HasPrefix(dsn, ":memory:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(dsn), 0o770)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run polls for updates and serves the ops endpoints until ctx is cancelled,
// a signal arrives or a server fails. Queued notifications and detached
// admin work are finished before it returns.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	// notifications outlive the run context so Close can drain them
	app.queue.Start(context.WithoutCancel(ctx))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.messenger.Poll(ctx, app.bot.HandleUpdate)
		cancelFunc()
		return nil
	})

	if app.config.HTTPAddr != "" {
		srv := ops.NewHTTPServer(app.config.HTTPAddr, ops.NewRouter(app.registry, app.checks), app.logger)
		g.Go(func() error { return srv.Run(ctx) })
	}
	if app.config.GRPCAddr != "" {
		srv := ops.NewGRPCServer(app.config.GRPCAddr, app.logger, app.checks)
		g.Go(func() error { return srv.Run(ctx) })
	}

	err := g.Wait()

	app.logger.Info(ctx, "Stopping app...")
	app.bot.Wait()
	app.queue.Close()

	return err
}

// Close releases the database and Redis connections.
func (app *App) Close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(context.Background(), "redis close", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(context.Background(), "db close", "error", err)
		}
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/internal/config"
	dbpkg "github.com/benedict2310/sitebuilder/internal/db"
	"github.com/benedict2310/sitebuilder/internal/export"
	"github.com/benedict2310/sitebuilder/internal/release"
	"github.com/benedict2310/sitebuilder/internal/storage"
	"github.com/benedict2310/sitebuilder/internal/store"
	"github.com/spf13/cobra"
)

const (
	closeTimeout   = 10 * time.Second
	auditQueueSize = 256
	busyTimeoutMS  = 5000
	maxSQLiteConns = 4
)

// persistence is the opened storage backend plus the activity journal that
// lives next to it.
type persistence struct {
	path      string
	persister storage.Persister
	journal   audit.Logger
	closers   []func(context.Context) error
}

func (p *persistence) Close(ctx context.Context) error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func closePersistence(p *persistence) error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return p.Close(ctx)
}

type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	persist  *persistence
	store    *store.Store
	packager *export.Packager
	now      func() time.Time
}

func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, _, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, exitCodeError(ExitInvalid, err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	logger, err := config.NewLoggerTo(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, exitCodeError(ExitInvalid, err)
	}
	return cfg, logger, nil
}

func storageKey(cfg config.Config) string {
	if cfg.Storage.Key != "" {
		return cfg.Storage.Key
	}
	return storage.DefaultKey
}

// openPersistence opens the configured backend. SQLite keeps the journal in
// the same database; the file driver journals in memory for the lifetime of
// the process.
func openPersistence(ctx context.Context, cfg config.Config, logger *slog.Logger) (*persistence, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	key := storageKey(cfg)
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return &persistence{
			path:      path,
			persister: storage.NewFile(path, key),
			journal:   audit.NewMemoryLogger(),
		}, nil
	default:
		opts := dbpkg.DefaultOptions(path)
		opts.EnableWAL = cfg.Storage.WAL
		opts.BusyTimeoutMS = busyTimeoutMS
		opts.MaxOpenConns = maxSQLiteConns
		opts.MaxIdleConns = maxSQLiteConns
		sq, err := storage.OpenSQLite(ctx, opts, key)
		if err != nil {
			return nil, fmt.Errorf("open storage %s: %w", path, err)
		}
		sink, err := audit.NewSQLiteLogger(sq.DB(), key)
		if err != nil {
			_ = sq.Close()
			return nil, fmt.Errorf("initialize activity log: %w", err)
		}
		journal := audit.NewAsyncLogger(sink, auditQueueSize, func(err error) {
			logger.Error("asynchronous activity write failed", "error", err)
		})
		return &persistence{
			path:      path,
			persister: sq,
			journal:   journal,
			closers: []func(context.Context) error{
				func(context.Context) error { return sq.Close() },
				journal.Close,
			},
		}, nil
	}
}

// openRuntime wires config, storage, journal, store and packager for one
// command invocation.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	p, err := openPersistence(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	queue := storage.NewAsync(p.persister, func(err error) {
		logger.Warn("save draft failed", "error", err)
	})
	p.closers = append(p.closers, queue.Close)

	st, err := store.Open(ctx, queue, store.WithLogger(logger), store.WithJournal(p.journal))
	if err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		return nil, errors.Join(err, p.Close(closeCtx))
	}
	return &runtime{
		cfg:      cfg,
		logger:   logger,
		persist:  p,
		store:    st,
		packager: export.NewPackager(release.Options{SocialCards: cfg.Export.SocialCards, Logger: logger}),
		now:      time.Now,
	}, nil
}

func (rt *runtime) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return errors.Join(rt.store.Close(ctx), rt.persist.Close(ctx))
}

// withRuntime runs fn against a freshly opened runtime and closes it
// afterwards, flushing queued writes.
func withRuntime(cmd *cobra.Command, fn func(*runtime) error) (err error) {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close storage: %w", closeErr))
		}
	}()
	return fn(rt)
}

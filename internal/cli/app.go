// Package cli implements the interactive surface of the code library: a
// small REPL over the identity and snippet stores covering sign-in, the
// snippet list, and the editor workflows.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Efrem-Yohanis/playwright-playground/internal/codes"
	"github.com/Efrem-Yohanis/playwright-playground/internal/config"
	"github.com/Efrem-Yohanis/playwright-playground/internal/filex"
	"github.com/Efrem-Yohanis/playwright-playground/internal/identity"
	"github.com/Efrem-Yohanis/playwright-playground/internal/kvstore"
	"github.com/Efrem-Yohanis/playwright-playground/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	kv     kvstore.Store
	ids    *identity.Store
	codes  *codes.Store
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	kv, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}

	log.Info(ctx, "store opened", "backend", string(cfg.Backend), "prefix", cfg.KeyPrefix)

	ids, err := identity.NewStore(ctx, kv, log, cfg.KeyPrefix)
	if err != nil {
		return nil, err
	}

	cs, err := codes.NewStore(ctx, kv, ids, log, cfg.KeyPrefix)
	if err != nil {
		return nil, err
	}

	return &App{
		config: cfg,
		log:    log,
		kv:     kv,
		ids:    ids,
		codes:  cs,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// openStore picks the key-value backend from configuration.
func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), nil
	case config.BackendFile:
		dir := cfg.DataDir
		if dir == "" {
			var err error
			dir, err = filex.DefaultDataDir("playwright-playground")
			if err != nil {
				return nil, err
			}
		}
		return kvstore.NewFileStore(dir)
	case config.BackendSQLite:
		return kvstore.NewSQLiteStore(ctx, cfg.SQLitePath)
	case config.BackendPostgres:
		return kvstore.NewPostgresStore(ctx, cfg.DatabaseDSN)
	case config.BackendRedis:
		return kvstore.NewRedisStore(ctx, cfg.RedisAddr)
	case config.BackendS3:
		return kvstore.NewS3Store(ctx, kvstore.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func (a *App) Close() error {
	if c, ok := a.kv.(kvstore.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.ids.Current() != nil
}

func (a *App) status() string {
	if cur := a.ids.Current(); cur != nil {
		return fmt.Sprintf("(%s)", cur.ID)
	}
	return ""
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to the code library (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drelynlikescode26/callflow-assist"
	"github.com/drelynlikescode26/callflow-assist/pkg/adapters/file"
	"github.com/drelynlikescode26/callflow-assist/pkg/adapters/redis"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/ports"
)

// createEngine initializes an engine with standard CLI conventions: the rep
// name survives every restart.
func createEngine(ctx context.Context, opts RunOptions, logger *slog.Logger, hooks domain.LifecycleHooks) (*callflow.Engine, error) {
	engineOpts := []callflow.Option{
		callflow.WithLogger(logger),
		callflow.WithLifecycleHooks(hooks),
		callflow.WithStickyFields(domain.FieldRepName),
		callflow.WithStrictEnums(opts.Strict),
	}

	engine, err := callflow.Load(ctx, opts.GraphPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// openSetupStore selects Redis when an address is given, the filesystem
// otherwise.
func openSetupStore(ctx context.Context, opts RunOptions) (ports.SetupStore, func(), error) {
	if opts.RedisAddr != "" {
		store := redis.New(opts.RedisAddr, "", 0)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}
	return file.NewSetupStore(opts.SetupDir), func() {}, nil
}

// resolveRepName returns the rep name from the flags, saving it for the next
// session, or falls back to the stored setup.
func resolveRepName(ctx context.Context, store ports.SetupStore, opts RunOptions, logger *slog.Logger) (string, error) {
	if opts.RepName != "" {
		setup := domain.Setup{RepName: opts.RepName, UpdatedAt: time.Now().UTC()}
		if err := store.Save(ctx, opts.Profile, setup); err != nil {
			logger.Warn("failed to save setup", "profile", opts.Profile, "error", err)
		}
		return opts.RepName, nil
	}

	setup, err := store.Load(ctx, opts.Profile)
	if errors.Is(err, domain.ErrSetupNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load setup: %w", err)
	}
	logger.Debug("setup restored", "profile", opts.Profile, "rep", setup.RepName)
	return setup.RepName, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultResetDelay is how long an error stays on screen before the call
// restarts.
const DefaultResetDelay = 2 * time.Second

// DefaultProfile names the setup profile used when none is given.
const DefaultProfile = "default"

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	GraphPath    string
	RepName      string
	CustomerName string
	SetupDir     string
	RedisAddr    string
	Profile      string
	Strict       bool
	Debug        bool
	Plain        bool
	MetricsFile  string
	ResetDelay   time.Duration
}

// Execute runs one interactive calling session: it loads the script, restores
// the rep name from the setup store and drives the shell until the user quits
// or in is exhausted.
func Execute(ctx context.Context, opts RunOptions, in io.Reader, out io.Writer) (err error) {
	logger := createLogger(opts.Debug)
	if opts.Profile == "" {
		opts.Profile = DefaultProfile
	}

	store, closeStore, err := openSetupStore(ctx, opts)
	if err != nil {
		return err
	}
	defer closeStore()

	repName, err := resolveRepName(ctx, store, opts, logger)
	if err != nil {
		return err
	}

	hooks := observability.LoggingHooks(logger)
	var metrics *observability.Metrics
	if opts.MetricsFile != "" {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
		hooks = observability.Combine(hooks, metrics.Hooks())
		defer func() {
			if werr := metrics.WriteTextfile(opts.MetricsFile); werr != nil {
				err = errors.Join(err, fmt.Errorf("failed to write metrics: %w", werr))
			}
		}()
	}

	engine, err := createEngine(ctx, opts, logger, hooks)
	if err != nil {
		return err
	}

	shell := NewShell(engine, in, out,
		WithResetDelay(opts.ResetDelay),
		WithShellLogger(logger),
		WithPlainOutput(opts.Plain || !isTerminal(out)),
	)
	initial := domain.NewCallContext()
	initial.RepName = repName
	initial.CustomerName = opts.CustomerName

	return handleExecutionError(shell.Run(ctx, initial))
}

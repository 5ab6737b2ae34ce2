package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/drelynlikescode26/callflow-assist/internal/logging"
	"golang.org/x/term"
)

var errInterrupted = errors.New("interrupted")

// WithSignals returns a context cancelled on SIGINT or SIGTERM.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// createLogger configures the application logger.
// Debug output goes to stderr so the call script on stdout stays readable.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a shell message, set apart from script text.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// cancelReader stops yielding input once done is closed. A read already
// blocked on the underlying reader still returns, but its data is dropped.
type cancelReader struct {
	r    io.Reader
	done <-chan struct{}
}

func newCancelReader(r io.Reader, done <-chan struct{}) *cancelReader {
	return &cancelReader{r: r, done: done}
}

func (c *cancelReader) cancelled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *cancelReader) Read(p []byte) (int, error) {
	if c.cancelled() {
		return 0, errInterrupted
	}
	n, err := c.r.Read(p)
	if c.cancelled() {
		return 0, errInterrupted
	}
	return n, err
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, errInterrupted) ||
		errors.Is(err, io.EOF)
}

// handleExecutionError maps interruptions and end of input to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/drelynlikescode26/callflow-assist"
	"github.com/drelynlikescode26/callflow-assist/internal/logging"
	"github.com/drelynlikescode26/callflow-assist/internal/presentation/tui"
	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

const helpText = `Commands:
  <number>   choose an option
  b          go back one step
  r          restart the call (keeps the rep name)
  n <text>   add a call note
  s          show the call summary
  v          show the current step again
  q          quit`

// Shell is the line-oriented host for one engine. It renders each view and
// turns typed commands into engine calls.
type Shell struct {
	engine     *callflow.Engine
	in         io.Reader
	out        io.Writer
	render     func(string) (string, error)
	plain      bool
	resetDelay time.Duration
	logger     *slog.Logger

	view  *domain.ResolvedView
	notes []string
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithResetDelay sets how long an error is shown before the call restarts.
func WithResetDelay(d time.Duration) ShellOption {
	return func(s *Shell) {
		s.resetDelay = d
	}
}

// WithShellLogger sets the logger.
func WithShellLogger(logger *slog.Logger) ShellOption {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPlainOutput disables the banner and markdown styling.
func WithPlainOutput(plain bool) ShellOption {
	return func(s *Shell) {
		s.plain = plain
	}
}

// NewShell creates a shell reading commands from in and writing to out.
func NewShell(engine *callflow.Engine, in io.Reader, out io.Writer, opts ...ShellOption) *Shell {
	s := &Shell{
		engine:     engine,
		in:         in,
		out:        out,
		resetDelay: DefaultResetDelay,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.plain {
		s.render = tui.NewRenderer()
	}
	return s
}

// Notes returns the notes taken during the current call.
func (s *Shell) Notes() []string {
	return append([]string(nil), s.notes...)
}

// Run starts a call with initial and processes commands until quit, end of
// input or cancellation.
func (s *Shell) Run(ctx context.Context, initial domain.CallContext) error {
	if !s.plain {
		tui.PrintBanner(s.out)
	}

	view, err := s.engine.Start(initial)
	if err != nil {
		return err
	}
	s.show(view)

	scanner := bufio.NewScanner(newCancelReader(s.in, ctx.Done()))
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			if err := scanner.Err(); err != nil {
				return err
			}
			return nil
		}

		quit, err := s.handle(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *Shell) handle(ctx context.Context, line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "q", "quit", "exit":
		return true, nil
	case "h", "?", "help":
		fmt.Fprintln(s.out, helpText)
	case "b", "back":
		view, err := s.engine.Back()
		return false, s.navigated(ctx, view, err)
	case "r", "reset":
		return false, s.restart()
	case "s", "summary":
		s.showSummary()
	case "v", "view":
		view, err := s.engine.View()
		return false, s.navigated(ctx, view, err)
	case "n", "note":
		s.addNote(arg)
	default:
		n, convErr := strconv.Atoi(cmd)
		if convErr != nil {
			printSystemMessage(s.out, "Unknown command %q. Type h for help.", line)
			return false, nil
		}
		if s.view == nil || n < 1 || n > len(s.view.Options) {
			printSystemMessage(s.out, "No option %d.", n)
			return false, nil
		}
		view, err := s.engine.ChooseIndex(n - 1)
		return false, s.navigated(ctx, view, err)
	}
	return false, nil
}

// navigated shows view, or reports err and restarts the call after the
// reset delay.
func (s *Shell) navigated(ctx context.Context, view *domain.ResolvedView, err error) error {
	if err == nil {
		s.show(view)
		return nil
	}

	s.logger.Warn("navigation failed, restarting call", "error", err)
	fmt.Fprintln(s.out, tui.Errorf(s.out, "Error: %v", err))
	printSystemMessage(s.out, "Restarting call...")

	if s.resetDelay > 0 {
		timer := time.NewTimer(s.resetDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.restart()
}

func (s *Shell) restart() error {
	view, err := s.engine.Restart()
	if err != nil {
		return fmt.Errorf("failed to restart call: %w", err)
	}
	s.notes = nil
	printSystemMessage(s.out, "New call started.")
	s.show(view)
	return nil
}

func (s *Shell) addNote(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		if len(s.notes) == 0 {
			printSystemMessage(s.out, "No notes yet. Use: n <text>")
			return
		}
		printSystemMessage(s.out, "Notes: %s", strings.Join(s.notes, "; "))
		return
	}
	s.notes = append(s.notes, text)
	printSystemMessage(s.out, "Note added.")
}

func (s *Shell) show(view *domain.ResolvedView) {
	s.view = view
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, tui.Progress(s.out, view.Progress))
	s.print(tui.ViewMarkdown(view))
	if view.Terminal {
		s.showSummary()
	}
}

func (s *Shell) showSummary() {
	sum, err := s.engine.Summary(strings.Join(s.notes, "; "))
	if err != nil {
		fmt.Fprintln(s.out, tui.Errorf(s.out, "Summary unavailable: %v", err))
		return
	}
	s.print(tui.SummaryMarkdown(sum))
}

func (s *Shell) print(markdown string) {
	if s.render != nil {
		if out, err := s.render(markdown); err == nil {
			fmt.Fprint(s.out, out)
			return
		}
	}
	fmt.Fprint(s.out, markdown)
}

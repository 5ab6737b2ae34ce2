package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the application banner to w.
// Colors degrade to plain text when w is not a terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"   ____      _ _  __ _               ", "#38bdf8"},
		{"  / ___|__ _| | |/ _| | _____      __", "#60a5fa"},
		{" | |   / _` | | | |_| |/ _ \\ \\ /\\ / /", "#818cf8"},
		{" | |__| (_| | | |  _| | (_) \\ V  V / ", "#a78bfa"},
		{"  \\____\\__,_|_|_|_| |_|\\___/ \\_/\\_/  ", "#c084fc"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Progress colors the progress label by call phase.
func Progress(w io.Writer, label string) string {
	out := termenv.NewOutput(w)
	color := "#60a5fa"
	switch label {
	case "Closing":
		color = "#22c55e"
	case "Rescheduling":
		color = "#f59e0b"
	}
	return out.String("● " + label).Foreground(out.Color(color)).Bold().String()
}

// Errorf formats an error line in red.
func Errorf(w io.Writer, format string, args ...any) string {
	out := termenv.NewOutput(w)
	return out.String(fmt.Sprintf(format, args...)).Foreground(out.Color("#dc3545")).String()
}

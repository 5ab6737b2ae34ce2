package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDocument writes a graph document into a fresh temp dir and returns its
// path. Leading newlines are trimmed so documents can start on the line after
// a raw string's opening quote.
// It fails the test immediately on error.
func WriteDocument(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	content = strings.TrimLeft(content, "\n")
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "Failed to write graph document")
	return path
}

package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestDir creates a temporary directory with a .tapegt/config.yaml
// holding configContent. An empty configContent skips the config file.
// The directory is automatically cleaned up when the test completes.
func SetupTestDir(t *testing.T, configContent string) string {
	t.Helper()

	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".tapegt"), 0o755))

	if configContent != "" {
		WriteTestFile(t, tmpDir, filepath.Join(".tapegt", "config.yaml"), configContent)
	}
	return tmpDir
}

// WriteTestFile writes content to path relative to base, creating parent
// directories as needed.
func WriteTestFile(t *testing.T, base, path, content string) {
	t.Helper()

	full := filepath.Join(base, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// ReadLines reads path and returns its non-empty lines.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	require.NoError(t, scanner.Err())
	return lines
}

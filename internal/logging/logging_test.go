package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/autoreqs/internal/logging"
)

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - autoreqs - (DEBUG|INFO|WARNING|ERROR) - .*$`)

func TestHandler_LineFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(logging.NewHandler(&buf, slog.LevelDebug))

	logger.Debug("starting")
	logger.Info("Found 3 files in .")
	logger.Warn("requirements.txt already exists. Overwriting it.")
	logger.Error("pip not found", "cmd", "pip")

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Regexp(t, linePattern, string(line))
	}
	assert.Contains(t, string(lines[0]), " - DEBUG - starting")
	assert.Contains(t, string(lines[1]), " - INFO - Found 3 files in .")
	assert.Contains(t, string(lines[2]), " - WARNING - requirements.txt already exists")
	assert.Contains(t, string(lines[3]), " - ERROR - pip not found cmd=pip")
}

func TestHandler_LevelAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(logging.NewHandler(&buf, slog.LevelWarn)).With("run", 1)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARNING - shown run=1\n")
}

func TestNew_TruncatesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "autoreqs.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o600))

	logger, closer, err := logging.New(path)
	require.NoError(t, err)
	logger.Info("fresh")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "previous run")
	assert.Contains(t, string(data), "INFO - fresh")
}

func TestNew_BadPath(t *testing.T) {
	t.Parallel()

	_, _, err := logging.New(filepath.Join(t.TempDir(), "missing", "autoreqs.log"))
	require.Error(t, err)
}

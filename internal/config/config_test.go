package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/autoreqs/internal/config"
	"github.com/ethanolivertroy/autoreqs/internal/models"
)

func testFlags() *pflag.FlagSet {
	d := models.DefaultConfig()
	f := pflag.NewFlagSet("autoreqs", pflag.ContinueOnError)
	f.StringSlice("ext", d.Extensions, "")
	f.String("pip", d.PipCommand, "")
	f.String("summary", d.Summary, "")
	f.Bool("yes", false, "")
	return f
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg, err := config.Load(root, nil)
	require.NoError(t, err)

	d := models.DefaultConfig()
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, d.Extensions, cfg.Extensions)
	assert.Equal(t, d.PipCommand, cfg.PipCommand)
	assert.Equal(t, "requirements.txt", cfg.Manifest)
	assert.Equal(t, "autoreqs.log", cfg.LogFile)
	assert.Equal(t, models.SummaryNone, cfg.Summary)
	assert.Empty(t, cfg.Exclude)
	assert.Zero(t, cfg.Timeout)
	assert.False(t, cfg.Yes)
	assert.False(t, cfg.DryRun)
}

func TestLoad_PyProjectSection(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	content := `[project]
name = "demo"
dependencies = ["requests>=2"]

[tool.autoreqs]
exclude = [".venv", "build"]
pip = "python3 -m pip freeze"
log-file = "scan.log"
timeout = "30s"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(content), 0o600))

	cfg, err := config.Load(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{".venv", "build"}, cfg.Exclude)
	assert.Equal(t, "python3 -m pip freeze", cfg.PipCommand)
	assert.Equal(t, "scan.log", cfg.LogFile)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, []string{".py", ".ipynb"}, cfg.Extensions)
}

func TestLoad_InvalidPyProjectFallsBack(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[project\nname='x'\n"), 0o600))

	cfg, err := config.Load(root, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConfig().PipCommand, cfg.PipCommand)
	assert.Equal(t, root, cfg.Root)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "pyproject.toml")
}

func TestLoad_NoWarningsForValidProject(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_BareTimeoutMeansSeconds(t *testing.T) {
	t.Parallel()

	cases := map[string]time.Duration{
		"timeout = 30":   30 * time.Second,
		"timeout = 1.5":  1500 * time.Millisecond,
		`timeout = "45"`: 45 * time.Second,
		`timeout = "2m"`: 2 * time.Minute,
		`timeout = "0s"`: 0,
	}
	for line, want := range cases {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"),
			[]byte("[tool.autoreqs]\n"+line+"\n"), 0o600))

		cfg, err := config.Load(root, nil)
		require.NoError(t, err, line)
		assert.Equal(t, want, cfg.Timeout, line)
	}
}

func TestLoad_BareTimeoutFromEnv(t *testing.T) {
	t.Setenv("AUTOREQS_TIMEOUT", "30")

	cfg, err := config.Load(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_SubMillisecondTimeoutRejected(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"),
		[]byte("[tool.autoreqs]\ntimeout = \"30ns\"\n"), 0o600))

	_, err := config.Load(root, nil)
	require.ErrorIs(t, err, config.ErrInvalidTimeout)
}

func TestLoad_EnvOverridesPyProject(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"),
		[]byte("[tool.autoreqs]\npip = \"pip3 freeze\"\n"), 0o600))
	t.Setenv("AUTOREQS_PIP", "uv pip freeze")
	t.Setenv("AUTOREQS_EXTENSIONS", ".py,.pyw")

	cfg, err := config.Load(root, nil)
	require.NoError(t, err)
	assert.Equal(t, "uv pip freeze", cfg.PipCommand)
	assert.Equal(t, []string{".py", ".pyw"}, cfg.Extensions)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("AUTOREQS_PIP", "uv pip freeze")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--pip", "pip3 freeze", "--summary", "table", "--yes"}))

	cfg, err := config.Load(t.TempDir(), flags)
	require.NoError(t, err)
	assert.Equal(t, "pip3 freeze", cfg.PipCommand)
	assert.Equal(t, models.SummaryTable, cfg.Summary)
	assert.True(t, cfg.Yes)
}

func TestLoad_UnchangedFlagsKeepLowerLayers(t *testing.T) {
	t.Setenv("AUTOREQS_PIP", "uv pip freeze")

	flags := testFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load(t.TempDir(), flags)
	require.NoError(t, err)
	assert.Equal(t, "uv pip freeze", cfg.PipCommand)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := models.DefaultConfig()
	require.NoError(t, config.Validate(cfg))

	cfg.Summary = "xml"
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalidSummary)

	cfg = models.DefaultConfig()
	cfg.Extensions = nil
	require.ErrorIs(t, config.Validate(cfg), config.ErrNoExtensions)

	cfg = models.DefaultConfig()
	cfg.Manifest = " "
	require.ErrorIs(t, config.Validate(cfg), config.ErrEmptyManifest)

	cfg = models.DefaultConfig()
	cfg.Timeout = 30 * time.Nanosecond
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalidTimeout)
	cfg.Timeout = -time.Second
	require.ErrorIs(t, config.Validate(cfg), config.ErrInvalidTimeout)
	cfg.Timeout = time.Millisecond
	require.NoError(t, config.Validate(cfg))
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears JOBWBS_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"JOBWBS_DB_PATH", "JOBWBS_LOG_LEVEL", "JOBWBS_PAGE_SIZE", "JOBWBS_TOP_N", "JOBWBS_EXPORT_DIR", "JOBWBS_METRICS_TEXTFILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".jobwbs", "job_master.db"), cfg.DBPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Empty(t, cfg.MetricsTextfile)
}

func TestLoad_UserConfigFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".jobwbs", "config.yaml"), "page_size: 50\ntop_n: 3\nexport_dir: ~/exports\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, filepath.Join(home, "exports"), cfg.ExportDir)
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "jobwbs.yaml")
	writeFile(t, file, "db_path: /from/file.db\nlog_level: error\n")

	cfg, err := Load(file, nil)
	require.NoError(t, err)
	assert.Equal(t, "/from/file.db", cfg.DBPath)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)

	t.Setenv("JOBWBS_DB_PATH", "/from/env.db")
	cfg, err = Load(file, nil)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--db", ":memory:"}))

	cfg, err = Load(file, flags)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, slog.LevelError, cfg.LogLevel, "unset flag does not override the file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"page size zero", "JOBWBS_PAGE_SIZE", "0"},
		{"negative top", "JOBWBS_TOP_N", "-1"},
		{"bad level", "JOBWBS_LOG_LEVEL", "loud"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tc.env, tc.val)
			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "JOBWBS_TOP_N=9\n")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env"), envFile))
	t.Cleanup(func() { os.Unsetenv("JOBWBS_TOP_N") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.TopN)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, " warn ": slog.LevelWarn, "error": slog.LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

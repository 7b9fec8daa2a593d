package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Rank.Capacity)
	assert.Equal(t, 5, cfg.Rank.Head)
	assert.Equal(t, 5, cfg.Store.Top)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "stderr", cfg.Logger.Output)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadConfigCapacityOnly(t *testing.T) {
	t.Setenv("RANKSTORE_RANK_CAPACITY", "3")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Rank.Capacity)
	assert.Equal(t, 3, cfg.Rank.Head)
}

func TestLoadConfigCapacityOnlyFile(t *testing.T) {
	path := writeFile(t, "rankstore.yaml", "rank:\n  capacity: 2\n")

	cfg, err := loadConfig([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Rank.Capacity)
	assert.Equal(t, 2, cfg.Rank.Head)
}

func TestLoadConfigSources(t *testing.T) {
	path := writeFile(t, "rankstore.yaml", `
rank:
  capacity: 16
  head: 4
store:
  members: from-file.txt
logger:
  level: warn
`)
	t.Setenv("RANKSTORE_RANK_HEAD", "8")

	cfg, err := loadConfig([]string{"--config", path, "--members", "from-flag.txt", "--metrics-addr", ":9999"})
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Rank.Capacity)
	assert.Equal(t, 8, cfg.Rank.Head)
	assert.Equal(t, "from-flag.txt", cfg.Store.Members)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9999", cfg.Metrics.Addr)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeFile(t, "rankstore.yaml", "rank:\n  capacity: 2\n  head: 3\n")
	_, err := loadConfig([]string{"-c", path})
	assert.Error(t, err)

	_, err = loadConfig([]string{"--log-level", "loud"})
	assert.Error(t, err)

	_, err = loadConfig([]string{"--unknown"})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	members := writeFile(t, "members.txt", strings.Join([]string{
		"1 alice 0101 1 1 0 500",
		"2 bob 0102 2 2 3 120000",
		"3 carol 0103 3 3 1 35000",
	}, "\n"))
	logDir := t.TempDir()
	t.Setenv("RANKSTORE_LOGGER_OUTPUT", "file")
	t.Setenv("RANKSTORE_LOGGER_LOG_DIR", logDir)

	var out bytes.Buffer
	in := strings.NewReader("F\nP 3\nB 1 2 2 100\nQ\n")
	err := run(context.Background(), []string{"--members", members, "--log-level", "debug"}, in, &out)
	require.NoError(t, err)

	assert.Equal(t, "2 120000\n3 35000\n1 500\ncarol 0103 1 35000 1\n1 400 1\n", out.String())

	logs, err := os.ReadFile(filepath.Join(logDir, "rankstore.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "会员加载完成")
}

func TestRunMissingMembersFile(t *testing.T) {
	t.Setenv("RANKSTORE_LOGGER_OUTPUT", "file")
	t.Setenv("RANKSTORE_LOGGER_LOG_DIR", t.TempDir())

	err := run(context.Background(), []string{"-m", filepath.Join(t.TempDir(), "missing.txt")}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

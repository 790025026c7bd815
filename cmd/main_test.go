package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	require.NoError(t, cmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestMigrateCommands(t *testing.T) {
	t.Setenv("JOBBOARD_DB_DSN", filepath.Join(t.TempDir(), "jobs.db"))
	t.Setenv("JOBBOARD_LOG_LEVEL", "error")

	assert.Contains(t, run(t, "migrate", "status"), "pending")
	assert.Contains(t, run(t, "migrate", "up"), "applied 8bb434256be7")
	assert.Contains(t, run(t, "migrate", "up"), "schema is up to date")
	assert.Contains(t, run(t, "migrate", "status"), "applied")
	assert.Contains(t, run(t, "migrate", "down"), "reverted 8bb434256be7")
	assert.Contains(t, run(t, "migrate", "down", "--steps", "1"), "nothing to revert")
}

func TestMigrateRejectsBadConfig(t *testing.T) {
	t.Setenv("JOBBOARD_DB_DRIVER", "oracle")
	cmd := rootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "migrate", "up"})
	assert.ErrorContains(t, cmd.ExecuteContext(context.Background()), "unsupported db_driver")
}

//go:build basic

package integration

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKeepwatchSQLiteLifecycle exercises the local commands that need no API
// key, with HOME pointed at a temp dir so the SQLite files are isolated.
func TestKeepwatchSQLiteLifecycle(t *testing.T) {
	home := t.TempDir()
	env := []string{
		"HOME=" + home,
		"KEEPWATCH_CACHE_BACKEND=sqlite",
		"KEEPWATCH_ANALYSIS_BACKEND=sqlite",
	}

	require.NoError(t, runKeepwatchCommand(t, env, "version"))

	// ASIN list management
	require.NoError(t, runKeepwatchCommand(t, env, "asin", "add", "watchlist", "B0ABCD1234", "B0EFGH5678"))
	out := outputKeepwatchCommand(t, env, "asin", "list")
	assert.Contains(t, out, "watchlist")
	assert.Contains(t, out, "B0ABCD1234")
	require.NoError(t, runKeepwatchCommand(t, env, "asin", "remove", "watchlist", "B0EFGH5678"))
	require.NoError(t, runKeepwatchCommand(t, env, "asin", "clear", "watchlist"))

	// Cache lifecycle
	require.NoError(t, runKeepwatchCommand(t, env, "cache", "status"))
	require.NoError(t, runKeepwatchCommand(t, env, "cache", "clear"))

	// Analysis lifecycle, including schema migrations
	require.NoError(t, runKeepwatchCommand(t, env, "analysis", "migrate"))
	require.NoError(t, runKeepwatchCommand(t, env, "analysis", "status"))
	require.NoError(t, runKeepwatchCommand(t, env, "analysis", "migrate", "--target-version", "0"))
	require.NoError(t, runKeepwatchCommand(t, env, "analysis", "clear"))
}

// TestKeepwatchRejectsBadInput verifies that validation failures surface as
// non-zero exits.
func TestKeepwatchRejectsBadInput(t *testing.T) {
	home := t.TempDir()
	env := []string{"HOME=" + home}

	assert.Error(t, runKeepwatchCommand(t, env, "salesrank", "not-an-asin", "--api-key", "dummy"))
	assert.Error(t, runKeepwatchCommand(t, env, "salesrank", "B0ABCD1234")) // no API key
	assert.Error(t, runKeepwatchCommand(t, env, "buybox", "B0ABCD1234", "--api-key", "dummy", "--months", "13"))
}

func outputKeepwatchCommand(t *testing.T, env []string, args ...string) string {
	keepwatchPath := getKeepwatchBinary()
	cmd := exec.Command(keepwatchPath, args...)
	cmd.Dir = "../"
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "Command failed: %s\nOutput: %s", cmd.String(), string(output))
	return string(output)
}

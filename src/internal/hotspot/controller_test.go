package hotspot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hotspot-portal-svc/src/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manage-hotspot-users.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func newController(script string) Controller {
	return NewController(&config.HotspotConfig{Script: script, TimeoutSeconds: 5})
}

func TestKickSuccess(t *testing.T) {
	script := writeScript(t, `[ "$1" = "kick" ] && [ -n "$2" ] && exit 0
exit 1`)

	assert.True(t, newController(script).Kick(context.Background(), "192.168.4.10"))
}

func TestKickNonZeroExit(t *testing.T) {
	script := writeScript(t, "exit 1")

	assert.False(t, newController(script).Kick(context.Background(), "192.168.4.10"))
}

func TestKickMissingScript(t *testing.T) {
	c := newController("/nonexistent/manage-hotspot-users.sh")

	assert.False(t, c.Kick(context.Background(), "192.168.4.10"))
}

func TestCountParsesStdout(t *testing.T) {
	script := writeScript(t, `echo "  7  "`)

	assert.Equal(t, 7, newController(script).Count(context.Background()))
}

func TestCountNonNumericOutput(t *testing.T) {
	script := writeScript(t, `echo "no clients connected"`)

	assert.Equal(t, 0, newController(script).Count(context.Background()))
}

func TestCountScriptFailure(t *testing.T) {
	script := writeScript(t, "exit 2")

	assert.Equal(t, 0, newController(script).Count(context.Background()))
}

func TestListReturnsRawStdout(t *testing.T) {
	script := writeScript(t, `printf "192.168.4.10 phone\n192.168.4.11 laptop\n"`)

	out := newController(script).List(context.Background())
	assert.Equal(t, "192.168.4.10 phone\n192.168.4.11 laptop\n", out)
}

func TestListFailureReturnsUnavailable(t *testing.T) {
	assert.Equal(t, ListUnavailable,
		newController("/nonexistent/script.sh").List(context.Background()))
}

func TestHungScriptTimesOut(t *testing.T) {
	script := writeScript(t, "sleep 30")
	c := NewController(&config.HotspotConfig{Script: script, TimeoutSeconds: 1})

	assert.False(t, c.Kick(context.Background(), "192.168.4.10"))
}

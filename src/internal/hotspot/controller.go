package hotspot

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"hotspot-portal-svc/src/internal/config"

	"github.com/sirupsen/logrus"
)

// ListUnavailable is returned by List when the management script fails.
const ListUnavailable = "unavailable"

const defaultTimeout = 10 * time.Second

// Controller wraps the external hotspot management script. Every failure
// mode degrades to a safe default value; nothing propagates an error past
// this boundary.
type Controller interface {
	Kick(ctx context.Context, ip string) bool
	Count(ctx context.Context) int
	List(ctx context.Context) string
}

type controller struct {
	script  string
	timeout time.Duration
}

func NewController(cfg *config.HotspotConfig) Controller {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &controller{
		script:  cfg.Script,
		timeout: timeout,
	}
}

// Kick disconnects the client at ip. Returns true only on exit status 0;
// a failed kick means the client has to disconnect manually.
func (c *controller) Kick(ctx context.Context, ip string) bool {
	_, err := c.run(ctx, "kick", ip)
	if err != nil {
		logrus.WithError(err).WithField("ip", ip).Warn("Hotspot kick failed")
		return false
	}
	return true
}

// Count returns the number of connected clients, or 0 when the script
// fails or its output is not a number.
func (c *controller) Count(ctx context.Context) int {
	out, err := c.run(ctx, "count")
	if err != nil {
		logrus.WithError(err).Warn("Hotspot count failed")
		return 0
	}

	count, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"output": out,
			"error":  err,
		}).Warn("Hotspot count output not numeric")
		return 0
	}
	return count
}

// List returns the raw client listing for display.
func (c *controller) List(ctx context.Context) string {
	out, err := c.run(ctx, "list")
	if err != nil {
		logrus.WithError(err).Warn("Hotspot list failed")
		return ListUnavailable
	}
	return out
}

func (c *controller) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, c.script, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

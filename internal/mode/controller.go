// Package mode switches the device between Normal and Driver mode. A switch
// is never assumed to have taken effect: every set is followed by a read-back
// of the mode the device actually reports.
package mode

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hidworks/nagactl/internal/razer"
)

const (
	// The firmware needs time to apply a mode before it answers correctly.
	defaultSettleDelay = 100 * time.Millisecond
	// Shorter pause between priming the read and fetching the response.
	defaultReadDelay = 50 * time.Millisecond
)

// MismatchError reports a device that acknowledged a mode switch but still
// reports a different mode.
type MismatchError struct {
	Requested razer.Mode
	Observed  razer.Mode
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("mode verification failed: requested %s, device reports %s",
		e.Requested, e.Observed)
}

// Controller issues verified mode switches over an injected transport. It is
// not safe for concurrent use; one controller owns the device per process.
type Controller struct {
	Transport razer.Transport

	// SettleDelay and ReadDelay override the write/read pauses, mainly for
	// tests. Zero selects the defaults.
	SettleDelay time.Duration
	ReadDelay   time.Duration

	last     razer.Mode
	verified bool
}

// Set switches the device into m and verifies the switch by reading the mode
// back. On a mismatch it returns the observed mode together with a
// *MismatchError. There are no retries; that is the caller's call.
func (c *Controller) Set(ctx context.Context, m razer.Mode) (razer.Mode, error) {
	if err := c.Transport.SendReport(ctx, razer.SetDeviceMode(m)); err != nil {
		return 0, fmt.Errorf("set device mode: %w", err)
	}
	c.sleep(ctx, c.settleDelay())

	observed, err := c.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("verify device mode: %w", err)
	}
	if observed != m {
		return observed, &MismatchError{Requested: m, Observed: observed}
	}

	if !c.verified || c.last != m {
		slog.Info("device mode switched",
			slog.String("from", c.previous()),
			slog.String("to", m.String()))
	}
	c.last, c.verified = m, true
	return observed, nil
}

// Get queries the mode the device currently reports.
func (c *Controller) Get(ctx context.Context) (razer.Mode, error) {
	if err := c.Transport.SendReport(ctx, razer.GetDeviceMode()); err != nil {
		return 0, fmt.Errorf("request device mode: %w", err)
	}
	c.sleep(ctx, c.readDelay())

	buf, err := c.Transport.ReadReport(ctx)
	if err != nil {
		return 0, fmt.Errorf("read device mode: %w", err)
	}
	r, err := razer.Decode(buf)
	if err != nil {
		return 0, err
	}
	m, _ := razer.ParseDeviceMode(r.Payload)
	return m, nil
}

func (c *Controller) previous() string {
	if !c.verified {
		return "Unknown"
	}
	return c.last.String()
}

func (c *Controller) settleDelay() time.Duration {
	if c.SettleDelay > 0 {
		return c.SettleDelay
	}
	return defaultSettleDelay
}

func (c *Controller) readDelay() time.Duration {
	if c.ReadDelay > 0 {
		return c.ReadDelay
	}
	return defaultReadDelay
}

func (c *Controller) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

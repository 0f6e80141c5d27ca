// Package device exposes the query/configure surface of the mouse on top of
// a report transport: firmware version, serial number, DPI and polling rate.
package device

import (
	"context"
	"fmt"
	"time"

	"github.com/hidworks/nagactl/internal/razer"
)

const defaultSettleDelay = 100 * time.Millisecond

// Device wraps a transport with the command set the Naga Trinity answers.
type Device struct {
	Transport razer.Transport

	// SettleDelay overrides the pause between a command write and the
	// response read. Zero selects the default.
	SettleDelay time.Duration
}

func (d *Device) FirmwareVersion(ctx context.Context) (string, error) {
	r, err := d.exchange(ctx, razer.GetFirmwareVersion())
	if err != nil {
		return "", fmt.Errorf("firmware version: %w", err)
	}
	return razer.ParseFirmwareVersion(r.Payload), nil
}

func (d *Device) SerialNumber(ctx context.Context) (string, error) {
	r, err := d.exchange(ctx, razer.GetSerialNumber())
	if err != nil {
		return "", fmt.Errorf("serial number: %w", err)
	}
	return razer.ParseSerialNumber(r.Payload), nil
}

func (d *Device) DPI(ctx context.Context) (x, y uint16, err error) {
	r, err := d.exchange(ctx, razer.GetDPI())
	if err != nil {
		return 0, 0, fmt.Errorf("get dpi: %w", err)
	}
	x, y = razer.ParseDPI(r.Payload)
	return x, y, nil
}

func (d *Device) SetDPI(ctx context.Context, x, y uint16) error {
	if err := d.send(ctx, razer.SetDPI(x, y)); err != nil {
		return fmt.Errorf("set dpi: %w", err)
	}
	return nil
}

func (d *Device) PollingRate(ctx context.Context) (uint16, error) {
	r, err := d.exchange(ctx, razer.GetPollingRate())
	if err != nil {
		return 0, fmt.Errorf("get polling rate: %w", err)
	}
	return razer.ParsePollingRate(r.Payload), nil
}

func (d *Device) SetPollingRate(ctx context.Context, hz uint16) error {
	frame, err := razer.SetPollingRate(hz)
	if err != nil {
		return err
	}
	if err := d.send(ctx, frame); err != nil {
		return fmt.Errorf("set polling rate: %w", err)
	}
	return nil
}

// send writes a command frame and gives the firmware time to apply it.
func (d *Device) send(ctx context.Context, frame []byte) error {
	if err := d.Transport.SendReport(ctx, frame); err != nil {
		return err
	}
	d.settle(ctx)
	return nil
}

// exchange writes a command frame and reads back the decoded response.
func (d *Device) exchange(ctx context.Context, frame []byte) (razer.Report, error) {
	if err := d.send(ctx, frame); err != nil {
		return razer.Report{}, err
	}
	buf, err := d.Transport.ReadReport(ctx)
	if err != nil {
		return razer.Report{}, err
	}
	return razer.Decode(buf)
}

func (d *Device) settle(ctx context.Context) {
	delay := d.SettleDelay
	if delay == 0 {
		delay = defaultSettleDelay
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

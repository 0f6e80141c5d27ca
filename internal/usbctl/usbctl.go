// Package usbctl implements the report transport over raw USB control
// transfers, the same path the device's own configurator uses.
package usbctl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/gousb"

	"github.com/hidworks/nagactl/internal/razer"
)

const (
	// SET_REPORT, host to device, class request on interface 0.
	requestTypeSet = 0x21
	requestSet     = 0x09

	// GET_REPORT, device to host.
	requestTypeGet = 0xa1
	requestGet     = 0x01

	// Feature report, report ID 0.
	reportValue = 0x0300
	reportIndex = 0x00

	transferTimeout = 1000 * time.Millisecond
)

// Transport drives the control endpoint of an opened Naga Trinity.
type Transport struct {
	ctx *gousb.Context
	dev *gousb.Device
}

// Open finds the device by its fixed VID/PID and claims it, detaching any
// kernel driver bound to the control interface.
func Open() (*Transport, error) {
	uctx := gousb.NewContext()

	dev, err := uctx.OpenDeviceWithVIDPID(razer.VendorID, razer.ProductID)
	if err != nil {
		uctx.Close()
		return nil, fmt.Errorf("open device: %w", err)
	}
	if dev == nil {
		uctx.Close()
		return nil, razer.ErrDeviceNotFound
	}

	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		uctx.Close()
		return nil, fmt.Errorf("set auto-detach: %w", err)
	}
	dev.ControlTimeout = transferTimeout

	slog.Debug("device opened",
		slog.String("product", productString(dev)),
		slog.String("transport", "usbctl"))
	return &Transport{ctx: uctx, dev: dev}, nil
}

func productString(dev *gousb.Device) string {
	s, err := dev.Product()
	if err != nil {
		return ""
	}
	return s
}

func (t *Transport) SendReport(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.dev.Control(requestTypeSet, requestSet, reportValue, reportIndex, frame); err != nil {
		return classify(err)
	}
	return nil
}

func (t *Transport) ReadReport(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]byte, razer.FrameSize)
	n, err := t.dev.Control(requestTypeGet, requestGet, reportValue, reportIndex, buf)
	if err != nil {
		return nil, classify(err)
	}
	return buf[:n], nil
}

func (t *Transport) Close() error {
	var errs error
	if t.dev != nil {
		if err := t.dev.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if t.ctx != nil {
		if err := t.ctx.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func classify(err error) error {
	switch {
	case errors.Is(err, gousb.ErrorTimeout):
		return fmt.Errorf("%w: %v", razer.ErrTransferTimeout, err)
	case errors.Is(err, gousb.ErrorNoDevice):
		return fmt.Errorf("%w: %v", razer.ErrDeviceNotFound, err)
	default:
		return fmt.Errorf("%w: %v", razer.ErrTransferFailure, err)
	}
}

// Package hidraw implements the report transport over hidraw feature
// reports. It drives the same 90-byte protocol as usbctl but through the
// kernel HID layer, which avoids detaching the device from its driver.
package hidraw

import (
	"context"
	"fmt"
	"log/slog"

	usbhid "rafaelmartins.com/p/usbhid"

	"github.com/hidworks/nagactl/internal/razer"
)

const reportID = 0x00

// Transport exchanges report frames through feature reports on the device's
// control interface.
type Transport struct {
	dev *usbhid.Device
}

// Open locates the control interface by VID/PID and opens it.
func Open() (*Transport, error) {
	dev, err := usbhid.Get(func(d *usbhid.Device) bool {
		return d.VendorId() == razer.VendorID && d.ProductId() == razer.ProductID
	}, true, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", razer.ErrDeviceNotFound, err)
	}

	slog.Debug("device opened",
		slog.String("product", dev.Product()),
		slog.String("path", dev.Path()),
		slog.String("transport", "hidraw"))
	return &Transport{dev: dev}, nil
}

func (t *Transport) SendReport(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.dev.SetFeatureReport(reportID, frame); err != nil {
		return fmt.Errorf("%w: %v", razer.ErrTransferFailure, err)
	}
	return nil
}

func (t *Transport) ReadReport(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf, err := t.dev.GetFeatureReport(reportID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", razer.ErrTransferFailure, err)
	}
	if len(buf) > razer.FrameSize {
		buf = buf[:razer.FrameSize]
	}
	return buf, nil
}

func (t *Transport) Close() error {
	return t.dev.Close()
}

package razer

import (
	"context"
	"errors"
)

// USB identity of the one supported device model.
const (
	VendorID  = 0x1532
	ProductID = 0x0067
)

// Transport moves raw report frames to and from the device's control
// interface. Implementations bound every operation with their own timeout.
type Transport interface {
	// SendReport delivers a 90-byte frame host-to-device.
	SendReport(ctx context.Context, frame []byte) error
	// ReadReport fetches a 90-byte response frame device-to-host.
	ReadReport(ctx context.Context) ([]byte, error)
	Close() error
}

// Transport error kinds. Implementations wrap these so callers can classify
// failures with errors.Is without knowing the backend.
var (
	ErrDeviceNotFound  = errors.New("razer: device not found")
	ErrTransferTimeout = errors.New("razer: control transfer timed out")
	ErrTransferFailure = errors.New("razer: control transfer failed")
)

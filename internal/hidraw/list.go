package hidraw

import (
	"fmt"

	"github.com/karalabe/usb"

	"github.com/hidworks/nagactl/internal/razer"
)

// InterfaceInfo describes one HID interface exposed by the device. The Naga
// Trinity enumerates several: the mouse itself, the control interface and the
// auxiliary keyboard interface used in Driver mode.
type InterfaceInfo struct {
	Path      string
	Product   string
	Interface int
	UsagePage uint16
	Usage     uint16
}

// List enumerates every HID interface of the supported device.
func List() ([]InterfaceInfo, error) {
	devs, err := usb.Enumerate(razer.VendorID, razer.ProductID)
	if err != nil {
		return nil, fmt.Errorf("enumerate: %w", err)
	}

	out := make([]InterfaceInfo, 0, len(devs))
	for _, d := range devs {
		out = append(out, InterfaceInfo{
			Path:      d.Path,
			Product:   d.Product,
			Interface: d.Interface,
			UsagePage: d.UsagePage,
			Usage:     d.Usage,
		})
	}
	return out, nil
}

package buttons

import (
	"fmt"
	"strings"

	"github.com/holoplot/go-evdev"
)

// In Driver mode the side buttons surface on a separate HID interface whose
// input node carries both markers in its name.
const (
	vendorMarker    = "Razer"
	interfaceMarker = "Keyboard"
)

// EventDevice is the slice of an evdev input node the session needs.
type EventDevice interface {
	Name() string
	Path() string
	Grab() error
	Ungrab() error
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// FindKeyboard locates the device's auxiliary keyboard interface among the
// system's input nodes. Returns ErrInputInterfaceNotFound when no node
// matches.
func FindKeyboard() (EventDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	for _, p := range paths {
		if !strings.Contains(p.Name, vendorMarker) || !strings.Contains(p.Name, interfaceMarker) {
			continue
		}
		dev, err := evdev.Open(p.Path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p.Path, err)
		}
		return &inputDevice{dev: dev, path: p.Path, name: p.Name}, nil
	}
	return nil, ErrInputInterfaceNotFound
}

type inputDevice struct {
	dev  *evdev.InputDevice
	path string
	name string
}

func (d *inputDevice) Name() string                        { return d.name }
func (d *inputDevice) Path() string                        { return d.path }
func (d *inputDevice) Grab() error                         { return d.dev.Grab() }
func (d *inputDevice) Ungrab() error                       { return d.dev.Ungrab() }
func (d *inputDevice) ReadOne() (*evdev.InputEvent, error) { return d.dev.ReadOne() }
func (d *inputDevice) Close() error                        { return d.dev.Close() }

// KeyName resolves a raw key code to its symbolic name, with a generic
// KEY_<code> label for codes the table does not know.
func KeyName(code uint16) string {
	name := evdev.CodeName(evdev.EV_KEY, evdev.EvCode(code))
	if strings.HasPrefix(name, "KEY_") || strings.HasPrefix(name, "BTN_") {
		return name
	}
	return fmt.Sprintf("KEY_%d", code)
}

package razer

import "fmt"

const (
	ClassGeneral = 0x00

	CmdSetDeviceMode = 0x04
	CmdGetDeviceMode = 0x84
)

// Mode is the device's runtime operating mode.
type Mode byte

const (
	// ModeNormal is the passive default: side buttons produce no input.
	ModeNormal Mode = 0x00
	// ModeDriver exposes side buttons as keyboard keys on an auxiliary
	// input interface for host-side interpretation.
	ModeDriver Mode = 0x03
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeDriver:
		return "Driver"
	default:
		return fmt.Sprintf("Mode(0x%02x)", byte(m))
	}
}

// SetDeviceMode builds the frame that switches the device into mode.
// The second argument byte is a parameter the Naga Trinity ignores.
func SetDeviceMode(m Mode) []byte {
	frame, _ := Encode(ClassGeneral, CmdSetDeviceMode, []byte{byte(m), 0x00})
	return frame
}

// GetDeviceMode builds the frame that queries the current mode.
func GetDeviceMode() []byte {
	frame, _ := Encode(ClassGeneral, CmdGetDeviceMode, nil)
	return frame
}

// ParseDeviceMode reads the mode and its parameter byte from a get-mode
// response payload.
func ParseDeviceMode(payload []byte) (Mode, byte) {
	return Mode(payload[0]), payload[1]
}

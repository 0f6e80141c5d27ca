package razer

import "encoding/binary"

const (
	ClassMouse = 0x04

	CmdSetDPI = 0x05
	CmdGetDPI = 0x85
)

// Variable storage selectors carried in the first argument byte of DPI
// commands.
const (
	NoStore  = 0x00 // temporary, lost on power cycle
	VarStore = 0x01 // persisted in device memory
)

// GetDPI builds the DPI query frame. The 7-byte argument block is what the
// Naga Trinity firmware requires for this command.
func GetDPI() []byte {
	payload := make([]byte, 7)
	payload[0] = NoStore
	frame, _ := Encode(ClassMouse, CmdGetDPI, payload)
	return frame
}

// SetDPI builds the frame that persists a new X/Y DPI pair.
func SetDPI(x, y uint16) []byte {
	payload := make([]byte, 7)
	payload[0] = VarStore
	binary.BigEndian.PutUint16(payload[1:3], x)
	binary.BigEndian.PutUint16(payload[3:5], y)
	frame, _ := Encode(ClassMouse, CmdSetDPI, payload)
	return frame
}

// ParseDPI reads the X/Y DPI pair from a DPI response payload. Byte 0 echoes
// the storage selector.
func ParseDPI(payload []byte) (x, y uint16) {
	x = binary.BigEndian.Uint16(payload[1:3])
	y = binary.BigEndian.Uint16(payload[3:5])
	return x, y
}

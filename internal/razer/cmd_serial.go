package razer

import "strings"

const CmdGetSerialNumber = 0x82

const serialLength = 22

// GetSerialNumber builds the serial query frame with room for the 22-byte
// ASCII serial the device reports.
func GetSerialNumber() []byte {
	frame, _ := Encode(ClassGeneral, CmdGetSerialNumber, make([]byte, serialLength))
	return frame
}

// ParseSerialNumber extracts the serial string, trimming trailing NULs.
func ParseSerialNumber(payload []byte) string {
	s := string(payload[:serialLength])
	return strings.TrimRight(s, "\x00")
}

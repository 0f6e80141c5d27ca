package razer

import "fmt"

const CmdGetFirmwareVersion = 0x81

// GetFirmwareVersion builds the firmware query frame. The payload carries two
// zero argument bytes so the wire data size matches what the firmware expects
// to fill in.
func GetFirmwareVersion() []byte {
	frame, _ := Encode(ClassGeneral, CmdGetFirmwareVersion, make([]byte, 2))
	return frame
}

// ParseFirmwareVersion formats the major/minor pair from a firmware response.
func ParseFirmwareVersion(payload []byte) string {
	return fmt.Sprintf("v%d.%d", payload[0], payload[1])
}

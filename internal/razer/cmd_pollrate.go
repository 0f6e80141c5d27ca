package razer

import "fmt"

const (
	CmdSetPollingRate = 0x05
	CmdGetPollingRate = 0x85
)

// GetPollingRate builds the polling-rate query frame.
func GetPollingRate() []byte {
	frame, _ := Encode(ClassGeneral, CmdGetPollingRate, make([]byte, 1))
	return frame
}

// SetPollingRate builds the frame selecting a report rate in Hz. The device
// stores the rate as a millisecond interval.
func SetPollingRate(hz uint16) ([]byte, error) {
	var interval byte
	switch hz {
	case 125:
		interval = 8
	case 500:
		interval = 2
	case 1000:
		interval = 1
	default:
		return nil, fmt.Errorf("razer: unsupported polling rate %d Hz (use 125, 500 or 1000)", hz)
	}
	frame, _ := Encode(ClassGeneral, CmdSetPollingRate, []byte{interval})
	return frame, nil
}

// ParsePollingRate converts the interval byte of a polling-rate response to
// Hz. A zero interval is reported by some firmware for 1000 Hz.
func ParsePollingRate(payload []byte) uint16 {
	interval := uint16(payload[0])
	if interval == 0 {
		return 1000
	}
	return 1000 / interval
}

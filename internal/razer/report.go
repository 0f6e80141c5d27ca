// Package razer implements the vendor control-report protocol spoken by the
// Razer Naga Trinity. Every command and response travels in a fixed 90-byte
// report frame:
//
//	Byte 0:     Status (0x00 = new command)
//	Byte 1:     Transaction ID (0x1f for this device)
//	Bytes 2-3:  Remaining packets (0x0000 for single packet)
//	Byte 4:     Protocol type (0x00)
//	Byte 5:     Data size
//	Byte 6:     Command class
//	Byte 7:     Command ID
//	Bytes 8-87: Arguments (80 bytes, zero padded)
//	Byte 88:    Checksum (XOR of bytes 2-87)
//	Byte 89:    Reserved (0x00)
package razer

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	// FrameSize is the exact length of every report frame on the wire.
	FrameSize = 90

	// MaxPayload is the capacity of the argument region.
	MaxPayload = 80

	// TransactionID identifies the host on newer wireless-generation firmware.
	TransactionID = 0x1f

	payloadOffset  = 8
	payloadEnd     = 88
	checksumOffset = 88
)

var (
	ErrInvalidPayloadSize = errors.New("razer: payload exceeds 80 bytes")
	ErrMalformedFrame     = errors.New("razer: response is not a 90-byte report frame")
)

// Report holds the decoded fields of a device response frame.
type Report struct {
	Status        byte
	TransactionID byte
	DataSize      byte
	Class         byte
	ID            byte
	Payload       []byte // 80 bytes, verbatim from the frame
}

// Encode builds a complete report frame for the given command. The checksum
// is always recomputed from the final contents, never supplied by the caller.
func Encode(class, id byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPayloadSize, len(payload))
	}

	frame := make([]byte, FrameSize)
	frame[1] = TransactionID
	frame[5] = byte(len(payload))
	frame[6] = class
	frame[7] = id
	copy(frame[payloadOffset:payloadEnd], payload)
	frame[checksumOffset] = Checksum(frame)
	return frame, nil
}

// Decode parses a 90-byte device response. The device's checksum is treated
// as advisory: some firmware revisions fill it differently, so a mismatch is
// logged but never fails the decode.
func Decode(buf []byte) (Report, error) {
	if len(buf) != FrameSize {
		return Report{}, fmt.Errorf("%w: got %d bytes", ErrMalformedFrame, len(buf))
	}

	if got, want := buf[checksumOffset], Checksum(buf); got != want {
		slog.Warn("response checksum mismatch",
			slog.Int("declared", int(got)),
			slog.Int("computed", int(want)))
	}

	payload := make([]byte, MaxPayload)
	copy(payload, buf[payloadOffset:payloadEnd])

	return Report{
		Status:        buf[0],
		TransactionID: buf[1],
		DataSize:      buf[5],
		Class:         buf[6],
		ID:            buf[7],
		Payload:       payload,
	}, nil
}

// Checksum folds bytes 2 through 87 of a frame with XOR.
func Checksum(frame []byte) byte {
	var c byte
	for _, b := range frame[2:payloadEnd] {
		c ^= b
	}
	return c
}

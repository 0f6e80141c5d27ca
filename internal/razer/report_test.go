package razer

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		class   byte
		id      byte
		payload []byte
	}{
		{"empty", 0x00, 0x84, nil},
		{"setmode", 0x00, 0x04, []byte{0x03, 0x00}},
		{"dpi", 0x04, 0x85, []byte{0x00, 0x1c, 0x20, 0x1c, 0x20, 0x00, 0x00}},
		{"max", 0x04, 0x05, bytes.Repeat([]byte{0xab}, 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := Encode(tt.class, tt.id, tt.payload)
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}
			r, err := Decode(frame)
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if r.Class != tt.class || r.ID != tt.id {
				t.Fatalf("class/id mismatch: got %02x/%02x", r.Class, r.ID)
			}
			if !bytes.Equal(r.Payload[:len(tt.payload)], tt.payload) {
				t.Fatalf("payload mismatch: %v != %v", r.Payload[:len(tt.payload)], tt.payload)
			}
			for _, b := range r.Payload[len(tt.payload):] {
				if b != 0 {
					t.Fatalf("payload region not zero padded")
				}
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode(0x00, 0x04, []byte{0x03, 0x00})
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	b, err := Encode(0x00, 0x04, []byte{0x03, 0x00})
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("encoding is not deterministic")
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	frame, err := Encode(0x00, 0x84, nil)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if frame[5] != 0x00 {
		t.Fatalf("data size: got %02x, want 00", frame[5])
	}
	for i := 8; i < 88; i++ {
		if frame[i] != 0 {
			t.Fatalf("payload region not zero at offset %d", i)
		}
	}
}

func TestEncodePayloadTooLarge(t *testing.T) {
	_, err := Encode(0x00, 0x04, make([]byte, 81))
	if err == nil {
		t.Fatalf("expected error for 81-byte payload")
	}
	if !bytes.Contains([]byte(err.Error()), []byte("payload exceeds")) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 89, 91, 180} {
		if _, err := Decode(make([]byte, n)); err == nil {
			t.Fatalf("expected malformed frame error for %d bytes", n)
		}
	}
}

func TestEncodeSetDriverModeVector(t *testing.T) {
	frame, err := Encode(0x00, 0x04, []byte{0x03, 0x00})
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if len(frame) != FrameSize {
		t.Fatalf("frame length: got %d", len(frame))
	}
	if frame[0] != 0x00 || frame[1] != 0x1f {
		t.Fatalf("header bytes: got %02x %02x", frame[0], frame[1])
	}
	if frame[5] != 0x02 || frame[6] != 0x00 || frame[7] != 0x04 {
		t.Fatalf("size/class/id: got %02x %02x %02x", frame[5], frame[6], frame[7])
	}
	if frame[8] != 0x03 || frame[9] != 0x00 {
		t.Fatalf("arguments: got %02x %02x", frame[8], frame[9])
	}

	var want byte
	for i := 2; i < 88; i++ {
		want ^= frame[i]
	}
	if frame[88] != want {
		t.Fatalf("checksum: got %02x, want %02x", frame[88], want)
	}
	if frame[89] != 0x00 {
		t.Fatalf("reserved byte: got %02x", frame[89])
	}
}

func TestDecodeChecksumAdvisory(t *testing.T) {
	frame, err := Encode(0x00, 0x84, nil)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	frame[88] ^= 0xff // corrupt the checksum
	if _, err := Decode(frame); err != nil {
		t.Fatalf("checksum mismatch must not fail decode: %v", err)
	}
}

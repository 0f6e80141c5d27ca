package mode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hidworks/nagactl/internal/razer"
)

// fakeTransport records sent frames and plays back scripted responses.
type fakeTransport struct {
	sent      [][]byte
	responses [][]byte
	sendErr   error
	readErr   error
}

func (f *fakeTransport) SendReport(_ context.Context, frame []byte) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	cp := make([]byte, len(frame))
	copy(cp, frame)
	f.sent = append(f.sent, cp)
	return nil
}

func (f *fakeTransport) ReadReport(_ context.Context) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if len(f.responses) == 0 {
		return nil, razer.ErrTransferTimeout
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r, nil
}

func (f *fakeTransport) Close() error { return nil }

func modeResponse(t *testing.T, m razer.Mode) []byte {
	t.Helper()
	frame, err := razer.Encode(razer.ClassGeneral, razer.CmdGetDeviceMode, []byte{byte(m), 0x00})
	if err != nil {
		t.Fatalf("build response: %v", err)
	}
	return frame
}

func newController(tr razer.Transport) *Controller {
	return &Controller{
		Transport:   tr,
		SettleDelay: time.Millisecond,
		ReadDelay:   time.Millisecond,
	}
}

func TestSetVerified(t *testing.T) {
	tr := &fakeTransport{responses: [][]byte{modeResponse(t, razer.ModeDriver)}}
	c := newController(tr)

	got, err := c.Set(context.Background(), razer.ModeDriver)
	if err != nil {
		t.Fatalf("set error: %v", err)
	}
	if got != razer.ModeDriver {
		t.Fatalf("observed mode: %s", got)
	}

	if len(tr.sent) != 2 {
		t.Fatalf("expected set + get frames, sent %d", len(tr.sent))
	}
	set := tr.sent[0]
	if set[6] != 0x00 || set[7] != 0x04 || set[8] != 0x03 {
		t.Fatalf("set frame wrong: class %02x id %02x arg %02x", set[6], set[7], set[8])
	}
	get := tr.sent[1]
	if get[6] != 0x00 || get[7] != 0x84 {
		t.Fatalf("get frame wrong: class %02x id %02x", get[6], get[7])
	}
}

func TestSetMismatch(t *testing.T) {
	// Device acknowledges but still reports Normal.
	tr := &fakeTransport{responses: [][]byte{modeResponse(t, razer.ModeNormal)}}
	c := newController(tr)

	got, err := c.Set(context.Background(), razer.ModeDriver)
	if err == nil {
		t.Fatalf("expected mismatch error, got mode %s", got)
	}
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("expected *MismatchError, got %v", err)
	}
	if mm.Requested != razer.ModeDriver || mm.Observed != razer.ModeNormal {
		t.Fatalf("mismatch fields: requested %s observed %s", mm.Requested, mm.Observed)
	}
}

func TestSetTransferErrors(t *testing.T) {
	tr := &fakeTransport{sendErr: razer.ErrTransferTimeout}
	c := newController(tr)
	if _, err := c.Set(context.Background(), razer.ModeDriver); !errors.Is(err, razer.ErrTransferTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}

	tr = &fakeTransport{readErr: razer.ErrTransferFailure}
	c = newController(tr)
	if _, err := c.Set(context.Background(), razer.ModeDriver); !errors.Is(err, razer.ErrTransferFailure) {
		t.Fatalf("expected transfer failure, got %v", err)
	}
}

func TestGet(t *testing.T) {
	tr := &fakeTransport{responses: [][]byte{modeResponse(t, razer.ModeNormal)}}
	c := newController(tr)

	got, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got != razer.ModeNormal {
		t.Fatalf("mode: %s", got)
	}
}

func TestGetShortResponse(t *testing.T) {
	tr := &fakeTransport{responses: [][]byte{make([]byte, 12)}}
	c := newController(tr)
	if _, err := c.Get(context.Background()); !errors.Is(err, razer.ErrMalformedFrame) {
		t.Fatalf("expected malformed frame, got %v", err)
	}
}

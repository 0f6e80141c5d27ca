// Package buttons runs the interactive side-button discovery session: put
// the device in Driver mode, grab its auxiliary keyboard interface, record
// which key code each physical button emits, and leave the device in Normal
// mode no matter how the session ends.
package buttons

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/holoplot/go-evdev"

	"github.com/hidworks/nagactl/internal/razer"
)

var (
	ErrInputInterfaceNotFound = errors.New("buttons: auxiliary keyboard interface not found")
	ErrGrabFailed             = errors.New("buttons: could not grab input interface")
)

const keyPress = 1 // event values: 0 release, 1 press, 2 repeat

// ModeSetter is the mode-switching capability the session depends on.
type ModeSetter interface {
	Set(ctx context.Context, m razer.Mode) (razer.Mode, error)
}

// Session owns the discovered button mapping and, while running, the
// exclusive grab on the input interface. Neither outlives Run.
type Session struct {
	Modes ModeSetter

	// Find locates the auxiliary input interface. Defaults to FindKeyboard.
	Find func() (EventDevice, error)

	// Resolve maps a key code to its display name. Defaults to KeyName.
	Resolve func(code uint16) string

	// OnPress, when set, is invoked for every recorded key press.
	OnPress func(code uint16, name string)
}

// Run drives the discovery session until ctx is cancelled. Cancellation is
// the normal way to finish: the mapping built so far is returned alongside a
// nil error. Once Driver mode has been entered, exactly one attempt to
// restore Normal mode is made on every exit path; if that attempt fails its
// error is joined with any earlier one rather than replacing it.
func (s *Session) Run(ctx context.Context) (mapping map[uint16]string, err error) {
	if _, err := s.Modes.Set(ctx, razer.ModeDriver); err != nil {
		// The switch itself failed cleanly; the device was never left in
		// Driver mode, so there is nothing to reset.
		return nil, fmt.Errorf("enter driver mode: %w", err)
	}

	defer func() {
		if _, resetErr := s.Modes.Set(context.WithoutCancel(ctx), razer.ModeNormal); resetErr != nil {
			err = errors.Join(err, fmt.Errorf("restore normal mode: %w", resetErr))
		}
	}()

	find := s.Find
	if find == nil {
		find = FindKeyboard
	}
	dev, err := find()
	if err != nil {
		return nil, err
	}
	defer dev.Close()

	if err := dev.Grab(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrabFailed, err)
	}
	defer func() {
		if uerr := dev.Ungrab(); uerr != nil && ctx.Err() == nil {
			slog.Warn("ungrab failed", slog.Any("error", uerr))
		}
	}()

	// Closing the node unblocks the pending read; the kernel drops the grab
	// with the file descriptor.
	stop := context.AfterFunc(ctx, func() { dev.Close() })
	defer stop()

	slog.Info("listening for side buttons",
		slog.String("device", dev.Name()),
		slog.String("path", dev.Path()))

	resolve := s.Resolve
	if resolve == nil {
		resolve = KeyName
	}

	mapping = make(map[uint16]string)
	for {
		ev, readErr := dev.ReadOne()
		if readErr != nil {
			if ctx.Err() != nil {
				return mapping, nil
			}
			return mapping, fmt.Errorf("read input event: %w", readErr)
		}
		if ev.Type != evdev.EV_KEY || ev.Value != keyPress {
			continue
		}

		code := uint16(ev.Code)
		name := resolve(code)
		mapping[code] = name
		slog.Debug("key pressed", slog.String("key", name), slog.Int("code", int(code)))
		if s.OnPress != nil {
			s.OnPress(code, name)
		}
	}
}

// Package dispatch runs the single-threaded control loop multiplexing
// terminal input and uhid device events.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/kbforge/uhidkbd/device/keyboard"
	"github.com/kbforge/uhidkbd/uhid"
)

// inputChunkSize bounds a single drain of the input stream.
const inputChunkSize = 128

// Loop owns the two stream handles and routes readiness: input bytes go
// through the translator, device records through the gateway. Everything
// runs on the calling goroutine; the poll call is the only suspension point.
type Loop struct {
	dev     *uhid.Device
	tr      *keyboard.Translator
	inputFd int
	logger  *slog.Logger
}

// New returns a Loop reading keyboard bytes from inputFd and events from dev.
func New(dev *uhid.Device, tr *keyboard.Translator, inputFd int, logger *slog.Logger) *Loop {
	return &Loop{dev: dev, tr: tr, inputFd: inputFd, logger: logger}
}

// Run polls both sources until one hangs up or the context is canceled;
// both are clean shutdowns and return nil. Keyboard input is always
// serviced before device events within one wakeup, so output ordering is
// deterministic.
func (l *Loop) Run(ctx context.Context) error {
	fds := []unix.PollFd{
		{Fd: int32(l.inputFd), Events: unix.POLLIN},
		{Fd: int32(l.dev.Fd()), Events: unix.POLLIN},
	}
	buf := make([]byte, inputChunkSize)

	for {
		if ctx.Err() != nil {
			l.logger.Info("shutdown requested")
			return nil
		}
		if _, err := unix.Poll(fds, -1); err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("poll: %w", err)
		}

		if fds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			l.logger.Info("hangup on input stream")
			return nil
		}
		if fds[1].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			l.logger.Info("hangup on uhid device")
			return nil
		}

		if fds[0].Revents&unix.POLLIN != 0 {
			n, err := unix.Read(l.inputFd, buf)
			if err != nil {
				if errors.Is(err, unix.EINTR) {
					continue
				}
				return fmt.Errorf("read input: %w", err)
			}
			if n == 0 {
				l.logger.Info("input stream closed")
				return nil
			}
			if err := l.tr.Translate(buf[:n]); err != nil {
				return err
			}
		}

		if fds[1].Revents&unix.POLLIN != 0 {
			done, err := l.handleDeviceEvent()
			if done || err != nil {
				return err
			}
		}
	}
}

// handleDeviceEvent reads and classifies one record from the device. LED
// output reports are decoded for diagnostics; unknown event tags are logged
// and skipped; a disconnect ends the loop cleanly.
func (l *Loop) handleDeviceEvent() (done bool, err error) {
	ev, err := l.dev.ReadEvent()
	if err != nil {
		var unknown *uhid.UnknownEventError
		switch {
		case errors.Is(err, uhid.ErrDisconnected):
			l.logger.Info("uhid device disconnected")
			return true, nil
		case errors.As(err, &unknown):
			l.logger.Warn("ignoring unknown uhid event", "type", unknown.Type)
			return false, nil
		default:
			return true, err
		}
	}

	switch ev.Type {
	case uhid.EventOutput:
		if flags, ok := uhid.DecodeOutput(ev); ok {
			led := keyboard.LEDStateFromByte(flags)
			l.logger.Info("LED output report",
				"flags", fmt.Sprintf("%#02x", flags),
				"numlock", led.NumLock,
				"capslock", led.CapsLock,
				"scrolllock", led.ScrollLock)
		} else {
			l.logger.Debug("uhid output report", "rtype", ev.OutputRType, "size", len(ev.OutputData))
		}
	default:
		l.logger.Debug("uhid event", "type", ev.Type.String())
	}
	return false, nil
}

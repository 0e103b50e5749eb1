package keyboard

import (
	"fmt"
	"log/slog"
)

// ReportWriter consumes encoded HID input reports. *uhid.Device satisfies it;
// tests substitute an in-memory sink.
type ReportWriter interface {
	WriteInput(report []byte) error
}

const (
	asciiEsc = 0x1B

	// escapeBufSize bounds a partially received CSI sequence; anything
	// longer is dropped as noise.
	escapeBufSize = 8
)

// Translator converts raw terminal bytes into pairs of press/release input
// reports. Every mapped byte produces exactly one press report and one
// release report; there is no sustained key-hold model. Partial ANSI escape
// sequences are buffered across input chunks, so ESC '[' 'A' resolves to the
// Up arrow no matter how the bytes are split.
type Translator struct {
	state  State
	out    ReportWriter
	logger *slog.Logger

	esc    [escapeBufSize]byte
	escLen int
}

// NewTranslator returns a Translator emitting reports to out.
func NewTranslator(out ReportWriter, logger *slog.Logger) *Translator {
	return &Translator{out: out, logger: logger}
}

// Translate processes one chunk of input bytes. Unmapped bytes and
// unsupported escape sequences are dropped silently; only report writes can
// fail.
func (t *Translator) Translate(buf []byte) error {
	for _, b := range buf {
		if err := t.feed(b); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) feed(b byte) error {
	switch t.escLen {
	case 0:
		if b == asciiEsc {
			t.bufferEscape(b)
			return nil
		}
		return t.translateByte(b)
	case 1:
		if b == '[' {
			t.bufferEscape(b)
			return nil
		}
		// Not a CSI introducer after all: the buffered ESC was a
		// standalone Escape key, and the current byte stands on its own.
		t.escLen = 0
		if err := t.tap(KeyEscape, false); err != nil {
			return err
		}
		return t.feed(b)
	default:
		t.bufferEscape(b)
		return t.resolveEscape()
	}
}

// resolveEscape inspects a complete ESC '[' <X> sequence. Arrow finals map
// to their usage codes; any other final drops the whole sequence.
func (t *Translator) resolveEscape() error {
	if t.escLen < 3 {
		return nil
	}
	final := t.esc[2]
	t.escLen = 0

	var code uint8
	switch final {
	case 'A':
		code = KeyUp
	case 'B':
		code = KeyDown
	case 'C':
		code = KeyRight
	case 'D':
		code = KeyLeft
	default:
		t.logger.Debug("dropping unsupported escape sequence", "final", fmt.Sprintf("%q", final))
		return nil
	}
	t.logger.Debug("arrow key", "key", KeyName[code])
	return t.tap(code, false)
}

func (t *Translator) bufferEscape(b byte) {
	if t.escLen >= escapeBufSize {
		// Overflow before the sequence resolved; treat it all as noise.
		t.escLen = 0
		return
	}
	t.esc[t.escLen] = b
	t.escLen++
}

func (t *Translator) translateByte(b byte) error {
	code := CharToHID(b)
	if code == 0 {
		t.logger.Debug("unmapped input byte", "byte", fmt.Sprintf("%#02x", b))
		return nil
	}
	t.logger.Debug("key", "key", KeyName[code], "byte", fmt.Sprintf("%#02x", b))
	return t.tap(code, NeedsShift(b))
}

// tap emits a press report followed by a release report for one usage code.
// Shift is asserted only for the press report.
func (t *Translator) tap(code uint8, shift bool) error {
	if shift {
		t.state.SetModifier(ModLeftShift, true)
	}
	t.state.Press(code)
	if err := t.out.WriteInput(t.state.BuildReport()); err != nil {
		return err
	}
	t.state.Release(code)
	if shift {
		t.state.SetModifier(ModLeftShift, false)
	}
	return t.out.WriteInput(t.state.BuildReport())
}

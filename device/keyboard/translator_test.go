package keyboard_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbforge/uhidkbd/device/keyboard"
)

// reportSink records every emitted input report.
type reportSink struct {
	reports [][]byte
	err     error
}

func (s *reportSink) WriteInput(report []byte) error {
	if s.err != nil {
		return s.err
	}
	cp := make([]byte, len(report))
	copy(cp, report)
	s.reports = append(s.reports, cp)
	return nil
}

func newTranslator() (*keyboard.Translator, *reportSink) {
	sink := &reportSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return keyboard.NewTranslator(sink, logger), sink
}

func release() []byte {
	return make([]byte, keyboard.ReportSize)
}

func press(modifiers uint8, codes ...byte) []byte {
	b := make([]byte, keyboard.ReportSize)
	b[0] = modifiers
	copy(b[2:], codes)
	return b
}

func TestLowercaseLetter(t *testing.T) {
	tr, sink := newTranslator()
	require.NoError(t, tr.Translate([]byte("q")))

	require.Len(t, sink.reports, 2, "one press and one release report")
	assert.Equal(t, press(0, keyboard.KeyQ), sink.reports[0])
	assert.Equal(t, release(), sink.reports[1])
}

func TestUppercaseLetterShifts(t *testing.T) {
	tr, sink := newTranslator()
	require.NoError(t, tr.Translate([]byte("Q")))

	require.Len(t, sink.reports, 2)
	assert.Equal(t, press(keyboard.ModLeftShift, keyboard.KeyQ), sink.reports[0],
		"press report carries left shift")
	assert.Equal(t, release(), sink.reports[1],
		"release report clears shift along with the key")
}

func TestArrowSequences(t *testing.T) {
	tests := []struct {
		final byte
		code  byte
	}{
		{'A', keyboard.KeyUp},
		{'B', keyboard.KeyDown},
		{'C', keyboard.KeyRight},
		{'D', keyboard.KeyLeft},
	}
	for _, tt := range tests {
		tr, sink := newTranslator()
		require.NoError(t, tr.Translate([]byte{0x1B, '[', tt.final}))

		require.Len(t, sink.reports, 2, "final %q", tt.final)
		assert.Equal(t, press(0, tt.code), sink.reports[0], "arrow keys never assert shift")
		assert.Equal(t, release(), sink.reports[1])
	}
}

func TestArrowSequenceAcrossChunks(t *testing.T) {
	chunkings := [][][]byte{
		{{0x1B}, {'[', 'A'}},
		{{0x1B, '['}, {'A'}},
		{{0x1B}, {'['}, {'A'}},
	}
	for _, chunks := range chunkings {
		tr, sink := newTranslator()
		for _, c := range chunks {
			require.NoError(t, tr.Translate(c))
		}
		require.Len(t, sink.reports, 2,
			"no intermediate reports for partial sequences, split %v", chunks)
		assert.Equal(t, press(0, keyboard.KeyUp), sink.reports[0])
		assert.Equal(t, release(), sink.reports[1])
	}
}

func TestUnsupportedEscapeSequenceDropped(t *testing.T) {
	tr, sink := newTranslator()
	require.NoError(t, tr.Translate([]byte{0x1B, '[', 'Z'}))
	assert.Empty(t, sink.reports, "unsupported CSI finals produce no output")

	// The buffer must be reset: a following arrow sequence still resolves.
	require.NoError(t, tr.Translate([]byte{0x1B, '[', 'B'}))
	require.Len(t, sink.reports, 2)
	assert.Equal(t, press(0, keyboard.KeyDown), sink.reports[0])
}

func TestStandaloneEscapeThenLetter(t *testing.T) {
	tr, sink := newTranslator()
	require.NoError(t, tr.Translate([]byte{0x1B, 'x'}))

	require.Len(t, sink.reports, 4, "escape tap then letter tap")
	assert.Equal(t, press(0, keyboard.KeyEscape), sink.reports[0])
	assert.Equal(t, release(), sink.reports[1])
	assert.Equal(t, press(0, keyboard.KeyX), sink.reports[2])
	assert.Equal(t, release(), sink.reports[3])
}

func TestTrailingEscapeStaysPending(t *testing.T) {
	tr, sink := newTranslator()
	require.NoError(t, tr.Translate([]byte{0x1B}))
	assert.Empty(t, sink.reports, "a trailing ESC waits for the next byte")

	require.NoError(t, tr.Translate([]byte{'q'}))
	require.Len(t, sink.reports, 4)
	assert.Equal(t, press(0, keyboard.KeyEscape), sink.reports[0])
	assert.Equal(t, press(0, keyboard.KeyQ), sink.reports[2])
}

func TestUnmappedBytesDropped(t *testing.T) {
	tr, sink := newTranslator()
	require.NoError(t, tr.Translate([]byte{0x01, 0x7F, 0xC3}))
	assert.Empty(t, sink.reports)
}

func TestTextSequence(t *testing.T) {
	tr, sink := newTranslator()
	require.NoError(t, tr.Translate([]byte("Hi 5\n")))

	require.Len(t, sink.reports, 10, "each byte emits a press/release pair")
	assert.Equal(t, press(keyboard.ModLeftShift, keyboard.KeyH), sink.reports[0])
	assert.Equal(t, press(0, keyboard.KeyI), sink.reports[2])
	assert.Equal(t, press(0, keyboard.KeySpace), sink.reports[4])
	assert.Equal(t, press(0, keyboard.Key5), sink.reports[6])
	assert.Equal(t, press(0, keyboard.KeyEnter), sink.reports[8])
	for i := 1; i < 10; i += 2 {
		assert.Equal(t, release(), sink.reports[i])
	}
}

func TestWriteErrorPropagates(t *testing.T) {
	sink := &reportSink{err: assert.AnError}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tr := keyboard.NewTranslator(sink, logger)

	err := tr.Translate([]byte("q"))
	assert.ErrorIs(t, err, assert.AnError)
}

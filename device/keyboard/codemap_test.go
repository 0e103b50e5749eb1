package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kbforge/uhidkbd/device/keyboard"
)

func TestLettersMapCaseInsensitive(t *testing.T) {
	for c := byte('a'); c <= 'z'; c++ {
		upper := c - 'a' + 'A'
		lowerCode := keyboard.CharToHID(c)
		upperCode := keyboard.CharToHID(upper)

		assert.NotZero(t, lowerCode, "letter %q must map", c)
		assert.Equal(t, lowerCode, upperCode, "case must not change the usage code for %q", c)
		assert.False(t, keyboard.NeedsShift(c), "lowercase %q must not shift", c)
		assert.True(t, keyboard.NeedsShift(upper), "uppercase %q must shift", upper)
	}
}

func TestDigitAndSymbolMapping(t *testing.T) {
	tests := []struct {
		in   byte
		want uint8
	}{
		{'1', keyboard.Key1},
		{'9', keyboard.Key9},
		{'0', keyboard.Key0},
		// Digit-row symbols share the digit usage codes.
		{'!', keyboard.Key1},
		{'@', keyboard.Key2},
		{'#', keyboard.Key3},
		{'$', keyboard.Key4},
		{'%', keyboard.Key5},
		{'^', keyboard.Key6},
		{'&', keyboard.Key7},
		{'*', keyboard.Key8},
		{'(', keyboard.Key9},
		{')', keyboard.Key0},
		{'-', keyboard.KeyMinus},
		{'=', keyboard.KeyEqual},
		{'[', keyboard.KeyLeftBrace},
		{']', keyboard.KeyRightBrace},
		{'\\', keyboard.KeyBackslash},
		{';', keyboard.KeySemicolon},
		{'\'', keyboard.KeyApostrophe},
		{'`', keyboard.KeyGrave},
		{',', keyboard.KeyComma},
		{'.', keyboard.KeyPeriod},
		{'/', keyboard.KeySlash},
		{' ', keyboard.KeySpace},
		{'\n', keyboard.KeyEnter},
		{'\r', keyboard.KeyEnter},
		{'\b', keyboard.KeyBackspace},
		{'\t', keyboard.KeyTab},
		{0x1B, keyboard.KeyEscape},
	}

	for _, tt := range tests {
		got := keyboard.CharToHID(tt.in)
		assert.Equal(t, tt.want, got, "byte %q", tt.in)
		assert.Equal(t, got, keyboard.CharToHID(tt.in), "mapping must be stable for %q", tt.in)
		assert.False(t, keyboard.NeedsShift(tt.in), "byte %q must not shift", tt.in)
	}
}

func TestUnmappedBytes(t *testing.T) {
	for _, c := range []byte{0x00, 0x01, 0x07, 0x7F, 0x80, 0xFF, '_', '+', '{', '}', '?'} {
		assert.Zero(t, keyboard.CharToHID(c), "byte %#02x has no key on this keyboard", c)
	}
}

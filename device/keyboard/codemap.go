package keyboard

// CharToKey maps input bytes to HID usage codes. The table matches the key
// layout the report descriptor was written for: digit-row symbols share the
// usage code of their digit and carry no shift of their own, which is what
// the receiving host expects from this descriptor. Bytes without an entry
// have no key on the emulated keyboard.
var CharToKey = map[byte]uint8{
	// Lowercase letters
	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE, 'f': KeyF, 'g': KeyG,
	'h': KeyH, 'i': KeyI, 'j': KeyJ, 'k': KeyK, 'l': KeyL, 'm': KeyM, 'n': KeyN,
	'o': KeyO, 'p': KeyP, 'q': KeyQ, 'r': KeyR, 's': KeyS, 't': KeyT, 'u': KeyU,
	'v': KeyV, 'w': KeyW, 'x': KeyX, 'y': KeyY, 'z': KeyZ,

	// Uppercase letters (same keys, shift is synthesized by the translator)
	'A': KeyA, 'B': KeyB, 'C': KeyC, 'D': KeyD, 'E': KeyE, 'F': KeyF, 'G': KeyG,
	'H': KeyH, 'I': KeyI, 'J': KeyJ, 'K': KeyK, 'L': KeyL, 'M': KeyM, 'N': KeyN,
	'O': KeyO, 'P': KeyP, 'Q': KeyQ, 'R': KeyR, 'S': KeyS, 'T': KeyT, 'U': KeyU,
	'V': KeyV, 'W': KeyW, 'X': KeyX, 'Y': KeyY, 'Z': KeyZ,

	// Numbers (top row)
	'1': Key1, '2': Key2, '3': Key3, '4': Key4, '5': Key5,
	'6': Key6, '7': Key7, '8': Key8, '9': Key9, '0': Key0,

	// Digit-row symbols, sharing the digit usage codes
	'!': Key1, '@': Key2, '#': Key3, '$': Key4, '%': Key5,
	'^': Key6, '&': Key7, '*': Key8, '(': Key9, ')': Key0,

	// Unshifted symbols
	'-':  KeyMinus,
	'=':  KeyEqual,
	'[':  KeyLeftBrace,
	']':  KeyRightBrace,
	'\\': KeyBackslash,
	';':  KeySemicolon,
	'\'': KeyApostrophe,
	'`':  KeyGrave,
	',':  KeyComma,
	'.':  KeyPeriod,
	'/':  KeySlash,

	// Whitespace and control bytes
	' ':  KeySpace,
	'\n': KeyEnter,
	'\r': KeyEnter,
	'\b': KeyBackspace,
	'\t': KeyTab,
	0x1B: KeyEscape,
}

// CharToHID converts an input byte to its HID usage code.
// Returns 0 if the byte has no key on the emulated keyboard.
func CharToHID(c byte) uint8 {
	return CharToKey[c]
}

// NeedsShift reports whether typing the byte requires the Shift modifier.
// Only uppercase letters do: the symbol entries above map to the unshifted
// key on purpose.
func NeedsShift(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

package keyboard

// LEDState represents the state of the keyboard LEDs as controlled by the
// host via output reports.
type LEDState struct {
	NumLock    bool
	CapsLock   bool
	ScrollLock bool
	Compose    bool
	Kana       bool
}

// LEDStateFromByte decodes the flags byte of an LED output report.
func LEDStateFromByte(flags uint8) LEDState {
	return LEDState{
		NumLock:    flags&LEDNumLock != 0,
		CapsLock:   flags&LEDCapsLock != 0,
		ScrollLock: flags&LEDScrollLock != 0,
		Compose:    flags&LEDCompose != 0,
		Kana:       flags&LEDKana != 0,
	}
}

// Byte encodes the LED state back into the report flags byte.
func (l LEDState) Byte() uint8 {
	var b uint8
	if l.NumLock {
		b |= LEDNumLock
	}
	if l.CapsLock {
		b |= LEDCapsLock
	}
	if l.ScrollLock {
		b |= LEDScrollLock
	}
	if l.Compose {
		b |= LEDCompose
	}
	if l.Kana {
		b |= LEDKana
	}
	return b
}

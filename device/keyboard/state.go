// Package keyboard implements the emulated HID keyboard: usage-code tables,
// the report descriptor, pressed-key state, and the translator that turns
// raw terminal bytes into input reports.
package keyboard

// MaxKeys is the number of simultaneous key slots in the input report; the
// report descriptor declares a 6-slot array.
const MaxKeys = 6

// ReportSize is the size of one HID input report: modifiers, one reserved
// byte, six key slots.
const ReportSize = 8

// State tracks the modifier bits and currently pressed keys of the emulated
// keyboard. Pressed codes are kept in insertion order, are distinct, and
// never zero (zero means "no key" on the wire).
type State struct {
	Modifiers uint8

	keys [MaxKeys]uint8
	n    int
}

// Press adds a key to the pressed set. Pressing a key that is already down,
// a zero code, or a seventh key is a no-op: the report has six slots and
// excess presses are dropped rather than queued.
func (s *State) Press(code uint8) {
	if code == 0 || s.n >= MaxKeys {
		return
	}
	for i := 0; i < s.n; i++ {
		if s.keys[i] == code {
			return
		}
	}
	s.keys[s.n] = code
	s.n++
}

// Release removes a key from the pressed set, compacting the remaining keys
// and zeroing the vacated trailing slot. Releasing an absent key is a no-op.
func (s *State) Release(code uint8) {
	for i := 0; i < s.n; i++ {
		if s.keys[i] == code {
			copy(s.keys[i:s.n-1], s.keys[i+1:s.n])
			s.n--
			s.keys[s.n] = 0
			return
		}
	}
}

// SetModifier sets or clears the modifier bits in mask.
func (s *State) SetModifier(mask uint8, on bool) {
	if on {
		s.Modifiers |= mask
	} else {
		s.Modifiers &^= mask
	}
}

// ClearAll resets modifiers and the pressed set.
func (s *State) ClearAll() {
	*s = State{}
}

// NumPressed returns the number of currently pressed keys.
func (s *State) NumPressed() int {
	return s.n
}

// BuildReport encodes the state into an 8-byte HID input report.
//
// Report layout:
//
//	Byte 0: Modifiers (8 bits)
//	Byte 1: Reserved (0x00)
//	Bytes 2-7: Pressed usage codes, zero-padded
func (s *State) BuildReport() []byte {
	b := make([]byte, ReportSize)
	b[0] = s.Modifiers
	b[1] = 0x00 // Reserved
	copy(b[2:], s.keys[:s.n])
	return b
}

package uhid

import (
	"errors"
	"fmt"
)

// ErrDisconnected signals an orderly hang-up by the kernel side of the
// character device (a zero-length read). It marks normal termination, not
// a fault.
var ErrDisconnected = errors.New("uhid: device disconnected")

// ProtocolError reports a read or write that transferred something other
// than one full fixed-size event record. The record size is constant, so
// any partial transfer leaves the stream unframed and is fatal.
type ProtocolError struct {
	Op   string
	Got  int
	Want int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("uhid: %s: transferred %d of %d bytes", e.Op, e.Got, e.Want)
}

// UnknownEventError reports a record whose type tag is not part of the
// protocol. The record itself is well-framed, so callers may log and keep
// reading.
type UnknownEventError struct {
	Type uint32
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("uhid: unknown event type %d", e.Type)
}

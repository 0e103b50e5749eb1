// Package uhid speaks the kernel uhid character-device protocol: fixed-size
// binary event records exchanged with /dev/uhid to emulate a HID device
// from user space.
package uhid

import (
	"encoding/binary"
	"fmt"
)

// EventType is the 4-byte little-endian tag at the start of every record.
type EventType uint32

const (
	EventCreate EventType = iota
	EventDestroy
	EventStart
	EventStop
	EventOpen
	EventClose
	EventOutput
	EventOutputEv
	EventInput
)

func (t EventType) String() string {
	switch t {
	case EventCreate:
		return "CREATE"
	case EventDestroy:
		return "DESTROY"
	case EventStart:
		return "START"
	case EventStop:
		return "STOP"
	case EventOpen:
		return "OPEN"
	case EventClose:
		return "CLOSE"
	case EventOutput:
		return "OUTPUT"
	case EventOutputEv:
		return "OUTPUT_EV"
	case EventInput:
		return "INPUT"
	}
	return fmt.Sprintf("EventType(%d)", uint32(t))
}

// Report types carried in OUTPUT events.
const (
	FeatureReport uint8 = 0
	OutputReport  uint8 = 1
	InputReport   uint8 = 2
)

// Wire layout constants.
const (
	NameMax = 128  // device name field in the create payload
	DataMax = 4096 // report data buffer in input/output payloads

	// The create payload is the largest union variant; every record is
	// padded to it so the on-wire size never depends on the event type.
	createPayloadSize = NameMax + 2 + 2 + 4 + 4 + 4 + 4 + DataMax
	outputPayloadSize = DataMax + 2 + 1
	inputPayloadSize  = DataMax + 2

	// EventSize is the constant on-wire size of one record: 4-byte tag
	// plus the zero-padded payload union.
	EventSize = 4 + createPayloadSize
)

// Create payload offsets (relative to the start of the payload union).
const (
	createOffName    = 0
	createOffRDSize  = NameMax
	createOffBus     = createOffRDSize + 2
	createOffVendor  = createOffBus + 2
	createOffProduct = createOffVendor + 4
	createOffVersion = createOffProduct + 4
	createOffCountry = createOffVersion + 4
	createOffRDData  = createOffCountry + 4
)

// Output/input payload offsets.
const (
	outputOffData  = 0
	outputOffSize  = DataMax
	outputOffRType = DataMax + 2

	inputOffData = 0
	inputOffSize = DataMax
)

// Event is one decoded record read from the device. Type selects which of
// the payload fields is meaningful; the rest are zero.
type Event struct {
	Type EventType

	// Output payload, set when Type == EventOutput.
	OutputRType uint8
	OutputData  []byte

	// Input payload, set when Type == EventInput.
	InputData []byte
}

func putFixedString(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// encodeCreate builds a CREATE record announcing the device and its report
// descriptor to the kernel.
func encodeCreate(cfg Config) ([]byte, error) {
	if len(cfg.Name) >= NameMax {
		return nil, fmt.Errorf("uhid: device name %q exceeds %d bytes", cfg.Name, NameMax-1)
	}
	if len(cfg.ReportDescriptor) > DataMax {
		return nil, fmt.Errorf("uhid: report descriptor exceeds %d bytes", DataMax)
	}
	rec := make([]byte, EventSize)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(EventCreate))
	p := rec[4:]
	putFixedString(p[createOffName:createOffName+NameMax], cfg.Name)
	binary.LittleEndian.PutUint16(p[createOffRDSize:], uint16(len(cfg.ReportDescriptor)))
	binary.LittleEndian.PutUint16(p[createOffBus:], cfg.Bus)
	binary.LittleEndian.PutUint32(p[createOffVendor:], cfg.Vendor)
	binary.LittleEndian.PutUint32(p[createOffProduct:], cfg.Product)
	binary.LittleEndian.PutUint32(p[createOffVersion:], cfg.Version)
	binary.LittleEndian.PutUint32(p[createOffCountry:], cfg.Country)
	copy(p[createOffRDData:], cfg.ReportDescriptor)
	return rec, nil
}

// encodeDestroy builds a DESTROY record; the payload is all padding.
func encodeDestroy() []byte {
	rec := make([]byte, EventSize)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(EventDestroy))
	return rec
}

// encodeInput wraps one HID report into an INPUT record.
func encodeInput(report []byte) ([]byte, error) {
	if len(report) > DataMax {
		return nil, fmt.Errorf("uhid: input report exceeds %d bytes", DataMax)
	}
	rec := make([]byte, EventSize)
	binary.LittleEndian.PutUint32(rec[0:4], uint32(EventInput))
	p := rec[4:]
	copy(p[inputOffData:], report)
	binary.LittleEndian.PutUint16(p[inputOffSize:], uint16(len(report)))
	return rec, nil
}

// decodeEvent interprets one full record. Records with an unrecognized tag
// return an UnknownEventError alongside the partially filled Event so the
// caller can log the tag and continue.
func decodeEvent(rec []byte) (Event, error) {
	if len(rec) != EventSize {
		return Event{}, &ProtocolError{Op: "decode event", Got: len(rec), Want: EventSize}
	}
	t := EventType(binary.LittleEndian.Uint32(rec[0:4]))
	p := rec[4:]
	ev := Event{Type: t}
	switch t {
	case EventCreate, EventDestroy, EventStart, EventStop, EventOpen, EventClose, EventOutputEv:
		return ev, nil
	case EventOutput:
		size := binary.LittleEndian.Uint16(p[outputOffSize:])
		if int(size) > DataMax {
			return Event{}, &ProtocolError{Op: "decode output payload", Got: int(size), Want: DataMax}
		}
		ev.OutputRType = p[outputOffRType]
		ev.OutputData = p[outputOffData : outputOffData+int(size)]
		return ev, nil
	case EventInput:
		size := binary.LittleEndian.Uint16(p[inputOffSize:])
		if int(size) > DataMax {
			return Event{}, &ProtocolError{Op: "decode input payload", Got: int(size), Want: DataMax}
		}
		ev.InputData = p[inputOffData : inputOffData+int(size)]
		return ev, nil
	}
	return ev, &UnknownEventError{Type: uint32(t)}
}

// LEDReportID is the report id the keyboard descriptor assigns to the LED
// output report.
const LEDReportID = 0x02

// DecodeOutput extracts the LED flags byte from an OUTPUT event. The kernel
// uses OUTPUT reports for more than LEDs, so the payload is only accepted
// when it is an output report of exactly two bytes whose first byte is the
// LED report id.
func DecodeOutput(ev Event) (flags uint8, ok bool) {
	if ev.Type != EventOutput || ev.OutputRType != OutputReport {
		return 0, false
	}
	if len(ev.OutputData) != 2 || ev.OutputData[0] != LEDReportID {
		return 0, false
	}
	return ev.OutputData[1], true
}

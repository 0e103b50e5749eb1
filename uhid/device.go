package uhid

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// BusUSB is the bus type reported to the kernel on create.
const BusUSB uint16 = 0x03

// Config describes the device announced to the kernel with the CREATE event.
type Config struct {
	Name             string
	ReportDescriptor []byte
	Bus              uint16
	Vendor           uint32
	Product          uint32
	Version          uint32
	Country          uint32
}

// Device is a handle to an open uhid character device. It is not safe for
// concurrent use; the dispatch loop is its only owner.
type Device struct {
	rw     io.ReadWriter
	file   *os.File
	logger *slog.Logger
}

// Open opens the uhid character device read-write.
func Open(path string, logger *slog.Logger) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open uhid device %s: %w", path, err)
	}
	return NewDevice(f, logger), nil
}

// NewDevice wraps an already-open character device handle.
func NewDevice(f *os.File, logger *slog.Logger) *Device {
	return &Device{rw: f, file: f, logger: logger}
}

// Fd returns the underlying file descriptor for readiness polling.
func (d *Device) Fd() int {
	return int(d.file.Fd())
}

func (d *Device) Close() error {
	if d.file == nil {
		return nil
	}
	return d.file.Close()
}

// writeRecord writes one full event record. A short write leaves the record
// stream unframed and is reported as a ProtocolError.
func (d *Device) writeRecord(op string, rec []byte) error {
	n, err := d.rw.Write(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n != EventSize {
		return &ProtocolError{Op: op, Got: n, Want: EventSize}
	}
	return nil
}

// Create registers the device with the kernel. A failed create is fatal and
// is not retried.
func (d *Device) Create(cfg Config) error {
	rec, err := encodeCreate(cfg)
	if err != nil {
		return err
	}
	return d.writeRecord("write create event", rec)
}

// Destroy asks the kernel to tear the device down. It is best-effort: the
// process is on its way out when this runs, so failures are logged rather
// than propagated.
func (d *Device) Destroy() {
	if err := d.writeRecord("write destroy event", encodeDestroy()); err != nil {
		d.logger.Warn("uhid destroy failed", "error", err)
	}
}

// WriteInput sends one HID input report to the kernel.
func (d *Device) WriteInput(report []byte) error {
	rec, err := encodeInput(report)
	if err != nil {
		return err
	}
	return d.writeRecord("write input event", rec)
}

// ReadEvent reads exactly one event record from the kernel. A zero-length
// read is the peer hanging up and returns ErrDisconnected; a partial record
// is a ProtocolError.
func (d *Device) ReadEvent() (Event, error) {
	buf := make([]byte, EventSize)
	n, err := d.rw.Read(buf)
	if n == 0 && (err == nil || errors.Is(err, io.EOF)) {
		return Event{}, ErrDisconnected
	}
	if err != nil {
		return Event{}, fmt.Errorf("read uhid event: %w", err)
	}
	if n != EventSize {
		return Event{}, &ProtocolError{Op: "read event", Got: n, Want: EventSize}
	}
	return decodeEvent(buf)
}

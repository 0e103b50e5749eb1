package keyboard

// ReportDescriptor is the HID report descriptor announced to the kernel on
// create. The kernel parses it literally, so the bytes must not change: an
// 8-bit modifier field (the eight standard modifier keys), one constant
// reserved byte, and a 6-slot array of keyboard usage codes with logical
// range 0-101.
var ReportDescriptor = []byte{
	0x05, 0x01, // USAGE_PAGE (Generic Desktop)
	0x09, 0x06, // USAGE (Keyboard)
	0xA1, 0x01, // COLLECTION (Application)
	0x05, 0x07, //   USAGE_PAGE (Keyboard)
	0x19, 0xE0, //   USAGE_MINIMUM (Keyboard LeftControl)
	0x29, 0xE7, //   USAGE_MAXIMUM (Keyboard Right GUI)
	0x15, 0x00, //   LOGICAL_MINIMUM (0)
	0x25, 0x01, //   LOGICAL_MAXIMUM (1)
	0x75, 0x01, //   REPORT_SIZE (1)
	0x95, 0x08, //   REPORT_COUNT (8)
	0x81, 0x02, //   INPUT (Data,Var,Abs)
	0x95, 0x01, //   REPORT_COUNT (1)
	0x75, 0x08, //   REPORT_SIZE (8)
	0x81, 0x01, //   INPUT (Cnst,Var,Abs)
	0x95, 0x06, //   REPORT_COUNT (6)
	0x75, 0x08, //   REPORT_SIZE (8)
	0x15, 0x00, //   LOGICAL_MINIMUM (0)
	0x25, 0x65, //   LOGICAL_MAXIMUM (101)
	0x05, 0x07, //   USAGE_PAGE (Keyboard)
	0x19, 0x00, //   USAGE_MINIMUM (Reserved)
	0x29, 0x65, //   USAGE_MAXIMUM (Keyboard Application)
	0x81, 0x00, //   INPUT (Data,Array,Abs)
	0xC0, // END_COLLECTION
}

// Device identity reported to the kernel on create.
const (
	VendorID  = 0x15D9
	ProductID = 0x0A37
)

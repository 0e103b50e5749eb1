package cmd

import (
	"golang.org/x/sys/unix"
)

// rawInputMode switches the terminal to byte-wise input: canonical line
// buffering off, reads return after one byte. Echo and signal keys stay
// enabled so the terminal remains usable and Ctrl+C still interrupts (the
// run loop turns the signal into a clean shutdown). Returns a function
// restoring the previous state.
func rawInputMode(fd int) (restore func(), err error) {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, err
	}
	saved := *tio

	tio.Lflag &^= unix.ICANON
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return nil, err
	}
	return func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, &saved)
	}, nil
}

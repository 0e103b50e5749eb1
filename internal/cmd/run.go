package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/kbforge/uhidkbd/device/keyboard"
	"github.com/kbforge/uhidkbd/internal/dispatch"
	"github.com/kbforge/uhidkbd/uhid"
)

// Run creates the virtual keyboard device and forwards terminal input until
// either stream hangs up.
type Run struct {
	Device string `arg:"" optional:"" default:"/dev/uhid" help:"Path to the uhid character device"`
	Name   string `help:"Device name announced to the kernel" default:"uhidkbd" env:"UHIDKBD_NAME"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputFd := int(os.Stdin.Fd())
	if term.IsTerminal(inputFd) {
		restore, err := rawInputMode(inputFd)
		if err != nil {
			logger.Warn("cannot set terminal input mode", "error", err)
		} else {
			defer restore()
		}
	} else {
		logger.Warn("stdin is not a terminal; reading it as a plain byte stream")
	}

	logger.Info("opening uhid device", "path", r.Device)
	dev, err := uhid.Open(r.Device, logger)
	if err != nil {
		return err
	}
	defer dev.Close()

	return r.serve(ctx, dev, inputFd, logger)
}

// serve registers the device with the kernel and runs the dispatch loop.
// The DESTROY event is the release action guaranteed on every exit path;
// destroy failures are logged inside Destroy, never propagated.
func (r *Run) serve(ctx context.Context, dev *uhid.Device, inputFd int, logger *slog.Logger) error {
	logger.Info("creating keyboard device", "name", r.Name,
		"vendor", fmt.Sprintf("%#04x", keyboard.VendorID),
		"product", fmt.Sprintf("%#04x", keyboard.ProductID))
	if err := dev.Create(uhid.Config{
		Name:             r.Name,
		ReportDescriptor: keyboard.ReportDescriptor,
		Bus:              uhid.BusUSB,
		Vendor:           keyboard.VendorID,
		Product:          keyboard.ProductID,
		Version:          0,
		Country:          0,
	}); err != nil {
		return err
	}
	defer dev.Destroy()

	tr := keyboard.NewTranslator(dev, logger)
	loop := dispatch.New(dev, tr, inputFd, logger)

	logger.Info("keyboard device ready; type to send input, close stdin to exit")
	return loop.Run(ctx)
}

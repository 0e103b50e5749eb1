package cmd

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/kbforge/uhidkbd/uhid"
)

func TestServeDestroysDeviceOnceAfterHangup(t *testing.T) {
	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	defer inR.Close()
	defer inW.Close() // stays open and silent; the device side drives shutdown

	// SOCK_SEQPACKET keeps record boundaries, like reads from /dev/uhid.
	pair, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_SEQPACKET, 0)
	require.NoError(t, err)
	devFile := os.NewFile(uintptr(pair[0]), "uhid-dev")
	peer := os.NewFile(uintptr(pair[1]), "uhid-peer")
	defer peer.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dev := uhid.NewDevice(devFile, logger)
	r := &Run{Device: "/dev/uhid", Name: "uhidkbd-test"}

	done := make(chan error, 1)
	go func() { done <- r.serve(context.Background(), dev, int(inR.Fd()), logger) }()

	// The device is announced first.
	rec := make([]byte, uhid.EventSize)
	_, err = io.ReadFull(peer, rec)
	require.NoError(t, err)
	assert.Equal(t, uint32(uhid.EventCreate), binary.LittleEndian.Uint32(rec[0:4]))
	assert.Equal(t, "uhidkbd-test", string(rec[4:4+len("uhidkbd-test")]))

	// Hang up the kernel side: the next device read returns 0 bytes.
	require.NoError(t, unix.Shutdown(int(pair[1]), unix.SHUT_WR))

	select {
	case err := <-done:
		assert.NoError(t, err, "device hang-up is a clean shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not exit after device hangup")
	}

	// Teardown must have attempted exactly one DESTROY record and nothing
	// else. Closing our end turns further reads into EOF.
	_, err = io.ReadFull(peer, rec)
	require.NoError(t, err)
	assert.Equal(t, uint32(uhid.EventDestroy), binary.LittleEndian.Uint32(rec[0:4]))

	require.NoError(t, devFile.Close())
	n, err := peer.Read(rec)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

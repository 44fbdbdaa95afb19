//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

func disableEcho(stdin *os.File) (func(), error) {
	fd := int(stdin.Fd())
	original, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return nil, err
	}

	silent := *original
	silent.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &silent); err != nil {
		return nil, err
	}
	return func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, original)
	}, nil
}

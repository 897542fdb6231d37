// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build linux

// Package blkdev queries the size of the underlying device of a probe.
package blkdev

import (
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Size returns the size of the file in bytes: for block devices via the
// BLKGETSIZE64 ioctl, for everything else by seeking to the end.
func Size(f *os.File) (int64, error) {
	var st unix.Stat_t

	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return 0, err
	}

	if st.Mode&unix.S_IFMT == unix.S_IFBLK {
		var devsize uint64

		if _, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&devsize))); errno != 0 {
			return 0, errno
		}

		return int64(devsize), nil
	}

	return f.Seek(0, io.SeekEnd)
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build linux

package blkid

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/aerusso/go-blkid/block"
)

// ProbePath opens the path read-only and probes it for every known
// signature.
func ProbePath(devpath string, opts ...ProbeOption) (*Info, error) {
	f, err := os.OpenFile(devpath, os.O_RDONLY|unix.O_CLOEXEC|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}

	defer f.Close() //nolint:errcheck

	return ProbeInfo(f, opts...)
}

// ProbeInfo returns the probe information for the specified file.
func ProbeInfo(f *os.File, opts ...ProbeOption) (*Info, error) {
	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat: %w", err)
	}

	info := &Info{}

	sysStat := st.Sys().(*syscall.Stat_t) //nolint:errcheck,forcetypeassert // Stat on linux always returns it

	switch sysStat.Mode & unix.S_IFMT {
	case unix.S_IFBLK:
		dev := block.NewFromFile(f)

		size, err := dev.GetSize()
		if err != nil {
			return nil, fmt.Errorf("failed to get block device size: %w", err)
		}

		info.Size = int64(size)
		info.SectorSize = dev.GetSectorSize()
	case unix.S_IFREG:
		// a disk image
		info.Size = st.Size()
		info.SectorSize = block.DefaultBlockSize
	default:
		return nil, fmt.Errorf("unsupported file type: %s", st.Mode().Type())
	}

	info.Results, err = ProbeFile(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to probe: %w", err)
	}

	return info, nil
}

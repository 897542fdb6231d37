// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package superblocks holds the registry of probed on-disk formats.
//
// The registry is ordered: earlier entries win when signatures are
// ambiguous, so RAID member superblocks and encrypted containers are tried
// before plain filesystems (a RAID member may still carry a stale
// filesystem signature). The order is part of the identification contract
// and must not be changed.
package superblocks

import (
	"errors"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// errRejected is returned by probe functions when the magic matched but the
// superblock failed structural validation.
var errRejected = errors.New("superblock rejected")

// Info describes one probed format.
type Info struct {
	// Name is the canonical short type name, e.g. "ext4" or "LVM2_member".
	Name string

	// Usage class of the format.
	Usage probe.Usage

	// Magics to pre-check. An empty list means the probe function is
	// always called and does its own detection (formats whose superblock
	// position depends on the device size).
	Magics []magic.Magic

	// ProbeFunc validates the superblock and extracts attributes. It gets
	// the magic rule that matched, or nil if Magics is empty. A nil
	// ProbeFunc means a magic match alone is sufficient.
	//
	// A non-nil error rejects the format; the probing loop moves on.
	ProbeFunc func(s probe.Session, m *magic.Magic) error
}

// registry is built once at init and read-only afterwards.
var registry = []*Info{
	// RAID members and volume managers first.
	linuxRAIDInfo,
	ddfRAIDInfo,
	iswRAIDInfo,
	lsiRAIDInfo,
	viaRAIDInfo,
	silRAIDInfo,
	nvidiaRAIDInfo,
	promiseRAIDInfo,
	adaptecRAIDInfo,
	jmicronRAIDInfo,
	lvm2Info,
	luksInfo,

	// Filesystems.
	vfatInfo,
	swsuspendInfo,
	swapInfo,
	xfsInfo,
	ext4devInfo,
	ext4Info,
	ext3Info,
	ext2Info,
	jbdInfo,
	reiserInfo,
	reiser4Info,
	jfsInfo,
	udfInfo,
	iso9660Info,
	hfsplusInfo,
	hfsInfo,
	ntfsInfo,
	cramfsInfo,
	romfsInfo,
	gfsInfo,
	gfs2Info,
	ocfsInfo,
	ocfs2Info,
	oracleasmInfo,
}

// Registry returns the ordered format list.
func Registry() []*Info {
	return registry
}

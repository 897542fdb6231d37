// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// md 0.90 superblock: 64 KiB reserved at the end of the member device,
// aligned down to a 64 KiB boundary.
const (
	mdReservedBytes = 64 * 1024
	mdMagic         = 0xa92b4efc
)

var linuxRAIDInfo = &Info{
	Name:      "linux_raid_member",
	Usage:     probe.UsageRAID,
	ProbeFunc: probeLinuxRAID,
}

func probeLinuxRAID(s probe.Session, _ *magic.Magic) error {
	size := s.Size()
	if size < mdReservedBytes*2 {
		return errRejected
	}

	sboff := (size &^ int64(mdReservedBytes-1)) - mdReservedBytes

	buf, err := s.Buffer(sboff, 64)
	if err != nil {
		return err
	}

	if binary.LittleEndian.Uint32(buf[0:4]) != mdMagic &&
		binary.BigEndian.Uint32(buf[0:4]) != mdMagic {
		return errRejected
	}

	// set_uuid0 lives at word 5, set_uuid1..3 at words 13..15; the UUID is
	// the on-disk byte sequence of the four words.
	uuid := make([]byte, 0, 16)
	uuid = append(uuid, buf[20:24]...)
	uuid = append(uuid, buf[52:64]...)

	if err := s.SetUUID(uuid); err != nil {
		return err
	}

	major := binary.LittleEndian.Uint32(buf[4:8])
	minor := binary.LittleEndian.Uint32(buf[8:12])
	patch := binary.LittleEndian.Uint32(buf[12:16])

	return s.SprintfVersion("%d.%d.%d", major, minor, patch)
}

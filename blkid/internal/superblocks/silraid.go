// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// Silicon Image Medley metadata in the last sector.
const silMagic = 0x0f03

var silRAIDInfo = &Info{
	Name:      "silicon_medley_raid_member",
	Usage:     probe.UsageRAID,
	ProbeFunc: probeSilRAID,
}

func probeSilRAID(s probe.Session, _ *magic.Magic) error {
	size := s.Size()
	if size < 0x10000 {
		return errRejected
	}

	off := (size/0x200 - 1) * 0x200

	buf, err := s.Buffer(off, 0x200)
	if err != nil {
		return err
	}

	if binary.LittleEndian.Uint16(buf[0:2]) != silMagic {
		return errRejected
	}

	return nil
}

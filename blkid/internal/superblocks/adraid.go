// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// Adaptec HostRAID signature in the last sector.
const adaptecMagic = 0x900765c4

var adaptecRAIDInfo = &Info{
	Name:      "adaptec_raid_member",
	Usage:     probe.UsageRAID,
	ProbeFunc: probeAdaptecRAID,
}

func probeAdaptecRAID(s probe.Session, _ *magic.Magic) error {
	size := s.Size()
	if size < 0x10000 {
		return errRejected
	}

	off := (size/0x200 - 1) * 0x200

	buf, err := s.Buffer(off, 0x200)
	if err != nil {
		return err
	}

	if binary.BigEndian.Uint32(buf[0:4]) != adaptecMagic {
		return errRejected
	}

	return nil
}

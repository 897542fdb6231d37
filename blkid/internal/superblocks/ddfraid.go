// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// SNIA DDF anchor header in the last sector of the member device.
const ddfMagic = 0xde11de11

var ddfRAIDInfo = &Info{
	Name:      "ddf_raid_member",
	Usage:     probe.UsageRAID,
	ProbeFunc: probeDDFRAID,
}

func probeDDFRAID(s probe.Session, _ *magic.Magic) error {
	size := s.Size()
	if size < 0x10000 {
		return errRejected
	}

	off := (size/0x200 - 1) * 0x200

	buf, err := s.Buffer(off, 0x200)
	if err != nil {
		return err
	}

	if binary.BigEndian.Uint32(buf[0:4]) != ddfMagic &&
		binary.LittleEndian.Uint32(buf[0:4]) != ddfMagic {
		return errRejected
	}

	// The DDF GUID is 24 bytes of vendor-scoped ASCII; it does not fit the
	// DCE format, so it is reported as text (SprintfUUID still folds A-F
	// to lowercase).
	guid := buf[8:32]

	return s.SprintfUUID(guid, "%s", string(guid))
}

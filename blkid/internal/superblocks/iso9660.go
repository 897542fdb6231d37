// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// The primary volume descriptor sits in the sector at 32 KiB. "CD001" is
// ISO9660 proper; "CDROM" at offset 9 is the High Sierra predecessor.
const isoVDOffset = 0x8000

var iso9660Info = &Info{
	Name:  "iso9660",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("CD001"), KBOffset: 32, SBOffset: 1},
		{Value: []byte("CDROM"), KBOffset: 32, SBOffset: 9},
	},
	ProbeFunc: probeISO9660,
}

func probeISO9660(s probe.Session, m *magic.Magic) error {
	buf, err := s.Buffer(isoVDOffset, 0x100)
	if err != nil {
		return err
	}

	var label []byte

	if m.SBOffset == 9 {
		// High Sierra: the volume identifier is pushed out by the extra
		// LBE header fields.
		label = buf[48:80]
	} else {
		label = buf[40:72]
	}

	return s.SetLabel(label)
}

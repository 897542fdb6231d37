// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// reiserfs keeps its superblock at 8 KiB (old 3.5 format) or 64 KiB; the
// magic string is 52 bytes in. Label and UUID exist only in the newer
// formats.
var reiserInfo = &Info{
	Name:  "reiserfs",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("ReIsErFs"), KBOffset: 8, SBOffset: 0x34},
		{Value: []byte("ReIsEr2Fs"), KBOffset: 64, SBOffset: 0x34},
		{Value: []byte("ReIsEr3Fs"), KBOffset: 64, SBOffset: 0x34},
		{Value: []byte("ReIsErFs"), KBOffset: 64, SBOffset: 0x34},
	},
	ProbeFunc: probeReiser,
}

func probeReiser(s probe.Session, m *magic.Magic) error {
	base := m.KBOffset * 1024

	buf, err := s.Buffer(base, 0x80)
	if err != nil {
		return err
	}

	switch string(m.Value) {
	case "ReIsErFs":
		return s.SetVersion("3.5")
	case "ReIsEr2Fs":
		if err := s.SetVersion("3.6"); err != nil {
			return err
		}
	case "ReIsEr3Fs":
		if err := s.SetVersion("JR"); err != nil {
			return err
		}
	}

	if err := s.SetUUID(buf[0x54:0x64]); err != nil {
		return err
	}

	label := cstring(buf[0x64 : 0x64+16])
	if len(label) > 0 {
		return s.SetLabel(label)
	}

	return nil
}

// reiser4 master superblock at 64 KiB.
var reiser4Info = &Info{
	Name:  "reiser4",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("ReIsEr4"), KBOffset: 64, SBOffset: 0},
	},
	ProbeFunc: probeReiser4,
}

func probeReiser4(s probe.Session, m *magic.Magic) error {
	base := m.KBOffset * 1024

	buf, err := s.Buffer(base, 0x40)
	if err != nil {
		return err
	}

	if err := s.SetUUID(buf[20:36]); err != nil {
		return err
	}

	label := cstring(buf[36:52])
	if len(label) > 0 {
		return s.SetLabel(label)
	}

	return nil
}

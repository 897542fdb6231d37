// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

var jfsInfo = &Info{
	Name:  "jfs",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("JFS1"), KBOffset: 32, SBOffset: 0},
	},
	ProbeFunc: probeJFS,
}

func probeJFS(s probe.Session, m *magic.Magic) error {
	base := m.KBOffset * 1024

	buf, err := s.Buffer(base, 0x200)
	if err != nil {
		return err
	}

	version := binary.LittleEndian.Uint32(buf[4:8])
	if version < 1 {
		return errRejected
	}

	if err := s.SetUUID(buf[136:152]); err != nil {
		return err
	}

	label := cstring(buf[152:168])
	if len(label) > 0 {
		if err := s.SetLabel(label); err != nil {
			return err
		}
	}

	return s.SprintfVersion("%d", version)
}

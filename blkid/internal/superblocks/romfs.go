// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

var romfsInfo = &Info{
	Name:  "romfs",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("-rom1fs-"), KBOffset: 0, SBOffset: 0},
	},
	ProbeFunc: probeRomfs,
}

func probeRomfs(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(0, 0x100)
	if err != nil {
		return err
	}

	// The volume name is NUL-terminated, padded to a 16-byte boundary.
	label := cstring(buf[16:])
	if len(label) > 0 {
		return s.SetLabel(label)
	}

	return nil
}

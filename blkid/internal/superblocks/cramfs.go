// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

var cramfsInfo = &Info{
	Name:  "cramfs",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte{0x45, 0x3d, 0xcd, 0x28}, KBOffset: 0, SBOffset: 0},
		{Value: []byte{0x28, 0xcd, 0x3d, 0x45}, KBOffset: 0, SBOffset: 0},
	},
	ProbeFunc: probeCramfs,
}

func probeCramfs(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(0, 0x40)
	if err != nil {
		return err
	}

	label := cstring(buf[48:64])
	if len(label) > 0 {
		return s.SetLabel(label)
	}

	return nil
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

var xfsInfo = &Info{
	Name:  "xfs",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("XFSB"), KBOffset: 0, SBOffset: 0},
	},
	ProbeFunc: probeXFS,
}

func probeXFS(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(0, 0x200)
	if err != nil {
		return err
	}

	blockSize := binary.BigEndian.Uint32(buf[4:8])
	if !isPowerOf2(blockSize) || blockSize < 512 || blockSize > 0x10000 {
		return errRejected
	}

	if err := s.SetUUID(buf[32:48]); err != nil {
		return err
	}

	label := cstring(buf[0x6c : 0x6c+12])
	if len(label) > 0 {
		return s.SetLabel(label)
	}

	return nil
}

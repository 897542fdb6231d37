// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// GFS and GFS2 share the superblock at 64 KiB and the same big-endian
// metadata magic; the on-disk format numbers tell them apart. The lock
// table name ("cluster:fsname") doubles as the label.
const (
	gfsSBOffset = 64 * 1024

	gfs1FormatFS    = 1309
	gfs1FormatMulti = 1401

	gfs2FormatFS    = 1801
	gfs2FormatMulti = 1900
)

var gfsMagics = []magic.Magic{
	{Value: []byte{0x01, 0x16, 0x19, 0x70}, KBOffset: 64, SBOffset: 0},
}

var (
	gfsInfo  = &Info{Name: "gfs", Usage: probe.UsageFilesystem, Magics: gfsMagics, ProbeFunc: probeGFS}
	gfs2Info = &Info{Name: "gfs2", Usage: probe.UsageFilesystem, Magics: gfsMagics, ProbeFunc: probeGFS2}
)

func probeGFSCommon(s probe.Session, wantFS, wantMulti uint32) error {
	buf, err := s.Buffer(gfsSBOffset, 0x200)
	if err != nil {
		return err
	}

	fsFormat := binary.BigEndian.Uint32(buf[24:28])
	multiFormat := binary.BigEndian.Uint32(buf[28:32])

	if fsFormat != wantFS || multiFormat != wantMulti {
		return errRejected
	}

	lockTable := cstring(buf[136:200])
	if len(lockTable) > 0 {
		return s.SetLabel(lockTable)
	}

	return nil
}

func probeGFS(s probe.Session, _ *magic.Magic) error {
	return probeGFSCommon(s, gfs1FormatFS, gfs1FormatMulti)
}

func probeGFS2(s probe.Session, _ *magic.Magic) error {
	return probeGFSCommon(s, gfs2FormatFS, gfs2FormatMulti)
}

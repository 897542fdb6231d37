// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// HFS+ volume header at 1 KiB. The last eight bytes of the finder info
// array carry the volume identifier.
var hfsplusInfo = &Info{
	Name:  "hfsplus",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("H+"), KBOffset: 1, SBOffset: 0},
		{Value: []byte("HX"), KBOffset: 1, SBOffset: 0},
	},
	ProbeFunc: probeHFSPlus,
}

func probeHFSPlus(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(1024, 0x200)
	if err != nil {
		return err
	}

	version := binary.BigEndian.Uint16(buf[2:4])
	if version != 4 && version != 5 {
		return errRejected
	}

	id := buf[104:112]

	return s.SprintfUUID(id, "%016x", binary.BigEndian.Uint64(id))
}

// Classic HFS master directory block at 1 KiB, with a Pascal-string volume
// name. Volumes wrapping an embedded HFS+ partition are rejected; the
// hfsplus entry only looks for a bare HFS+ header at 1 KiB and does not
// follow the wrapper, so such volumes are not identified.
var hfsInfo = &Info{
	Name:  "hfs",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("BD"), KBOffset: 1, SBOffset: 0},
	},
	ProbeFunc: probeHFS,
}

func probeHFS(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(1024, 0x200)
	if err != nil {
		return err
	}

	embed := string(buf[0x7c:0x7e])
	if embed == "H+" || embed == "HX" {
		return errRejected
	}

	nameLen := int(buf[36])
	if nameLen > 27 {
		return errRejected
	}

	if nameLen > 0 {
		return s.SetLabel(buf[37 : 37+nameLen])
	}

	return nil
}

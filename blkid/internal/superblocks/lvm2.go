// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"bytes"
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// The LVM2 label header sits in one of the first four sectors; the "LVM2
// 001" type string is 24 bytes into the header.
var lvm2Info = &Info{
	Name:  "LVM2_member",
	Usage: probe.UsageRAID,
	Magics: []magic.Magic{
		{Value: []byte("LVM2 001"), KBOffset: 0, SBOffset: 0x018},
		{Value: []byte("LVM2 001"), KBOffset: 0, SBOffset: 0x218},
		{Value: []byte("LVM2 001"), KBOffset: 1, SBOffset: 0x018},
		{Value: []byte("LVM2 001"), KBOffset: 1, SBOffset: 0x218},
	},
	ProbeFunc: probeLVM2,
}

func probeLVM2(s probe.Session, m *magic.Magic) error {
	labelStart := m.KBOffset*1024 + int64(m.SBOffset) - 24

	hdr, err := s.Buffer(labelStart, 40)
	if err != nil {
		return err
	}

	if !bytes.Equal(hdr[0:8], []byte("LABELONE")) ||
		!bytes.Equal(hdr[24:32], []byte("LVM2 001")) {
		return errRejected
	}

	// offset_xl points at the pv_header, which starts with the 32-char PV
	// identifier.
	pvOffset := int64(binary.LittleEndian.Uint32(hdr[20:24]))
	if pvOffset < 32 || pvOffset > 512-32 {
		return errRejected
	}

	uuid, err := s.Buffer(labelStart+pvOffset, 32)
	if err != nil {
		return err
	}

	// LVM2 identifiers are not DCE UUIDs; report the conventional dashed
	// grouping of the 32 characters.
	return s.SprintfUUID(uuid, "%s-%s-%s-%s-%s-%s-%s",
		uuid[0:6], uuid[6:10], uuid[10:14], uuid[14:18],
		uuid[18:22], uuid[22:26], uuid[26:32])
}

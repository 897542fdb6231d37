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

var vfatInfo = &Info{
	Name:  "vfat",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("MSWIN"), KBOffset: 0, SBOffset: 0x52},
		{Value: []byte("FAT32   "), KBOffset: 0, SBOffset: 0x52},
		{Value: []byte("MSDOS"), KBOffset: 0, SBOffset: 0x36},
		{Value: []byte("FAT16   "), KBOffset: 0, SBOffset: 0x36},
		{Value: []byte("FAT12   "), KBOffset: 0, SBOffset: 0x36},
		{Value: []byte("FAT     "), KBOffset: 0, SBOffset: 0x36},
	},
	ProbeFunc: probeVfat,
}

var vfatNoName = []byte("NO NAME    ")

func probeVfat(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(0, 0x200)
	if err != nil {
		return err
	}

	sectorSize := binary.LittleEndian.Uint16(buf[11:13])
	clusterSize := buf[13]
	reserved := binary.LittleEndian.Uint16(buf[14:16])
	fats := buf[16]
	rootEntries := binary.LittleEndian.Uint16(buf[17:19])
	media := buf[21]

	switch {
	case fats == 0,
		reserved == 0,
		media != 0xf0 && media < 0xf8,
		!isPowerOf2(uint16(clusterSize)),
		!isPowerOf2(sectorSize),
		sectorSize < 512 || sectorSize > 4096:
		return errRejected
	}

	var label, serial []byte

	if rootEntries == 0 {
		// FAT32: extended BPB, label and serial live past the 32-bit
		// geometry fields.
		label = buf[0x47 : 0x47+11]
		serial = buf[0x43 : 0x43+4]
	} else {
		label = buf[0x2b : 0x2b+11]
		serial = buf[0x27 : 0x27+4]
	}

	if label[0] != 0 && !bytes.Equal(label, vfatNoName) {
		if err := s.SetLabel(label); err != nil {
			return err
		}
	}

	return s.SprintfUUID(serial, "%02X%02X-%02X%02X",
		serial[3], serial[2], serial[1], serial[0])
}

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

const (
	ntfsAttrVolumeName = 0x60
	ntfsAttrEnd        = 0xffffffff

	ntfsVolumeRecord = 3
	ntfsMaxAttrWalk  = 64
)

var ntfsInfo = &Info{
	Name:  "ntfs",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("NTFS    "), KBOffset: 0, SBOffset: 3},
	},
	ProbeFunc: probeNTFS,
}

func probeNTFS(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(0, 0x200)
	if err != nil {
		return err
	}

	sectorSize := binary.LittleEndian.Uint16(buf[11:13])
	sectorsPerCluster := buf[13]

	switch {
	case !isPowerOf2(sectorSize) || sectorSize < 256 || sectorSize > 4096,
		!isPowerOf2(uint16(sectorsPerCluster)),
		// NTFS leaves the FAT geometry fields zeroed.
		buf[16] != 0,
		binary.LittleEndian.Uint16(buf[17:19]) != 0,
		binary.LittleEndian.Uint16(buf[22:24]) != 0:
		return errRejected
	}

	serial := buf[72:80]

	if err := s.SprintfUUID(serial, "%016X", binary.LittleEndian.Uint64(serial)); err != nil {
		return err
	}

	// The volume label lives in the $Volume MFT record; a failure to read
	// or parse it is not a reason to reject the filesystem.
	setNTFSLabel(s, buf, int64(sectorSize), int64(sectorsPerCluster))

	return nil
}

func setNTFSLabel(s probe.Session, bpb []byte, sectorSize, sectorsPerCluster int64) {
	clusterSize := sectorSize * sectorsPerCluster
	if clusterSize == 0 {
		return
	}

	mftCluster := int64(binary.LittleEndian.Uint64(bpb[48:56]))

	recordSize := int64(1024)
	if cpm := int8(bpb[64]); cpm < 0 {
		recordSize = 1 << uint(-cpm)
	} else if cpm > 0 {
		recordSize = int64(cpm) * clusterSize
	}

	if recordSize < 0x100 || recordSize > 0x1000 {
		return
	}

	record, err := s.Buffer(mftCluster*clusterSize+ntfsVolumeRecord*recordSize, recordSize)
	if err != nil {
		return
	}

	if !bytes.Equal(record[0:4], []byte("FILE")) {
		return
	}

	attrOff := int64(binary.LittleEndian.Uint16(record[20:22]))

	for i := 0; i < ntfsMaxAttrWalk; i++ {
		if attrOff+24 > recordSize {
			return
		}

		attrType := binary.LittleEndian.Uint32(record[attrOff : attrOff+4])
		if attrType == ntfsAttrEnd {
			return
		}

		attrLen := int64(binary.LittleEndian.Uint32(record[attrOff+4 : attrOff+8]))
		if attrLen == 0 {
			return
		}

		nonResident := record[attrOff+8]

		if attrType == ntfsAttrVolumeName && nonResident == 0 {
			valueLen := int64(binary.LittleEndian.Uint32(record[attrOff+16 : attrOff+20]))
			valueOff := int64(binary.LittleEndian.Uint16(record[attrOff+20 : attrOff+22]))

			start := attrOff + valueOff
			if start+valueLen > recordSize {
				return
			}

			s.SetUTF8Label(record[start:start+valueLen], probe.EncodingUTF16LE) //nolint:errcheck

			return
		}

		attrOff += attrLen
	}
}

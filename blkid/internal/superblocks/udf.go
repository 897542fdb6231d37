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

// UDF shares the 32 KiB volume recognition area with ISO9660; it is
// identified by an NSR descriptor in the recognition sequence. udf must be
// probed before iso9660 so hybrid discs report as UDF.
const (
	udfVRSOffset   = 0x8000
	udfSectorSize  = 2048
	udfMaxVSDCount = 64

	udfTagPrimaryVolumeDescriptor = 1
	udfTagAnchorVolumeDescriptor  = 2
	udfTagTerminatingDescriptor   = 8
)

var udfInfo = &Info{
	Name:  "udf",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("BEA01"), KBOffset: 32, SBOffset: 1},
		{Value: []byte("BOOT2"), KBOffset: 32, SBOffset: 1},
		{Value: []byte("CD001"), KBOffset: 32, SBOffset: 1},
		{Value: []byte("CDW02"), KBOffset: 32, SBOffset: 1},
		{Value: []byte("NSR02"), KBOffset: 32, SBOffset: 1},
		{Value: []byte("NSR03"), KBOffset: 32, SBOffset: 1},
		{Value: []byte("TEA01"), KBOffset: 32, SBOffset: 1},
	},
	ProbeFunc: probeUDF,
}

var udfVSDIdents = [][]byte{
	[]byte("BEA01"), []byte("BOOT2"), []byte("CD001"), []byte("CDW02"),
	[]byte("NSR02"), []byte("NSR03"), []byte("TEA01"),
}

func isUDFVSDIdent(ident []byte) bool {
	for _, known := range udfVSDIdents {
		if bytes.Equal(ident, known) {
			return true
		}
	}

	return false
}

func probeUDF(s probe.Session, _ *magic.Magic) error {
	// Walk the volume recognition sequence looking for an NSR descriptor.
	foundNSR := false

	for i := int64(0); i < udfMaxVSDCount; i++ {
		buf, err := s.Buffer(udfVRSOffset+i*udfSectorSize, 8)
		if err != nil {
			return err
		}

		ident := buf[1:6]

		if bytes.Equal(ident, []byte("NSR02")) || bytes.Equal(ident, []byte("NSR03")) {
			foundNSR = true

			break
		}

		if !isUDFVSDIdent(ident) {
			break
		}
	}

	if !foundNSR {
		return errRejected
	}

	// The anchor at sector 256 points at the main volume descriptor
	// sequence; the label lives in the primary volume descriptor there.
	anchor, err := s.Buffer(256*udfSectorSize, 32)
	if err != nil {
		return err
	}

	if binary.LittleEndian.Uint16(anchor[0:2]) != udfTagAnchorVolumeDescriptor {
		// Still UDF; just no readable label.
		return nil
	}

	vdsLoc := int64(binary.LittleEndian.Uint32(anchor[20:24]))

	for i := int64(0); i < udfMaxVSDCount; i++ {
		buf, err := s.Buffer((vdsLoc+i)*udfSectorSize, 0x40)
		if err != nil {
			return nil
		}

		switch binary.LittleEndian.Uint16(buf[0:2]) {
		case udfTagPrimaryVolumeDescriptor:
			return setUDFLabel(s, buf[24:56])
		case udfTagTerminatingDescriptor:
			return nil
		}
	}

	return nil
}

// setUDFLabel decodes a 32-byte dstring: one compression-id byte, the
// characters, and a trailing length byte covering both.
func setUDFLabel(s probe.Session, d []byte) error {
	length := int(d[31])
	if length < 2 || length > 31 {
		return nil
	}

	switch d[0] {
	case 8:
		return s.SetLabel(d[1:length])
	case 16:
		return s.SetUTF8Label(d[1:length], probe.EncodingUTF16BE)
	}

	return nil
}

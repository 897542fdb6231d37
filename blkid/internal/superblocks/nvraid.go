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

// NVIDIA MediaShield metadata, two sectors from the end.
var nvidiaSignature = []byte("NVIDIA")

var nvidiaRAIDInfo = &Info{
	Name:      "nvidia_raid_member",
	Usage:     probe.UsageRAID,
	ProbeFunc: probeNvidiaRAID,
}

func probeNvidiaRAID(s probe.Session, _ *magic.Magic) error {
	size := s.Size()
	if size < 0x10000 {
		return errRejected
	}

	off := (size/0x200 - 2) * 0x200

	buf, err := s.Buffer(off, 0x200)
	if err != nil {
		return err
	}

	if !bytes.HasPrefix(buf, nvidiaSignature) {
		return errRejected
	}

	return s.SprintfVersion("%d", binary.LittleEndian.Uint32(buf[8:12]))
}

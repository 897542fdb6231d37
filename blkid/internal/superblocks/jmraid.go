// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"bytes"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// JMicron JMB36x metadata in the last sector.
var jmicronSignature = []byte("JM")

var jmicronRAIDInfo = &Info{
	Name:      "jmicron_raid_member",
	Usage:     probe.UsageRAID,
	ProbeFunc: probeJmicronRAID,
}

func probeJmicronRAID(s probe.Session, _ *magic.Magic) error {
	size := s.Size()
	if size < 0x10000 {
		return errRejected
	}

	off := (size/0x200 - 1) * 0x200

	buf, err := s.Buffer(off, 0x200)
	if err != nil {
		return err
	}

	if !bytes.HasPrefix(buf, jmicronSignature) {
		return errRejected
	}

	return nil
}

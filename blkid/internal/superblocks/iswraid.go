// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"bytes"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// Intel Matrix Storage Manager metadata, two sectors from the end.
var iswSignature = []byte("Intel Raid ISM Cfg Sig. ")

var iswRAIDInfo = &Info{
	Name:      "isw_raid_member",
	Usage:     probe.UsageRAID,
	ProbeFunc: probeISWRAID,
}

func probeISWRAID(s probe.Session, _ *magic.Magic) error {
	size := s.Size()
	if size < 0x10000 {
		return errRejected
	}

	off := (size/0x200 - 2) * 0x200

	buf, err := s.Buffer(off, 0x200)
	if err != nil {
		return err
	}

	if !bytes.HasPrefix(buf, iswSignature) {
		return errRejected
	}

	// The version string follows the signature.
	version := buf[len(iswSignature) : len(iswSignature)+6]

	return s.SetVersion(string(bytes.TrimRight(version, "\x00 ")))
}

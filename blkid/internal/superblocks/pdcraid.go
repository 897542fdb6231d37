// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"bytes"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// Promise FastTrak keeps its metadata at one of several fixed distances
// from the end of the disk, depending on firmware generation.
var (
	promiseSignature = []byte("Promise Technology, Inc.")

	promiseSectors = []int64{63, 255, 256, 16, 399}
)

var promiseRAIDInfo = &Info{
	Name:      "promise_fasttrack_raid_member",
	Usage:     probe.UsageRAID,
	ProbeFunc: probePromiseRAID,
}

func probePromiseRAID(s probe.Session, _ *magic.Magic) error {
	size := s.Size()
	if size < 0x40000 {
		return errRejected
	}

	for _, sectors := range promiseSectors {
		off := (size/0x200 - sectors) * 0x200
		if off < 0 {
			continue
		}

		buf, err := s.Buffer(off, 0x200)
		if err != nil {
			continue
		}

		if bytes.HasPrefix(buf, promiseSignature) {
			return nil
		}
	}

	return errRejected
}

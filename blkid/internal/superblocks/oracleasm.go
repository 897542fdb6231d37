// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// Oracle ASM disk header; the ASM disk name follows the tag.
var oracleasmInfo = &Info{
	Name:  "oracleasm",
	Usage: probe.UsageOther,
	Magics: []magic.Magic{
		{Value: []byte("ORCLDISK"), KBOffset: 0, SBOffset: 32},
	},
	ProbeFunc: probeOracleASM,
}

func probeOracleASM(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(0, 0x40)
	if err != nil {
		return err
	}

	label := cstring(buf[40:64])
	if len(label) > 0 {
		return s.SetLabel(label)
	}

	return nil
}

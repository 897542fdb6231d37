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
	luksUUIDOffset = 0xa8
	luksUUIDLength = 40
)

var luksInfo = &Info{
	Name:  "crypto_LUKS",
	Usage: probe.UsageCrypto,
	Magics: []magic.Magic{
		{Value: []byte("LUKS\xba\xbe"), KBOffset: 0, SBOffset: 0},
	},
	ProbeFunc: probeLUKS,
}

func probeLUKS(s probe.Session, _ *magic.Magic) error {
	buf, err := s.Buffer(0, 0x200)
	if err != nil {
		return err
	}

	version := binary.BigEndian.Uint16(buf[6:8])

	// The UUID is stored as NUL-terminated text.
	uuid := buf[luksUUIDOffset : luksUUIDOffset+luksUUIDLength]
	if idx := bytes.IndexByte(uuid, 0); idx >= 0 {
		uuid = uuid[:idx]
	}

	if err := s.SprintfUUID(uuid, "%s", string(uuid)); err != nil {
		return err
	}

	return s.SprintfVersion("%d", version)
}

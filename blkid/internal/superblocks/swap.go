// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// The swap signature sits in the last ten bytes of the first page; one rule
// per supported page size (4K, 8K, 16K, 32K, 64K).
func swapMagics(value string) []magic.Magic {
	return []magic.Magic{
		{Value: []byte(value), KBOffset: 3, SBOffset: 0x3f6},
		{Value: []byte(value), KBOffset: 7, SBOffset: 0x3f6},
		{Value: []byte(value), KBOffset: 15, SBOffset: 0x3f6},
		{Value: []byte(value), KBOffset: 31, SBOffset: 0x3f6},
		{Value: []byte(value), KBOffset: 63, SBOffset: 0x3f6},
	}
}

var swapInfo = &Info{
	Name:  "swap",
	Usage: probe.UsageOther,
	Magics: append(
		swapMagics("SWAP-SPACE"),
		swapMagics("SWAPSPACE2")...,
	),
	ProbeFunc: probeSwap,
}

// Suspend-to-disk images reuse the swap layout with their own signatures;
// they must be recognized before swap would claim the page.
var swsuspendInfo = &Info{
	Name:  "swsuspend",
	Usage: probe.UsageOther,
	Magics: append(
		swapMagics("S1SUSPEND"),
		swapMagics("S2SUSPEND")...,
	),
}

func probeSwap(s probe.Session, m *magic.Magic) error {
	if string(m.Value) != "SWAPSPACE2" {
		// v0 swap areas have no header beyond the signature.
		return nil
	}

	// The version 1 header follows the bootbits page prefix.
	buf, err := s.Buffer(1024, 128)
	if err != nil {
		return err
	}

	if binary.LittleEndian.Uint32(buf[0:4]) != 1 {
		return nil
	}

	if err := s.SetUUID(buf[12:28]); err != nil {
		return err
	}

	label := cstring(buf[28:44])
	if len(label) > 0 {
		return s.SetLabel(label)
	}

	return nil
}

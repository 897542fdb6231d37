// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package magic implements the magic number detection for block devices.
package magic

import "bytes"

// BlockSize is the granularity of magic lookups: signatures are compared
// inside the 1 KiB block that contains them.
const BlockSize = 1024

// Magic defines a filesystem/volume manager/etc magic value.
//
// The position of the value on the device is split into a coarse kibibyte
// offset and a fine byte offset, so that detection always operates on whole
// 1 KiB blocks.
type Magic struct {
	// Value to search for.
	Value []byte

	// KBOffset is the offset of the block containing the value, in KiB
	// from the device origin.
	KBOffset int64

	// SBOffset is the byte offset of the value within that block.
	SBOffset int
}

// Block returns the index of the 1 KiB block that contains the magic value.
func (magic *Magic) Block() int64 {
	return magic.KBOffset + int64(magic.SBOffset>>10)
}

// Matches returns true if the magic value is found in the given 1 KiB block.
func (magic *Magic) Matches(block []byte) bool {
	off := magic.SBOffset & (BlockSize - 1)

	if len(block) < off+len(magic.Value) {
		return false
	}

	return bytes.Equal(block[off:off+len(magic.Value)], magic.Value)
}

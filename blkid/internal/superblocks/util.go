// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import "bytes"

func isPowerOf2[T uint8 | uint16 | uint32 | uint64](num T) bool {
	return num != 0 && num&(num-1) == 0
}

// cstring trims a fixed-width field at the first NUL.
func cstring(b []byte) []byte {
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		return b[:idx]
	}

	return b
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blkid

// encodeUTF8 transcodes UTF-16 code units into dest as 1/2/3-byte UTF-8
// sequences, stopping at a NUL code unit or when dest would overflow, and
// NUL-terminates the result. It returns the number of bytes written,
// excluding the terminator.
//
// Code units are transcoded independently: surrogate pairs are not
// combined, a lone surrogate comes out as its three-byte form. Superblock
// labels are expected to stay within the BMP.
func encodeUTF8(enc Encoding, dest, src []byte) int {
	j := 0

loop:
	for i := 0; i+2 <= len(src); i += 2 {
		var c uint16

		if enc == EncodingUTF16LE {
			c = uint16(src[i+1])<<8 | uint16(src[i])
		} else {
			c = uint16(src[i])<<8 | uint16(src[i+1])
		}

		switch {
		case c == 0:
			break loop
		case c < 0x80:
			if j+1 >= len(dest) {
				break loop
			}

			dest[j] = byte(c)
			j++
		case c < 0x800:
			if j+2 >= len(dest) {
				break loop
			}

			dest[j] = 0xc0 | byte(c>>6)
			dest[j+1] = 0x80 | byte(c&0x3f)
			j += 2
		default:
			if j+3 >= len(dest) {
				break loop
			}

			dest[j] = 0xe0 | byte(c>>12)
			dest[j+1] = 0x80 | byte(c>>6&0x3f)
			dest[j+2] = 0x80 | byte(c&0x3f)
			j += 3
		}
	}

	dest[j] = 0

	return j
}

// isASCIISpace matches the fixed ASCII whitespace set used for label
// trimming; the locale never participates.
func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// uuidIsEmpty reports whether the identifier is all zeroes, for any length.
func uuidIsEmpty(u []byte) bool {
	for _, b := range u {
		if b != 0 {
			return false
		}
	}

	return true
}

// lowercaseHex folds A-F in a stored text value; hex identifiers are
// reported lowercase no matter how the parser formatted them.
func lowercaseHex(v *prval) {
	for i := 0; i < v.len; i++ {
		if v.data[i] >= 'A' && v.data[i] <= 'F' {
			v.data[i] += 'a' - 'A'
		}
	}
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package probe defines the contract between the probing session and the
// per-format superblock parsers.
package probe

// Usage is the coarse taxonomy of a format: what the block device is used
// for when the format is present.
type Usage uint32

// Usage classes.
const (
	UsageFilesystem Usage = 1 << iota
	UsageRAID
	UsageCrypto
	UsageOther
)

// Encoding selects the on-disk text encoding accepted by SetUTF8Label.
type Encoding int

// Label encodings.
const (
	EncodingUTF16LE Encoding = iota
	EncodingUTF16BE
)

// Session is the probing context handed to a superblock parser.
//
// A parser reads additional bytes through Buffer and reports tagged
// attributes through the setters. Setters honor the request mask installed
// by the caller of the session; a setter for an attribute that was not
// requested is a no-op. SetValue and SetUUIDAs store their value whatever
// the mask.
type Session interface {
	// Buffer returns length bytes at off, relative to the probing window
	// origin. The returned slice is valid only until the next Buffer call
	// with different parameters.
	Buffer(off, length int64) ([]byte, error)

	// Size is the size of the probing window in bytes, 0 if unknown.
	Size() int64

	SetValue(name string, data []byte) error
	SetVersion(version string) error
	SprintfVersion(format string, args ...any) error
	SetLabel(label []byte) error
	SetUTF8Label(label []byte, enc Encoding) error
	SetUUID(uuid []byte) error
	SetUUIDAs(uuid []byte, name string) error
	SprintfUUID(uuid []byte, format string, args ...any) error
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package block exposes read-only geometry of block devices: the prober
// needs the device size and sector size, nothing else.
package block

import "os"

// DefaultBlockSize is assumed for disk images and platforms without a
// sector-size query.
const DefaultBlockSize = 512

// Device wraps an opened block device. It does not own the file.
type Device struct {
	f *os.File
}

// NewFromFile returns a Device over the specified file.
func NewFromFile(f *os.File) *Device {
	return &Device{f: f}
}

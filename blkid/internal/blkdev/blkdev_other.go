// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !linux

package blkdev

import (
	"io"
	"os"
)

// Size returns the size of the file in bytes by seeking to the end.
func Size(f *os.File) (int64, error) {
	return f.Seek(0, io.SeekEnd)
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !linux

package blkid

import "errors"

// ProbePath is not implemented on this platform; it always returns an
// error.
func ProbePath(devpath string, opts ...ProbeOption) (*Info, error) {
	return nil, errors.New("not implemented")
}

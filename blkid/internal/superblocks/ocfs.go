// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// OCFS v1 volume header in the first sector; the signature is sufficient.
var ocfsInfo = &Info{
	Name:  "ocfs",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("OracleCFS"), KBOffset: 0, SBOffset: 0},
	},
}

// OCFS2 stores its superblock inode at a block-size-dependent offset, so
// there is one rule per supported block size.
var ocfs2Info = &Info{
	Name:  "ocfs2",
	Usage: probe.UsageFilesystem,
	Magics: []magic.Magic{
		{Value: []byte("OCFSV2"), KBOffset: 1, SBOffset: 0},
		{Value: []byte("OCFSV2"), KBOffset: 2, SBOffset: 0},
		{Value: []byte("OCFSV2"), KBOffset: 4, SBOffset: 0},
		{Value: []byte("OCFSV2"), KBOffset: 8, SBOffset: 0},
	},
}

// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks_test

import (
	"testing"

	"github.com/siderolabs/gen/xslices"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/superblocks"
)

// The registry order is part of the identification contract: ambiguous
// signatures resolve to the earliest entry.
func TestRegistryOrder(t *testing.T) {
	expected := []string{
		"linux_raid_member",
		"ddf_raid_member",
		"isw_raid_member",
		"lsi_mega_raid_member",
		"via_raid_member",
		"silicon_medley_raid_member",
		"nvidia_raid_member",
		"promise_fasttrack_raid_member",
		"adaptec_raid_member",
		"jmicron_raid_member",
		"LVM2_member",
		"crypto_LUKS",
		"vfat",
		"swsuspend",
		"swap",
		"xfs",
		"ext4dev",
		"ext4",
		"ext3",
		"ext2",
		"jbd",
		"reiserfs",
		"reiser4",
		"jfs",
		"udf",
		"iso9660",
		"hfsplus",
		"hfs",
		"ntfs",
		"cramfs",
		"romfs",
		"gfs",
		"gfs2",
		"ocfs",
		"ocfs2",
		"oracleasm",
	}

	names := xslices.Map(superblocks.Registry(), func(id *superblocks.Info) string {
		return id.Name
	})

	assert.Equal(t, expected, names)
}

func TestRegistryEntries(t *testing.T) {
	for _, id := range superblocks.Registry() {
		require.NotEmpty(t, id.Name)
		require.NotZero(t, id.Usage, "entry %s has no usage class", id.Name)

		// an entry with neither magics nor a probe function could never
		// reject anything and would match every device
		require.True(t, len(id.Magics) > 0 || id.ProbeFunc != nil,
			"entry %s has neither magics nor a probe function", id.Name)

		for _, m := range id.Magics {
			require.NotEmpty(t, m.Value, "entry %s has an empty magic", id.Name)
			require.GreaterOrEqual(t, m.SBOffset, 0)
			require.LessOrEqual(t, m.SBOffset+len(m.Value), magic.BlockSize,
				"entry %s has a magic crossing its block", id.Name)
		}
	}
}

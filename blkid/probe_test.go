// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blkid_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aerusso/go-blkid/blkid"
)

const MiB = 1024 * 1024

// buildImage writes a synthetic disk image and opens it read-only.
func buildImage(t *testing.T, size int64, patch func(img []byte)) *os.File {
	t.Helper()

	img := make([]byte, size)

	if patch != nil {
		patch(img)
	}

	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, img, 0o600))

	f, err := os.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() { f.Close() }) //nolint:errcheck

	return f
}

// text converts a stored value, dropping the terminating NUL if present.
func text(data []byte) string {
	if len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}

	return string(data)
}

// patchFAT16 lays down a structurally valid FAT16 BPB with the given label
// and serial.
func patchFAT16(img []byte, label string, serial [4]byte) {
	copy(img[3:], "mkdosfs ")
	binary.LittleEndian.PutUint16(img[11:], 512)                  // sector size
	img[13] = 4                                                   // sectors per cluster
	binary.LittleEndian.PutUint16(img[14:], 1)                    // reserved
	img[16] = 2                                                   // fats
	binary.LittleEndian.PutUint16(img[17:], 512)                  // root entries
	binary.LittleEndian.PutUint16(img[19:], uint16(len(img)/512)) // sectors
	img[21] = 0xf8                                                // media
	binary.LittleEndian.PutUint16(img[22:], 4)                    // fat length
	copy(img[0x27:], serial[:])
	copy(img[0x2b:], label)
	copy(img[0x36:], "FAT16   ")
}

// patchExt4 lays down an ext4 superblock at 1 KiB.
func patchExt4(img []byte, label string, uuid [16]byte) {
	sb := img[1024:]

	binary.LittleEndian.PutUint16(sb[56:], 0xef53)  // magic
	binary.LittleEndian.PutUint16(sb[62:], 0)       // minor revision
	binary.LittleEndian.PutUint32(sb[76:], 1)       // revision
	binary.LittleEndian.PutUint32(sb[96:], 0x0040)  // incompat: extents
	binary.LittleEndian.PutUint32(sb[100:], 0x0040) // ro compat: extra isize
	copy(sb[104:], uuid[:])
	copy(sb[120:], label)
}

func TestProbeEmptyImage(t *testing.T) {
	f := buildImage(t, MiB, nil)

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestAll)

	assert.False(t, pr.Next())
	assert.Zero(t, pr.NumValues())

	// exhausted stays exhausted
	assert.False(t, pr.Next())
}

func TestProbeVfat(t *testing.T) {
	f := buildImage(t, 32*1024, func(img []byte) {
		patchFAT16(img, "TESTLABEL  ", [4]byte{0xef, 0xbe, 0xad, 0xde})
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestType | blkid.RequestLabel | blkid.RequestUUID)

	require.True(t, pr.Next())

	typ, ok := pr.LookupValue("TYPE")
	require.True(t, ok)
	assert.Equal(t, "vfat", text(typ))

	label, ok := pr.LookupValue("LABEL")
	require.True(t, ok)
	assert.Equal(t, "TESTLABEL", text(label))

	uuid, ok := pr.LookupValue("UUID")
	require.True(t, ok)
	assert.Equal(t, "dead-beef", text(uuid))

	// USAGE was not requested
	assert.False(t, pr.HasValue("USAGE"))
}

func TestProbeExt4(t *testing.T) {
	uuid := [16]byte{
		0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c,
	}

	f := buildImage(t, 2*MiB, func(img []byte) {
		patchExt4(img, "extlabel", uuid)
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestAll)

	require.True(t, pr.Next())

	typ, _ := pr.LookupValue("TYPE")
	assert.Equal(t, "ext4", text(typ))

	usage, _ := pr.LookupValue("USAGE")
	assert.Equal(t, "filesystem", text(usage))

	label, _ := pr.LookupValue("LABEL")
	assert.Equal(t, "extlabel", text(label))

	id, _ := pr.LookupValue("UUID")
	assert.Equal(t, "deadbeef-0102-0304-0506-0708090a0b0c", text(id))

	version, _ := pr.LookupValue("VERSION")
	assert.Equal(t, "1.0", text(version))

	raw, ok := pr.LookupValue("UUID_RAW")
	require.True(t, ok)
	assert.Equal(t, uuid[:], raw)

	assert.False(t, pr.Next())
}

func TestFilterExcludeAndInvert(t *testing.T) {
	f := buildImage(t, 2*MiB, func(img []byte) {
		patchExt4(img, "extlabel", [16]byte{1})
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestType)

	require.NoError(t, pr.FilterTypes(blkid.FilterNotIn, "ext4"))
	assert.False(t, pr.Next())

	require.NoError(t, pr.InvertFilter())
	require.True(t, pr.Next())

	typ, _ := pr.LookupValue("TYPE")
	assert.Equal(t, "ext4", text(typ))
}

// collectTypes drains the probe, returning every matched TYPE in order.
func collectTypes(t *testing.T, pr *blkid.Probe) []string {
	t.Helper()

	var types []string

	for pr.Next() {
		typ, ok := pr.LookupValue("TYPE")
		require.True(t, ok)

		types = append(types, text(typ))
	}

	return types
}

func TestFilterSymmetry(t *testing.T) {
	f := buildImage(t, 2*MiB, func(img []byte) {
		patchExt4(img, "", [16]byte{1})
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestType)

	require.NoError(t, pr.FilterTypes(blkid.FilterOnlyIn, "ext4", "vfat"))
	require.NoError(t, pr.InvertFilter())
	inverted := collectTypes(t, pr)

	require.NoError(t, pr.FilterTypes(blkid.FilterNotIn, "ext4", "vfat"))
	notIn := collectTypes(t, pr)

	assert.Equal(t, notIn, inverted)
}

func TestFilterUsage(t *testing.T) {
	f := buildImage(t, 2*MiB, func(img []byte) {
		patchExt4(img, "", [16]byte{1})
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestType)

	require.NoError(t, pr.FilterUsage(blkid.FilterNotIn, blkid.UsageFilesystem))
	assert.False(t, pr.Next())

	require.NoError(t, pr.FilterUsage(blkid.FilterOnlyIn, blkid.UsageFilesystem))
	assert.True(t, pr.Next())

	// clearing the filter restarts from scratch
	pr.ResetFilter()
	assert.True(t, pr.Next())
}

func TestCursorResume(t *testing.T) {
	// one image carrying both a FAT filesystem and an ISO9660 volume
	// descriptor, like a hybrid CD-ROM
	f := buildImage(t, MiB, func(img []byte) {
		patchFAT16(img, "BOOT       ", [4]byte{1, 2, 3, 4})

		copy(img[0x8000:], "\x01CD001\x01\x00")
		copy(img[0x8000+40:], "CDROM VOLUME                    ")
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestType | blkid.RequestLabel)

	require.True(t, pr.Next())
	typ, _ := pr.LookupValue("TYPE")
	assert.Equal(t, "vfat", text(typ))

	require.True(t, pr.Next())
	typ, _ = pr.LookupValue("TYPE")
	assert.Equal(t, "iso9660", text(typ))

	label, _ := pr.LookupValue("LABEL")
	assert.Equal(t, "CDROM VOLUME", text(label))

	assert.False(t, pr.Next())
}

func TestProbeShortDevice(t *testing.T) {
	f := buildImage(t, 256, nil)

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestAll)

	assert.False(t, pr.Next())
	assert.Zero(t, pr.NumValues())
}

func TestProbeDeterminism(t *testing.T) {
	patch := func(img []byte) {
		patchFAT16(img, "BOOT       ", [4]byte{1, 2, 3, 4})

		copy(img[0x8000:], "\x01CD001\x01\x00")
	}

	f1 := buildImage(t, MiB, patch)
	f2 := buildImage(t, MiB, patch)

	pr1, pr2 := blkid.New(), blkid.New()
	require.NoError(t, pr1.SetDevice(f1, 0, 0))
	require.NoError(t, pr2.SetDevice(f2, 0, 0))

	pr1.SetRequest(blkid.RequestAll)
	pr2.SetRequest(blkid.RequestAll)

	assert.Equal(t, collectTypes(t, pr1), collectTypes(t, pr2))
}

func TestProbeLUKS(t *testing.T) {
	f := buildImage(t, MiB, func(img []byte) {
		copy(img, "LUKS\xba\xbe")
		binary.BigEndian.PutUint16(img[6:], 1)
		copy(img[0xa8:], "0aff1234-5678-9abc-def0-123456789abc")
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestAll)

	require.True(t, pr.Next())

	typ, _ := pr.LookupValue("TYPE")
	assert.Equal(t, "crypto_LUKS", text(typ))

	usage, _ := pr.LookupValue("USAGE")
	assert.Equal(t, "crypto", text(usage))

	id, _ := pr.LookupValue("UUID")
	assert.Equal(t, "0aff1234-5678-9abc-def0-123456789abc", text(id))

	version, _ := pr.LookupValue("VERSION")
	assert.Equal(t, "1", text(version))
}

func TestProbeSwap(t *testing.T) {
	f := buildImage(t, MiB, func(img []byte) {
		copy(img[0xff6:], "SWAPSPACE2")

		binary.LittleEndian.PutUint32(img[1024:], 1)   // version
		binary.LittleEndian.PutUint32(img[1028:], 255) // last page
		img[1036] = 0x42                               // uuid[0]
		copy(img[1052:], "swaplabel")
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestAll)

	require.True(t, pr.Next())

	typ, _ := pr.LookupValue("TYPE")
	assert.Equal(t, "swap", text(typ))

	usage, _ := pr.LookupValue("USAGE")
	assert.Equal(t, "other", text(usage))

	label, _ := pr.LookupValue("LABEL")
	assert.Equal(t, "swaplabel", text(label))

	assert.True(t, pr.HasValue("UUID"))
}

func TestProbeXFS(t *testing.T) {
	f := buildImage(t, MiB, func(img []byte) {
		copy(img, "XFSB")
		binary.BigEndian.PutUint32(img[4:], 4096)
		img[32] = 0xab // uuid[0]
		copy(img[0x6c:], "xfslabel")
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestType | blkid.RequestLabel)

	require.True(t, pr.Next())

	typ, _ := pr.LookupValue("TYPE")
	assert.Equal(t, "xfs", text(typ))

	label, _ := pr.LookupValue("LABEL")
	assert.Equal(t, "xfslabel", text(label))

	// UUID was not requested
	assert.False(t, pr.HasValue("UUID"))
}

func TestProbeNTFS(t *testing.T) {
	f := buildImage(t, MiB, func(img []byte) {
		copy(img[3:], "NTFS    ")
		binary.LittleEndian.PutUint16(img[11:], 512)                // sector size
		img[13] = 1                                                 // sectors per cluster
		binary.LittleEndian.PutUint64(img[48:], 4)                  // MFT cluster
		img[64] = 0xf6                                              // 1 KiB records
		binary.LittleEndian.PutUint64(img[72:], 0x1234567890ABCDEF) // serial

		// $Volume is MFT record 3: 4*512 + 3*1024
		record := img[2048+3072:]
		copy(record, "FILE")
		binary.LittleEndian.PutUint16(record[20:], 56) // first attribute

		attr := record[56:]
		binary.LittleEndian.PutUint32(attr, 0x60)    // VOLUME_NAME
		binary.LittleEndian.PutUint32(attr[4:], 48)  // attribute length
		binary.LittleEndian.PutUint32(attr[16:], 10) // value length
		binary.LittleEndian.PutUint16(attr[20:], 24) // value offset
		copy(attr[24:], "N\x00T\x00V\x00O\x00L\x00") // UTF-16LE

		end := record[56+48:]
		binary.LittleEndian.PutUint32(end, 0xffffffff)
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestAll)

	require.True(t, pr.Next())

	typ, _ := pr.LookupValue("TYPE")
	assert.Equal(t, "ntfs", text(typ))

	id, _ := pr.LookupValue("UUID")
	assert.Equal(t, "1234567890abcdef", text(id))

	label, _ := pr.LookupValue("LABEL")
	assert.Equal(t, "NTVOL", text(label))
}

func TestCursorResetOnRebind(t *testing.T) {
	f := buildImage(t, 2*MiB, func(img []byte) {
		patchExt4(img, "", [16]byte{1})
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, 0, 0))
	pr.SetRequest(blkid.RequestType)

	require.True(t, pr.Next())
	assert.False(t, pr.Next())

	// rebinding restarts the iteration
	require.NoError(t, pr.SetDevice(f, 0, 0))
	assert.True(t, pr.Next())
	assert.Equal(t, 1, pr.NumValues()) // TYPE collected again
}

func TestKnownFstype(t *testing.T) {
	assert.True(t, blkid.KnownFstype("ext4"))
	assert.True(t, blkid.KnownFstype("vfat"))
	assert.True(t, blkid.KnownFstype("linux_raid_member"))
	assert.False(t, blkid.KnownFstype("notafs"))
	assert.False(t, blkid.KnownFstype(""))
}

func TestProbeFile(t *testing.T) {
	f := buildImage(t, 2*MiB, func(img []byte) {
		patchExt4(img, "extlabel", [16]byte{0xaa, 0xbb})
	})

	results, err := blkid.ProbeFile(f, blkid.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "ext4", results[0].Name)
	assert.Equal(t, "filesystem", results[0].Usage)

	require.NotNil(t, results[0].Label)
	assert.Equal(t, "extlabel", *results[0].Label)

	require.NotNil(t, results[0].UUID)
	require.NotNil(t, results[0].Version)
}

func TestProbeAtOffset(t *testing.T) {
	// FAT filesystem starting 1 MiB into the image, probed with an offset
	// window as for a partition
	f := buildImage(t, 2*MiB, func(img []byte) {
		patchFAT16(img[MiB:MiB+32*1024], "PART1      ", [4]byte{1, 2, 3, 4})
	})

	pr := blkid.New()
	require.NoError(t, pr.SetDevice(f, MiB, 32*1024))
	pr.SetRequest(blkid.RequestType | blkid.RequestLabel)

	require.True(t, pr.Next())

	typ, _ := pr.LookupValue("TYPE")
	assert.Equal(t, "vfat", text(typ))

	label, _ := pr.LookupValue("LABEL")
	assert.Equal(t, "PART1", text(label))
}

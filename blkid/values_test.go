// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blkid_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/aerusso/go-blkid/blkid"
)

func TestSetLabelTrim(t *testing.T) {
	pr := blkid.New()
	pr.SetRequest(blkid.RequestLabel | blkid.RequestLabelRaw)

	raw := []byte("ABC \t\r\n ")
	require.NoError(t, pr.SetLabel(raw))

	// the raw variant comes first and carries the on-disk bytes
	name, data, ok := pr.GetValue(0)
	require.True(t, ok)
	assert.Equal(t, "LABEL_RAW", name)
	assert.Equal(t, raw, data)

	// the cooked variant is trimmed and NUL-terminated; the length counts
	// the terminator
	name, data, ok = pr.GetValue(1)
	require.True(t, ok)
	assert.Equal(t, "LABEL", name)
	assert.Equal(t, []byte("ABC\x00"), data)
}

func TestSetLabelEmbeddedNUL(t *testing.T) {
	pr := blkid.New()
	pr.SetRequest(blkid.RequestLabel)

	require.NoError(t, pr.SetLabel([]byte("AB\x00garbage")))

	data, ok := pr.LookupValue("LABEL")
	require.True(t, ok)
	assert.Equal(t, []byte("AB\x00"), data)
}

func TestSetUTF8Label(t *testing.T) {
	pr := blkid.New()
	pr.SetRequest(blkid.RequestLabel | blkid.RequestLabelRaw)

	// "FOO  " in UTF-16LE, NUL-terminated
	raw := []byte{'F', 0, 'O', 0, 'O', 0, ' ', 0, ' ', 0, 0, 0}

	// cross-check the hand-built fixture
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte("FOO  \x00"))
	require.NoError(t, err)
	require.Equal(t, raw, encoded)

	require.NoError(t, pr.SetUTF8Label(raw, blkid.EncodingUTF16LE))

	rawVal, ok := pr.LookupValue("LABEL_RAW")
	require.True(t, ok)
	assert.Equal(t, raw, rawVal)

	// trimmed, and in this path the length excludes the terminator
	label, ok := pr.LookupValue("LABEL")
	require.True(t, ok)
	assert.Equal(t, []byte("FOO"), label)
}

func TestSetUTF8LabelBigEndian(t *testing.T) {
	pr := blkid.New()
	pr.SetRequest(blkid.RequestLabel)

	require.NoError(t, pr.SetUTF8Label([]byte{0, 'B', 0, 'E'}, blkid.EncodingUTF16BE))

	label, ok := pr.LookupValue("LABEL")
	require.True(t, ok)
	assert.Equal(t, []byte("BE"), label)
}

func TestSetUUID(t *testing.T) {
	pr := blkid.New()
	pr.SetRequest(blkid.RequestUUID | blkid.RequestUUIDRaw)

	raw := []byte{
		0xde, 0xad, 0xbe, 0xef, 0xaa, 0xbb, 0xcc, 0xdd,
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	}
	require.NoError(t, pr.SetUUID(raw))

	rawVal, ok := pr.LookupValue("UUID_RAW")
	require.True(t, ok)
	assert.Equal(t, raw, rawVal)

	id, ok := pr.LookupValue("UUID")
	require.True(t, ok)
	assert.Equal(t, "deadbeef-aabb-ccdd-0011-223344556677", text(id))
}

func TestSetUUIDEmpty(t *testing.T) {
	pr := blkid.New()
	pr.SetRequest(blkid.RequestAll)

	require.NoError(t, pr.SetUUID(make([]byte, 16)))

	assert.Zero(t, pr.NumValues())
	assert.False(t, pr.HasValue("UUID"))
	assert.False(t, pr.HasValue("UUID_RAW"))
}

func TestSetUUIDAs(t *testing.T) {
	pr := blkid.New()

	// named UUIDs bypass the request mask
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	require.NoError(t, pr.SetUUIDAs(raw, "UUID_SUB"))

	id, ok := pr.LookupValue("UUID_SUB")
	require.True(t, ok)
	assert.Equal(t, "01020304-0506-0708-090a-0b0c0d0e0f10", text(id))

	assert.False(t, pr.HasValue("UUID_RAW"))
}

func TestSprintfUUIDLowercase(t *testing.T) {
	pr := blkid.New()
	pr.SetRequest(blkid.RequestUUID)

	serial := []byte{0xef, 0xbe, 0xad, 0xde}
	require.NoError(t, pr.SprintfUUID(serial, "%02X%02X-%02X%02X",
		serial[3], serial[2], serial[1], serial[0]))

	id, ok := pr.LookupValue("UUID")
	require.True(t, ok)
	assert.Equal(t, "dead-beef", text(id))

	for _, b := range id {
		assert.False(t, b >= 'A' && b <= 'F')
	}
}

func TestRequestMaskRespected(t *testing.T) {
	pr := blkid.New()

	// nothing requested: every masked setter is a no-op
	require.NoError(t, pr.SetLabel([]byte("label")))
	require.NoError(t, pr.SetUUID([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}))
	require.NoError(t, pr.SetVersion("1.0"))
	require.NoError(t, pr.SprintfVersion("%d", 2))
	require.NoError(t, pr.SprintfUUID([]byte{1}, "%02x", 1))

	assert.Zero(t, pr.NumValues())
}

func TestSetValueTruncates(t *testing.T) {
	pr := blkid.New()

	big := bytes.Repeat([]byte{0x5a}, blkid.ValueBufferSize*2)
	require.NoError(t, pr.SetValue("BLOB", big))

	data, ok := pr.LookupValue("BLOB")
	require.True(t, ok)
	assert.Len(t, data, blkid.ValueBufferSize)
}

func TestValueCapacity(t *testing.T) {
	pr := blkid.New()

	for i := 0; i < blkid.MaxValues; i++ {
		require.NoError(t, pr.SetValue(fmt.Sprintf("V%d", i), []byte{byte(i)}))
	}

	assert.Equal(t, blkid.MaxValues, pr.NumValues())
	assert.ErrorIs(t, pr.SetValue("OVERFLOW", []byte{1}), blkid.ErrValuesFull)
	assert.Equal(t, blkid.MaxValues, pr.NumValues())
}

func TestSprintfVersionRollback(t *testing.T) {
	pr := blkid.New()
	pr.SetRequest(blkid.RequestVersion)

	require.Error(t, pr.SprintfVersion("%s", ""))
	assert.Zero(t, pr.NumValues())

	require.NoError(t, pr.SprintfVersion("%d.%d", 1, 2))

	version, ok := pr.LookupValue("VERSION")
	require.True(t, ok)
	assert.Equal(t, "1.2", text(version))
}

func TestGetValueBounds(t *testing.T) {
	pr := blkid.New()

	_, _, ok := pr.GetValue(-1)
	assert.False(t, ok)

	_, _, ok = pr.GetValue(0)
	assert.False(t, ok)

	_, ok = pr.LookupValue("")
	assert.False(t, ok)
}

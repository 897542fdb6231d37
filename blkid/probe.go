// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blkid

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aerusso/go-blkid/blkid/internal/blkdev"
	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
	"github.com/aerusso/go-blkid/blkid/internal/superblocks"
)

// Probing limits.
const (
	// SBBufferSize is the size of the cached superblock window at the
	// start of the probing range. Reads past it go through the extent
	// buffer.
	SBBufferSize = 64 * 1024

	// ValueBufferSize is the maximum payload of a single probed value.
	ValueBufferSize = 128

	// MaxValues is the number of value slots per probe.
	MaxValues = 16
)

// Request selects which attributes the probing run should collect.
type Request uint32

// Request flags.
const (
	RequestType Request = 1 << iota
	RequestUsage
	RequestVersion
	RequestLabel
	RequestLabelRaw
	RequestUUID
	RequestUUIDRaw

	RequestAll = RequestType | RequestUsage | RequestVersion |
		RequestLabel | RequestLabelRaw | RequestUUID | RequestUUIDRaw
)

// Usage is the coarse format taxonomy, re-exported for filter construction.
type Usage = probe.Usage

// Usage classes.
const (
	UsageFilesystem = probe.UsageFilesystem
	UsageRAID       = probe.UsageRAID
	UsageCrypto     = probe.UsageCrypto
	UsageOther      = probe.UsageOther
)

// Encoding selects the on-disk label encoding for SetUTF8Label.
type Encoding = probe.Encoding

// Label encodings.
const (
	EncodingUTF16LE = probe.EncodingUTF16LE
	EncodingUTF16BE = probe.EncodingUTF16BE
)

// Common errors.
var (
	// ErrNoDevice is returned when the probe has no device bound.
	ErrNoDevice = errors.New("no device is bound to the probe")

	// ErrRange is returned by Buffer for a negative offset or a
	// non-positive length, and when a request inside the superblock window
	// goes past what was read into it. A short read in the extent buffer is
	// reported with the underlying read error instead.
	ErrRange = errors.New("requested range is outside the readable window")
)

// Probe is a single probing session: a bound device window, the read
// buffers, the filter, the request mask and the collected values.
//
// A Probe is not safe for concurrent use; concurrent probing needs one
// Probe (and one file descriptor) per goroutine.
type Probe struct {
	f    *os.File
	off  int64
	size int64

	// Cached window over the first SBBufferSize bytes. sbbufLen is how
	// much was actually read; short reads cap later requests.
	sbbuf    []byte
	sbbufLen int

	// Extent buffer for reads past the superblock window, grown on
	// demand.
	buf    []byte
	bufOff int64
	bufLen int64

	fltr    bitmap
	request Request
	cursor  int

	nvals int
	vals  [MaxValues]prval
}

var _ probe.Session = (*Probe)(nil)

// New returns an empty probe. Bind a device with SetDevice before calling
// Next.
func New() *Probe {
	return &Probe{}
}

// Reset clears the buffers and collected values, keeping the device
// binding, the filter bitmap allocation and the request mask.
func (p *Probe) Reset() {
	clear(p.sbbuf)
	p.sbbufLen = 0

	clear(p.buf)
	p.bufOff = 0
	p.bufLen = 0

	p.resetValues()
	p.cursor = 0
}

// SetDevice binds the probing window: fd, byte offset of the window origin
// and window size. A zero size is queried from the device (BLKGETSIZE64 for
// block devices, end-of-file otherwise); if the query fails the size stays
// zero and size-dependent formats are skipped.
//
// The probe never takes ownership of the file; closing it remains the
// caller's job. Binding resets the iteration cursor and collected values.
func (p *Probe) SetDevice(f *os.File, off, size int64) error {
	if f == nil {
		return ErrNoDevice
	}

	p.Reset()

	p.f = f
	p.off = off
	p.size = size

	if size == 0 {
		if sz, err := blkdev.Size(f); err == nil {
			p.size = sz
		}
	}

	return nil
}

// SetRequest installs the set of attributes to collect.
func (p *Probe) SetRequest(flags Request) {
	p.request = flags
}

// Size returns the size of the probing window in bytes, 0 if unknown.
func (p *Probe) Size() int64 {
	return p.size
}

// Buffer returns length bytes at off, relative to the window origin.
//
// Requests that fit into the first SBBufferSize bytes are served from a
// window that is read once and cached for the lifetime of the binding.
// Larger or more distant requests go through the extent buffer, which is
// re-read on demand; the returned slice is valid only until the next
// Buffer call with different parameters.
func (p *Probe) Buffer(off, length int64) ([]byte, error) {
	if p.f == nil {
		return nil, ErrNoDevice
	}

	if off < 0 || length <= 0 {
		return nil, ErrRange
	}

	if off+length <= SBBufferSize {
		return p.sbWindow(off, length)
	}

	return p.extent(off, length)
}

func (p *Probe) sbWindow(off, length int64) ([]byte, error) {
	if p.sbbuf == nil {
		p.sbbuf = make([]byte, SBBufferSize)
	}

	if p.sbbufLen == 0 {
		n, err := p.f.ReadAt(p.sbbuf, p.off)
		if n == 0 {
			if err == nil || errors.Is(err, io.EOF) {
				return nil, ErrRange
			}

			return nil, fmt.Errorf("superblock window read: %w", err)
		}

		p.sbbufLen = n
	}

	if off+length > int64(p.sbbufLen) {
		return nil, ErrRange
	}

	return p.sbbuf[off : off+length], nil
}

func (p *Probe) extent(off, length int64) ([]byte, error) {
	grown := false

	if length > int64(len(p.buf)) {
		p.buf = make([]byte, length)
		p.bufOff = 0
		p.bufLen = 0
		grown = true
	}

	if grown || off < p.bufOff || off+length > p.bufOff+p.bufLen {
		n, err := p.f.ReadAt(p.buf[:length], p.off+off)
		if int64(n) != length {
			// The buffer contents are garbage now; forget them.
			p.bufLen = 0

			if err == nil {
				err = io.ErrUnexpectedEOF
			}

			return nil, fmt.Errorf("extent read at %d: %w", off, err)
		}

		p.bufOff = off
		p.bufLen = length
	}

	rel := off - p.bufOff

	return p.buf[rel : rel+length], nil
}

// Next advances the probing iteration: starting at the current cursor it
// walks the format registry in order, honoring the filter, and stops at the
// first format whose magic rules and probe function accept the device.
//
// On a match the collected values are available through NumValues, GetValue
// and LookupValue, and the next call resumes at the following registry
// entry, so repeated calls enumerate co-existing signatures (a CD-ROM may
// carry both iso9660 and a boot filesystem). Next returns false when the
// registry is exhausted; that is the normal "nothing (more) found" outcome.
//
// Rebinding the device or touching the filter restarts the iteration; do
// not do either mid-loop.
func (p *Probe) Next() bool {
	p.resetValues()

	if p.f == nil {
		return false
	}

	registry := superblocks.Registry()

	for i := p.cursor; i < len(registry); i++ {
		if p.fltr.isSet(i) {
			continue
		}

		id := registry[i]

		var mag *magic.Magic

		if len(id.Magics) > 0 {
			if mag = p.matchMagic(id.Magics); mag == nil {
				continue
			}
		}

		if id.ProbeFunc != nil {
			if err := id.ProbeFunc(p, mag); err != nil {
				continue
			}
		}

		if p.request&RequestType != 0 {
			p.setTextValue("TYPE", id.Name) //nolint:errcheck
		}

		if p.request&RequestUsage != 0 {
			p.setTextValue("USAGE", usageText(id.Usage)) //nolint:errcheck
		}

		p.cursor = i + 1

		return true
	}

	p.cursor = len(registry)

	return false
}

// matchMagic scans the rules in order and returns the first that matches,
// comparing inside the 1 KiB block containing the rule. Unreadable blocks
// simply don't match.
func (p *Probe) matchMagic(magics []magic.Magic) *magic.Magic {
	for i := range magics {
		m := &magics[i]

		block, err := p.Buffer(m.Block()*magic.BlockSize, magic.BlockSize)
		if err != nil {
			continue
		}

		if m.Matches(block) {
			return m
		}
	}

	return nil
}

func usageText(usage Usage) string {
	switch {
	case usage&UsageFilesystem != 0:
		return "filesystem"
	case usage&UsageRAID != 0:
		return "raid"
	case usage&UsageCrypto != 0:
		return "crypto"
	case usage&UsageOther != 0:
		return "other"
	default:
		return "unknown"
	}
}

// KnownFstype reports whether name is a type the registry can identify.
func KnownFstype(name string) bool {
	for _, id := range superblocks.Registry() {
		if id.Name == name {
			return true
		}
	}

	return false
}

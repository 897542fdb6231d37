// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blkid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrValuesFull is returned by setters when all value slots are taken.
var ErrValuesFull = errors.New("value slots exhausted")

// prval is one collected (name, data) pair. For text values len includes
// the terminating NUL, except for SetUTF8Label which reports the bytes
// written (see that method).
type prval struct {
	name string
	data [ValueBufferSize]byte
	len  int
}

func (p *Probe) resetValues() {
	clear(p.vals[:])
	p.nvals = 0
}

// assignValue claims the next slot, or nil when the store is full.
func (p *Probe) assignValue(name string) *prval {
	if name == "" || p.nvals >= MaxValues {
		return nil
	}

	v := &p.vals[p.nvals]
	v.name = name
	p.nvals++

	return v
}

// NumValues is the number of values collected by the last Next call.
func (p *Probe) NumValues() int {
	return p.nvals
}

// GetValue returns the n-th collected value in emission order.
func (p *Probe) GetValue(n int) (name string, data []byte, ok bool) {
	if n < 0 || n >= p.nvals {
		return "", nil, false
	}

	v := &p.vals[n]

	return v.name, v.data[:v.len], true
}

// LookupValue returns the first value with the given name. The returned
// slice aliases the probe's store and is valid until the next Next call.
func (p *Probe) LookupValue(name string) ([]byte, bool) {
	if name == "" {
		return nil, false
	}

	for i := 0; i < p.nvals; i++ {
		if v := &p.vals[i]; v.name == name {
			return v.data[:v.len], true
		}
	}

	return nil, false
}

// HasValue reports whether a value with the given name was collected.
func (p *Probe) HasValue(name string) bool {
	_, ok := p.LookupValue(name)

	return ok
}

// SetValue stores raw bytes under name, silently truncated to
// ValueBufferSize. It ignores the request mask; parsers use it for
// format-specific attributes that are always wanted.
func (p *Probe) SetValue(name string, data []byte) error {
	if len(data) > ValueBufferSize {
		data = data[:ValueBufferSize]
	}

	v := p.assignValue(name)
	if v == nil {
		return ErrValuesFull
	}

	v.len = copy(v.data[:], data)

	return nil
}

// setTextValue stores a NUL-terminated string; len counts the terminator.
func (p *Probe) setTextValue(name, text string) error {
	v := p.assignValue(name)
	if v == nil {
		return ErrValuesFull
	}

	n := copy(v.data[:ValueBufferSize-1], text)
	v.data[n] = 0
	v.len = n + 1

	return nil
}

// sprintfValue formats into a fresh slot, rolling the slot back when the
// result is empty.
func (p *Probe) sprintfValue(name, format string, args ...any) error {
	v := p.assignValue(name)
	if v == nil {
		return ErrValuesFull
	}

	text := fmt.Sprintf(format, args...)
	if text == "" {
		p.nvals--

		return fmt.Errorf("empty formatted value for %q", name)
	}

	if len(text) > ValueBufferSize-1 {
		text = text[:ValueBufferSize-1]
	}

	n := copy(v.data[:], text)
	v.data[n] = 0
	v.len = n + 1

	return nil
}

// SetVersion stores VERSION when requested.
func (p *Probe) SetVersion(version string) error {
	if p.request&RequestVersion == 0 {
		return nil
	}

	return p.setTextValue("VERSION", version)
}

// SprintfVersion formats and stores VERSION when requested.
func (p *Probe) SprintfVersion(format string, args ...any) error {
	if p.request&RequestVersion == 0 {
		return nil
	}

	return p.sprintfValue("VERSION", format, args...)
}

// SetLabel stores the label attributes: LABEL_RAW gets the on-disk bytes,
// LABEL gets a NUL-terminated copy with trailing ASCII whitespace removed
// (superblock label fields are conventionally space-padded).
func (p *Probe) SetLabel(label []byte) error {
	if len(label) > ValueBufferSize {
		label = label[:ValueBufferSize]
	}

	if p.request&RequestLabelRaw != 0 {
		if err := p.SetValue("LABEL_RAW", label); err != nil {
			return err
		}
	}

	if p.request&RequestLabel == 0 {
		return nil
	}

	v := p.assignValue("LABEL")
	if v == nil {
		return ErrValuesFull
	}

	n := copy(v.data[:ValueBufferSize-1], label)

	// Terminate at an embedded NUL, then strip the padding.
	for i := 0; i < n; i++ {
		if v.data[i] == 0 {
			n = i

			break
		}
	}

	for n > 0 && isASCIISpace(v.data[n-1]) {
		n--
	}

	v.data[n] = 0
	v.len = n + 1

	return nil
}

// SetUTF8Label transcodes a UTF-16 label to UTF-8 and stores it like
// SetLabel. The reported length excludes the terminating NUL.
func (p *Probe) SetUTF8Label(label []byte, enc Encoding) error {
	if p.request&RequestLabelRaw != 0 {
		if err := p.SetValue("LABEL_RAW", label); err != nil {
			return err
		}
	}

	if p.request&RequestLabel == 0 {
		return nil
	}

	v := p.assignValue("LABEL")
	if v == nil {
		return ErrValuesFull
	}

	n := encodeUTF8(enc, v.data[:], label)

	for n > 0 && isASCIISpace(v.data[n-1]) {
		n--
	}

	v.data[n] = 0
	v.len = n

	return nil
}

// SetUUID stores UUID_RAW/UUID from a 16-byte DCE UUID. An all-zero UUID
// stores nothing.
func (p *Probe) SetUUID(u []byte) error {
	return p.SetUUIDAs(u, "")
}

// SetUUIDAs is SetUUID storing under an explicit name (e.g. UUID_SUB).
// Named UUIDs bypass the request mask and have no raw variant.
func (p *Probe) SetUUIDAs(u []byte, name string) error {
	if len(u) != 16 {
		return fmt.Errorf("DCE UUID must be 16 bytes, got %d", len(u))
	}

	if uuidIsEmpty(u) {
		return nil
	}

	var v *prval

	if name == "" {
		if p.request&RequestUUIDRaw != 0 {
			if err := p.SetValue("UUID_RAW", u); err != nil {
				return err
			}
		}

		if p.request&RequestUUID == 0 {
			return nil
		}

		v = p.assignValue("UUID")
	} else {
		v = p.assignValue(name)
	}

	if v == nil {
		return ErrValuesFull
	}

	id, err := uuid.FromBytes(u)
	if err != nil {
		p.nvals--

		return err
	}

	n := copy(v.data[:], id.String())
	v.data[n] = 0
	v.len = n + 1

	return nil
}

// SprintfUUID stores UUID_RAW/UUID for identifiers that are not 16-byte
// DCE UUIDs (serial numbers, vendor ids): the raw bytes plus a formatted
// text form, lowercased for stable display.
func (p *Probe) SprintfUUID(u []byte, format string, args ...any) error {
	if len(u) > ValueBufferSize {
		u = u[:ValueBufferSize]
	}

	if uuidIsEmpty(u) {
		return nil
	}

	if p.request&RequestUUIDRaw != 0 {
		if err := p.SetValue("UUID_RAW", u); err != nil {
			return err
		}
	}

	if p.request&RequestUUID == 0 {
		return nil
	}

	if err := p.sprintfValue("UUID", format, args...); err != nil {
		return err
	}

	lowercaseHex(&p.vals[p.nvals-1])

	return nil
}

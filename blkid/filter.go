// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blkid

import (
	"errors"

	"github.com/siderolabs/gen/xslices"

	"github.com/aerusso/go-blkid/blkid/internal/superblocks"
)

// FilterMode selects the polarity of a filter: probe only the named
// formats, or everything but them.
type FilterMode int

// Filter modes.
const (
	FilterNotIn FilterMode = iota + 1
	FilterOnlyIn
)

// Filter errors.
var (
	ErrNoFilter    = errors.New("no filter is installed")
	ErrEmptyFilter = errors.New("filter selects nothing")
)

// bitmap has one bit per registry index; a set bit means "skip this
// format". A nil bitmap skips nothing.
type bitmap []uint64

const bitmapWordSize = 64

func newBitmap(n int) bitmap {
	return make(bitmap, (n+bitmapWordSize-1)/bitmapWordSize)
}

func (b bitmap) set(item int) {
	b[item/bitmapWordSize] |= 1 << (item % bitmapWordSize)
}

func (b bitmap) isSet(item int) bool {
	if b == nil {
		return false
	}

	return b[item/bitmapWordSize]&(1<<(item%bitmapWordSize)) != 0
}

func (b bitmap) reset() {
	clear(b)
}

func (b bitmap) invert() {
	for i := range b {
		b[i] = ^b[i]
	}
}

// ensureFilter allocates the bitmap on first use, or clears an existing
// one.
func (p *Probe) ensureFilter() {
	if p.fltr == nil {
		p.fltr = newBitmap(len(superblocks.Registry()))
	} else {
		p.fltr.reset()
	}
}

// restartIteration is the common tail of every filter mutation: the next
// Next() starts from the beginning with a clean value store.
func (p *Probe) restartIteration() {
	p.cursor = 0
	p.resetValues()
}

// ResetFilter clears the filter so every format is probed again.
func (p *Probe) ResetFilter() {
	p.fltr.reset()
	p.restartIteration()
}

// FilterTypes restricts probing by format name: with FilterOnlyIn only the
// named formats are probed, with FilterNotIn everything but them.
func (p *Probe) FilterTypes(mode FilterMode, names ...string) error {
	if len(names) == 0 {
		return ErrEmptyFilter
	}

	p.ensureFilter()

	nameSet := xslices.ToSet(names)

	for i, id := range superblocks.Registry() {
		_, has := nameSet[id.Name]

		switch mode {
		case FilterOnlyIn:
			if !has {
				p.fltr.set(i)
			}
		case FilterNotIn:
			if has {
				p.fltr.set(i)
			}
		}
	}

	p.restartIteration()

	return nil
}

// FilterUsage restricts probing by usage class, with the same polarities as
// FilterTypes.
func (p *Probe) FilterUsage(mode FilterMode, usage Usage) error {
	if usage == 0 {
		return ErrEmptyFilter
	}

	p.ensureFilter()

	for i, id := range superblocks.Registry() {
		if id.Usage&usage != 0 {
			if mode == FilterNotIn {
				p.fltr.set(i)
			}
		} else if mode == FilterOnlyIn {
			p.fltr.set(i)
		}
	}

	p.restartIteration()

	return nil
}

// InvertFilter flips the installed filter.
func (p *Probe) InvertFilter() error {
	if p.fltr == nil {
		return ErrNoFilter
	}

	p.fltr.invert()
	p.restartIteration()

	return nil
}

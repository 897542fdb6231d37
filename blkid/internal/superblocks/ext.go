// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package superblocks

import (
	"encoding/binary"

	"github.com/aerusso/go-blkid/blkid/internal/magic"
	"github.com/aerusso/go-blkid/blkid/internal/probe"
)

// The extfs family shares one superblock layout and one magic; the variants
// are told apart by feature flags. Ordering in the registry (ext4dev, ext4,
// ext3, ext2, jbd) plus the mutual-exclusion checks below keep exactly one
// variant matching any given superblock.
const (
	extSBOffset = 1024

	ext2FeatureCompatHasJournal = 0x00000004

	ext2FeatureIncompatJournalDev = 0x00000008
	ext4FeatureIncompatExtents    = 0x00000040
	ext4FeatureIncompat64Bit      = 0x00000080
	ext4FeatureIncompatMMP        = 0x00000100
	ext4FeatureIncompatFlexBG     = 0x00000200

	ext4FeatureROCompatHugeFile   = 0x00000008
	ext4FeatureROCompatGDTCsum    = 0x00000010
	ext4FeatureROCompatDirNlink   = 0x00000020
	ext4FeatureROCompatExtraIsize = 0x00000040

	ext2FlagsTestFilesys = 0x00000004

	ext4IncompatFeatures = ext4FeatureIncompatExtents |
		ext4FeatureIncompat64Bit |
		ext4FeatureIncompatMMP |
		ext4FeatureIncompatFlexBG

	ext4ROCompatFeatures = ext4FeatureROCompatHugeFile |
		ext4FeatureROCompatGDTCsum |
		ext4FeatureROCompatDirNlink |
		ext4FeatureROCompatExtraIsize
)

var extMagics = []magic.Magic{
	{Value: []byte{0x53, 0xef}, KBOffset: 1, SBOffset: 0x38},
}

var (
	ext4devInfo = &Info{Name: "ext4dev", Usage: probe.UsageFilesystem, Magics: extMagics, ProbeFunc: probeExt4dev}
	ext4Info    = &Info{Name: "ext4", Usage: probe.UsageFilesystem, Magics: extMagics, ProbeFunc: probeExt4}
	ext3Info    = &Info{Name: "ext3", Usage: probe.UsageFilesystem, Magics: extMagics, ProbeFunc: probeExt3}
	ext2Info    = &Info{Name: "ext2", Usage: probe.UsageFilesystem, Magics: extMagics, ProbeFunc: probeExt2}
	jbdInfo     = &Info{Name: "jbd", Usage: probe.UsageOther, Magics: extMagics, ProbeFunc: probeJBD}
)

type extSuper []byte

func extSB(s probe.Session) (extSuper, error) {
	buf, err := s.Buffer(extSBOffset, 0x200)

	return extSuper(buf), err
}

func (sb extSuper) featureCompat() uint32 {
	return binary.LittleEndian.Uint32(sb[92:96])
}

func (sb extSuper) featureIncompat() uint32 {
	return binary.LittleEndian.Uint32(sb[96:100])
}

func (sb extSuper) featureROCompat() uint32 {
	return binary.LittleEndian.Uint32(sb[100:104])
}

func (sb extSuper) flags() uint32 {
	return binary.LittleEndian.Uint32(sb[352:356])
}

func (sb extSuper) hasExt4Features() bool {
	return sb.featureIncompat()&ext4IncompatFeatures != 0 ||
		sb.featureROCompat()&ext4ROCompatFeatures != 0
}

// setExtValues emits the attributes shared by the whole family.
func (sb extSuper) setExtValues(s probe.Session) error {
	if err := s.SetUUID(sb[104:120]); err != nil {
		return err
	}

	label := cstring(sb[120:136])
	if len(label) > 0 {
		if err := s.SetLabel(label); err != nil {
			return err
		}
	}

	rev := binary.LittleEndian.Uint32(sb[76:80])
	minor := binary.LittleEndian.Uint16(sb[62:64])

	return s.SprintfVersion("%d.%d", rev, minor)
}

func probeJBD(s probe.Session, _ *magic.Magic) error {
	sb, err := extSB(s)
	if err != nil {
		return err
	}

	if sb.featureIncompat()&ext2FeatureIncompatJournalDev == 0 {
		return errRejected
	}

	return sb.setExtValues(s)
}

func probeExt4dev(s probe.Session, _ *magic.Magic) error {
	sb, err := extSB(s)
	if err != nil {
		return err
	}

	if sb.featureIncompat()&ext2FeatureIncompatJournalDev != 0 {
		return errRejected
	}

	if sb.flags()&ext2FlagsTestFilesys == 0 || !sb.hasExt4Features() {
		return errRejected
	}

	return sb.setExtValues(s)
}

func probeExt4(s probe.Session, _ *magic.Magic) error {
	sb, err := extSB(s)
	if err != nil {
		return err
	}

	if sb.featureIncompat()&ext2FeatureIncompatJournalDev != 0 {
		return errRejected
	}

	if sb.flags()&ext2FlagsTestFilesys != 0 || !sb.hasExt4Features() {
		return errRejected
	}

	return sb.setExtValues(s)
}

func probeExt3(s probe.Session, _ *magic.Magic) error {
	sb, err := extSB(s)
	if err != nil {
		return err
	}

	if sb.featureIncompat()&ext2FeatureIncompatJournalDev != 0 {
		return errRejected
	}

	if sb.featureCompat()&ext2FeatureCompatHasJournal == 0 || sb.hasExt4Features() {
		return errRejected
	}

	return sb.setExtValues(s)
}

func probeExt2(s probe.Session, _ *magic.Magic) error {
	sb, err := extSB(s)
	if err != nil {
		return err
	}

	if sb.featureIncompat()&ext2FeatureIncompatJournalDev != 0 {
		return errRejected
	}

	// A journal makes it ext3 (or ext4); ext4 features without a journal
	// still rule out plain ext2.
	if sb.featureCompat()&ext2FeatureCompatHasJournal != 0 || sb.hasExt4Features() {
		return errRejected
	}

	return sb.setExtValues(s)
}

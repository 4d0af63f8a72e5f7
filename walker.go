// Copyright 2025 The rexif Authors
// SPDX-License-Identifier: MIT

package rexif

import (
	"encoding/binary"
	"fmt"
)

const (
	tiffVersion  = 42
	ifdEntrySize = 12
)

// rawEntry is one undecoded directory entry: everything the walker knows
// before the value decoder runs. valOffset locates the value bytes within
// the TIFF slice, either the 4 inline bytes of the record itself or the
// target of the record's offset field.
type rawEntry struct {
	namespace Namespace
	id        uint16
	typeCode  uint16
	count     uint32
	valOffset uint32
	size      uint64 // typeSize * count; 4 (the inline bytes) for unknown type codes
	known     bool   // type code is one of the twelve defined types
}

func (e rawEntry) typ() Type { return Type(e.typeCode) }

// ifdWork is one pending directory: where it starts and which namespace its
// entries belong to.
type ifdWork struct {
	ns     Namespace
	offset uint32
}

type walker struct {
	r        bufReader
	limit    uint32
	entries  []rawEntry
	warnings []Warning
	visited  map[uint32]bool
	queue    []ifdWork
}

// walk validates the TIFF header and then drains a worklist of directories:
// IFD0 first, then every sub-directory discovered through a pointer tag, and
// IFD0's chain pointer as the thumbnail directory. A directory offset is
// followed at most once; revisiting one is reported as a cycle and the
// branch abandoned, so termination is bounded by the number of distinct
// offsets in the buffer no matter how the pointers are arranged.
func walk(tiff []byte, limitNumTags uint32) (bufReader, []rawEntry, []Warning, error) {
	if len(tiff) < 8 {
		return bufReader{}, nil, nil, fmt.Errorf("%w: tiff header needs 8 bytes, have %d", ErrTruncated, len(tiff))
	}

	var byteOrder binary.ByteOrder
	switch binary.BigEndian.Uint16(tiff) {
	case byteOrderBigEndian:
		byteOrder = binary.BigEndian
	case byteOrderLittleEndian:
		byteOrder = binary.LittleEndian
	default:
		return bufReader{}, nil, nil, fmt.Errorf("%w: bad byte-order marker 0x%02x%02x", ErrInvalidHeader, tiff[0], tiff[1])
	}

	r := bufReader{buf: tiff, byteOrder: byteOrder}

	if version, _ := r.u16(2); version != tiffVersion {
		return bufReader{}, nil, nil, fmt.Errorf("%w: version %d", ErrInvalidHeader, version)
	}

	ifd0, _ := r.u32(4)
	if !r.in(ifd0, 2) {
		return bufReader{}, nil, nil, fmt.Errorf("%w: first directory offset %d past buffer", ErrTruncated, ifd0)
	}

	w := &walker{
		r:       r,
		limit:   limitNumTags,
		visited: map[uint32]bool{},
		queue:   []ifdWork{{NamespacePrimary, ifd0}},
	}

	for len(w.queue) > 0 {
		work := w.queue[0]
		w.queue = w.queue[1:]
		if w.visited[work.offset] {
			w.warnf(Warning{Kind: WarnCycleDetected, Namespace: work.ns,
				Message: fmt.Sprintf("directory offset %d already visited", work.offset)})
			continue
		}
		w.visited[work.offset] = true
		if !w.walkIFD(work) {
			break
		}
	}

	return r, w.entries, w.warnings, nil
}

func (w *walker) warnf(warning Warning) {
	w.warnings = append(w.warnings, warning)
}

// walkIFD parses one directory. It returns false when the tag limit is
// reached and the walk should stop.
func (w *walker) walkIFD(work ifdWork) bool {
	count, err := w.r.u16(work.offset)
	if err != nil {
		w.warnf(Warning{Kind: WarnTruncated, Namespace: work.ns,
			Message: fmt.Sprintf("directory at offset %d: no entry count", work.offset)})
		return true
	}

	truncated := false
	for i := uint32(0); i < uint32(count); i++ {
		// 64-bit arithmetic: a directory start near the 4 GB boundary must
		// not wrap into a bogus in-bounds offset.
		entryOffset64 := uint64(work.offset) + 2 + uint64(i)*ifdEntrySize
		if entryOffset64+ifdEntrySize > uint64(len(w.r.buf)) {
			w.warnf(Warning{Kind: WarnTruncated, Namespace: work.ns,
				Message: fmt.Sprintf("directory at offset %d: %d entries declared, %d fit", work.offset, count, i)})
			truncated = true
			break
		}
		if uint32(len(w.entries)) >= w.limit {
			return false
		}
		w.walkEntry(work.ns, uint32(entryOffset64))
	}

	// IFD0's chain pointer leads to the thumbnail directory.
	if work.ns == NamespacePrimary && !truncated {
		nextOffset64 := uint64(work.offset) + 2 + uint64(count)*ifdEntrySize
		if nextOffset64+4 > uint64(len(w.r.buf)) {
			return true
		}
		next, err := w.r.u32(uint32(nextOffset64))
		if err != nil || next == 0 {
			return true
		}
		if !w.r.in(next, 2) {
			w.warnf(Warning{Kind: WarnOutOfBounds, Namespace: NamespaceThumbnail,
				Message: fmt.Sprintf("thumbnail directory offset %d past buffer", next)})
			return true
		}
		w.queue = append(w.queue, ifdWork{NamespaceThumbnail, next})
	}

	return true
}

// An entry is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself if it fits, otherwise for an offset to
//     where the value is stored; for a handful of tag IDs that offset is the
//     start of another directory.
func (w *walker) walkEntry(ns Namespace, entryOffset uint32) {
	id, _ := w.r.u16(entryOffset)
	typeCode, _ := w.r.u16(entryOffset + 2)
	count, _ := w.r.u32(entryOffset + 4)

	width, known := typeSize[Type(typeCode)]

	entry := rawEntry{
		namespace: ns,
		id:        id,
		typeCode:  typeCode,
		count:     count,
		valOffset: entryOffset + 8,
		size:      4,
		known:     known,
	}
	if known {
		entry.size = uint64(width) * uint64(count)
		if entry.size > 4 {
			entry.valOffset, _ = w.r.u32(entryOffset + 8)
		}
	}
	w.entries = append(w.entries, entry)

	if subNS, ok := subIFDPointer(ns, id); ok {
		target, _ := w.r.u32(entryOffset + 8)
		if !w.r.in(target, 2) {
			w.warnf(Warning{Kind: WarnOutOfBounds, Namespace: ns, TagID: id,
				Message: fmt.Sprintf("sub-directory offset %d past buffer", target)})
			return
		}
		w.queue = append(w.queue, ifdWork{subNS, target})
	}
}

// subIFDPointer reports whether tag id within namespace ns points at a
// further directory, and which namespace that directory's entries get.
func subIFDPointer(ns Namespace, id uint16) (Namespace, bool) {
	switch {
	case ns == NamespacePrimary && id == tagExifIFD:
		return NamespaceExif, true
	case ns == NamespacePrimary && id == tagGPSIFD:
		return NamespaceGPS, true
	case ns == NamespaceExif && id == tagInteropIFD:
		return NamespaceInterop, true
	default:
		return 0, false
	}
}

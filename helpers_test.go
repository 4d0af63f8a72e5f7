// Copyright 2025 The rexif Authors
// SPDX-License-Identifier: MIT

package rexif_test

import (
	"encoding/binary"
	"math"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"

	"github.com/gabi-250/rexif"
)

// entry describes one directory record for buildTIFF. Exactly one of
// inline, data, sub or rawVal supplies the 4-byte value field.
type entry struct {
	id     uint16
	typ    rexif.Type
	count  uint32
	inline []byte  // value stored in the record itself, padded to 4 bytes
	data   []byte  // value placed after the directories, offset patched in
	sub    *ifd    // sub-directory, offset patched in
	rawVal *uint32 // verbatim value field, for deliberately corrupt layouts
}

type ifd struct {
	entries []entry
	next    *ifd
	nextRaw uint32 // verbatim chain pointer, used when next is nil
}

// buildTIFF lays out a complete TIFF stream: the 8-byte header, the
// directories in breadth-first order starting at offset 8, the out-of-line
// values, then trailing verbatim.
func buildTIFF(bo binary.ByteOrder, ifd0 *ifd, trailing ...byte) []byte {
	offsets := map[*ifd]uint32{}
	var dirs []*ifd
	pos := uint32(8)
	for queue := []*ifd{ifd0}; len(queue) > 0; queue = queue[1:] {
		d := queue[0]
		dirs = append(dirs, d)
		offsets[d] = pos
		pos += 2 + 12*uint32(len(d.entries)) + 4
		for _, e := range d.entries {
			if e.sub != nil {
				queue = append(queue, e.sub)
			}
		}
		if d.next != nil {
			queue = append(queue, d.next)
		}
	}

	dataOffsets := map[*entry]uint32{}
	for _, d := range dirs {
		for i := range d.entries {
			e := &d.entries[i]
			if e.data != nil {
				dataOffsets[e] = pos
				pos += uint32(len(e.data))
			}
		}
	}

	buf := make([]byte, 0, int(pos)+len(trailing))
	u16 := func(v uint16) {
		var b [2]byte
		bo.PutUint16(b[:], v)
		buf = append(buf, b[:]...)
	}
	u32 := func(v uint32) {
		var b [4]byte
		bo.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}

	if bo == binary.ByteOrder(binary.LittleEndian) {
		buf = append(buf, 'I', 'I')
	} else {
		buf = append(buf, 'M', 'M')
	}
	u16(42)
	u32(8)

	for _, d := range dirs {
		u16(uint16(len(d.entries)))
		for i := range d.entries {
			e := &d.entries[i]
			u16(e.id)
			u16(uint16(e.typ))
			u32(e.count)
			switch {
			case e.rawVal != nil:
				u32(*e.rawVal)
			case e.sub != nil:
				u32(offsets[e.sub])
			case e.data != nil:
				u32(dataOffsets[e])
			default:
				var v [4]byte
				copy(v[:], e.inline)
				buf = append(buf, v[:]...)
			}
		}
		switch {
		case d.next != nil:
			u32(offsets[d.next])
		default:
			u32(d.nextRaw)
		}
	}

	for _, d := range dirs {
		for i := range d.entries {
			if e := &d.entries[i]; e.data != nil {
				buf = append(buf, e.data...)
			}
		}
	}

	return append(buf, trailing...)
}

// jpegWrap embeds a TIFF stream in a minimal JPEG: SOI, an unrelated APP0
// segment the scanner must step over, the Exif APP1 segment, then the start
// of the entropy-coded data.
func jpegWrap(tiff []byte) []byte {
	var buf []byte
	buf = append(buf, 0xff, 0xd8)
	buf = append(buf, 0xff, 0xe0, 0x00, 0x04, 'J', 'F')
	app1len := uint16(2 + 6 + len(tiff))
	buf = append(buf, 0xff, 0xe1, byte(app1len>>8), byte(app1len))
	buf = append(buf, "Exif\x00\x00"...)
	buf = append(buf, tiff...)
	buf = append(buf, 0xff, 0xda, 0x00, 0x02)
	buf = append(buf, 0x12, 0x34, 0x56)
	buf = append(buf, 0xff, 0xd9)
	return buf
}

func inline16(bo binary.ByteOrder, v uint16) []byte {
	b := make([]byte, 2)
	bo.PutUint16(b, v)
	return b
}

func inline32(bo binary.ByteOrder, v uint32) []byte {
	b := make([]byte, 4)
	bo.PutUint32(b, v)
	return b
}

func shorts(bo binary.ByteOrder, vs ...uint16) []byte {
	b := make([]byte, 2*len(vs))
	for i, v := range vs {
		bo.PutUint16(b[2*i:], v)
	}
	return b
}

func longs(bo binary.ByteOrder, vs ...uint32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		bo.PutUint32(b[4*i:], v)
	}
	return b
}

// rats encodes numerator/denominator pairs.
func rats(bo binary.ByteOrder, pairs ...uint32) []byte {
	return longs(bo, pairs...)
}

// ascii encodes a string value with its NUL terminator.
func ascii(s string) []byte {
	return append([]byte(s), 0)
}

func u32p(v uint32) *uint32 {
	return &v
}

var eq = qt.CmpEquals(
	cmp.Comparer(func(x, y rexif.Rat[uint32]) bool {
		return x.String() == y.String()
	}),
	cmp.Comparer(func(x, y rexif.Rat[int32]) bool {
		return x.String() == y.String()
	}),
	cmp.Comparer(func(x, y float64) bool {
		delta := math.Abs(x - y)
		mean := math.Abs(x+y) / 2.0
		return delta/mean < 0.00001
	}),
)

// Copyright 2025 The rexif Authors
// SPDX-License-Identifier: MIT

package rexif

import (
	"encoding/binary"
	"errors"
	"math"
)

var errOutOfBounds = errors.New("offset out of bounds")

// bufReader reads fixed-width integers out of an in-memory TIFF slice under
// a byte order fixed once per header. Every read validates its extent
// against the slice length; the self-referential offsets in the format make
// that check the load-bearing one, so nothing here panics or slices blindly.
type bufReader struct {
	buf       []byte
	byteOrder binary.ByteOrder
}

func (r bufReader) len() uint32 {
	if len(r.buf) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(len(r.buf))
}

// in reports whether [offset, offset+n) lies within the buffer.
// The sum is computed in 64 bits so corrupt values cannot wrap.
func (r bufReader) in(offset uint32, n uint64) bool {
	return uint64(offset)+n <= uint64(len(r.buf))
}

// bytes returns the n bytes at offset as a sub-slice of the buffer.
func (r bufReader) bytes(offset uint32, n uint64) ([]byte, error) {
	if !r.in(offset, n) {
		return nil, errOutOfBounds
	}
	return r.buf[offset : uint64(offset)+n], nil
}

func (r bufReader) u8(offset uint32) (uint8, error) {
	if !r.in(offset, 1) {
		return 0, errOutOfBounds
	}
	return r.buf[offset], nil
}

func (r bufReader) u16(offset uint32) (uint16, error) {
	if !r.in(offset, 2) {
		return 0, errOutOfBounds
	}
	return r.byteOrder.Uint16(r.buf[offset:]), nil
}

func (r bufReader) u32(offset uint32) (uint32, error) {
	if !r.in(offset, 4) {
		return 0, errOutOfBounds
	}
	return r.byteOrder.Uint32(r.buf[offset:]), nil
}

func (r bufReader) i16(offset uint32) (int16, error) {
	v, err := r.u16(offset)
	return int16(v), err
}

func (r bufReader) i32(offset uint32) (int32, error) {
	v, err := r.u32(offset)
	return int32(v), err
}

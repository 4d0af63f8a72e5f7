// Copyright 2025 The rexif Authors
// SPDX-License-Identifier: MIT

// Package rexif extracts Exif/TIFF tag metadata from in-memory JPEG and
// TIFF buffers. The caller owns all I/O: Parse takes a fully loaded byte
// buffer and returns the decoded tags, the non-fatal problems encountered
// along the way, and never touches a file or the network.
package rexif

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Options controls the defensive limits of a parse.
type Options struct {
	// LimitNumTags is the maximum number of tags to read; the walk stops
	// once it is reached. Default 5000.
	LimitNumTags uint32

	// LimitTagSize is the maximum size in bytes of a single tag value.
	// Larger values are skipped without notice. Default 10000.
	LimitTagSize uint32
}

const (
	defaultLimitNumTags = 5000
	defaultLimitTagSize = 10000
)

// TagEntry is one decoded directory entry.
type TagEntry struct {
	// Namespace is the directory the tag was found in.
	Namespace Namespace
	// ID is the numeric tag id.
	ID uint16
	// Name is the canonical tag name, or UnknownPrefix plus the hex id for
	// tags the registry does not know.
	Name string
	// Type is the declared value type code.
	Type Type
	// Count is the declared number of values.
	Count uint32
	// Value holds the decoded value: []byte, string, []uint16, []uint32,
	// []int8, []int16, []int32, []Rat[uint32], []Rat[int32], []float32 or
	// []float64 depending on Type.
	Value any
	// Semantic holds the higher-level interpretation where one applies:
	// Coordinate, time.Time, ByteRange, Orientation or a decoded string.
	// It is nil for the (common) tags with no semantic mapping.
	Semantic any
}

// Int returns the i-th value as an integer for the integer-typed entries.
func (e TagEntry) Int(i int) (int64, bool) {
	switch v := e.Value.(type) {
	case []byte:
		if i < len(v) {
			return int64(v[i]), true
		}
	case []int8:
		if i < len(v) {
			return int64(v[i]), true
		}
	case []uint16:
		if i < len(v) {
			return int64(v[i]), true
		}
	case []int16:
		if i < len(v) {
			return int64(v[i]), true
		}
	case []uint32:
		if i < len(v) {
			return int64(v[i]), true
		}
	case []int32:
		if i < len(v) {
			return int64(v[i]), true
		}
	}
	return 0, false
}

// Float returns the i-th value as a float for numeric and rational entries.
func (e TagEntry) Float(i int) (float64, bool) {
	switch v := e.Value.(type) {
	case []Rat[uint32]:
		if i < len(v) {
			return v[i].Float64(), true
		}
	case []Rat[int32]:
		if i < len(v) {
			return v[i].Float64(), true
		}
	case []float32:
		if i < len(v) {
			return float64(v[i]), true
		}
	case []float64:
		if i < len(v) {
			return v[i], true
		}
	default:
		if n, ok := e.Int(i); ok {
			return float64(n), true
		}
	}
	return 0, false
}

// Text returns the value of an ASCII-typed entry.
func (e TagEntry) Text() (string, bool) {
	s, ok := e.Value.(string)
	return s, ok
}

// ParseResult is the outcome of one parse: the decoded entries in directory
// traversal order, the warnings accumulated along the way, and the detected
// container and byte order. It is self-contained; nothing references the
// parser after Parse returns.
type ParseResult struct {
	// Container is the detected outer format.
	Container ContainerKind
	// ByteOrder is the byte order declared by the TIFF header.
	ByteOrder binary.ByteOrder
	// Entries are the decoded tags in traversal order.
	Entries []TagEntry
	// Warnings are the non-fatal problems encountered.
	Warnings []Warning
}

// Lookup returns the first entry with the given namespace and tag id.
func (p *ParseResult) Lookup(ns Namespace, id uint16) (TagEntry, bool) {
	for _, e := range p.Entries {
		if e.Namespace == ns && e.ID == id {
			return e, true
		}
	}
	return TagEntry{}, false
}

// LatLong returns the GPS position in signed decimal degrees.
// ok is false when either coordinate is absent or failed its conversion.
func (p *ParseResult) LatLong() (lat, long float64, ok bool) {
	latEntry, found := p.Lookup(NamespaceGPS, tagGPSLatitude)
	if !found {
		return 0, 0, false
	}
	longEntry, found := p.Lookup(NamespaceGPS, tagGPSLongitude)
	if !found {
		return 0, 0, false
	}
	latC, ok1 := latEntry.Semantic.(Coordinate)
	longC, ok2 := longEntry.Semantic.(Coordinate)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return float64(latC), float64(longC), true
}

// DateTime returns the capture time, preferring DateTimeOriginal over the
// file-modification DateTime.
func (p *ParseResult) DateTime() (time.Time, bool) {
	if e, found := p.Lookup(NamespaceExif, tagExifDateTimeOrig); found {
		if t, ok := e.Semantic.(time.Time); ok {
			return t, true
		}
	}
	if e, found := p.Lookup(NamespacePrimary, tagDateTime); found {
		if t, ok := e.Semantic.(time.Time); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Orientation returns the primary image orientation, or
// OrientationUnspecified when absent or unrecognized.
func (p *ParseResult) Orientation() Orientation {
	if e, found := p.Lookup(NamespacePrimary, tagOrientation); found {
		if o, ok := e.Semantic.(Orientation); ok {
			return o
		}
	}
	return OrientationUnspecified
}

// Thumbnail returns the validated byte range of the embedded thumbnail
// within the buffer handed to Parse. The caller slices that buffer itself.
func (p *ParseResult) Thumbnail() (ByteRange, bool) {
	if e, found := p.Lookup(NamespaceThumbnail, tagThumbOffset); found {
		if r, ok := e.Semantic.(ByteRange); ok {
			return r, true
		}
	}
	return ByteRange{}, false
}

// Parse decodes the Exif/TIFF metadata in buf with default limits.
func Parse(buf []byte) (*ParseResult, error) {
	return ParseWithOptions(buf, Options{})
}

// ParseWithOptions decodes the Exif/TIFF metadata in buf.
//
// The error is non-nil only for fatal conditions: an unrecognized
// container, a JPEG without an Exif segment, or an unusable TIFF header.
// Everything else degrades to a Warning on the returned result, so the
// caller can use whatever was successfully decoded.
func ParseWithOptions(buf []byte, opts Options) (*ParseResult, error) {
	if opts.LimitNumTags == 0 {
		opts.LimitNumTags = defaultLimitNumTags
	}
	if opts.LimitTagSize == 0 {
		opts.LimitTagSize = defaultLimitTagSize
	}

	kind, base, tiff, err := locate(buf)
	if err != nil {
		return nil, err
	}

	r, raws, warnings, err := walk(tiff, opts.LimitNumTags)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Container: kind,
		ByteOrder: r.byteOrder,
		Entries:   make([]TagEntry, 0, len(raws)),
		Warnings:  warnings,
	}

	for _, raw := range raws {
		value, warning, keep := decodeValue(r, raw, opts.LimitTagSize)
		if warning != nil {
			result.Warnings = append(result.Warnings, *warning)
		}
		if !keep {
			continue
		}

		entry := TagEntry{
			Namespace: raw.namespace,
			ID:        raw.id,
			Name:      unknownTagName(raw.id),
			Type:      raw.typ(),
			Count:     raw.count,
			Value:     value,
		}
		if fi, known := lookupField(raw.namespace, raw.id); known {
			entry.Name = fi.name
			result.Warnings = append(result.Warnings, validateAgainstRegistry(raw, fi)...)
		}
		result.Entries = append(result.Entries, entry)
	}

	applySemantics(result.Entries, r.byteOrder, base, len(tiff))

	return result, nil
}

func unknownTagName(id uint16) string {
	return fmt.Sprintf("%s0x%04x", UnknownPrefix, id)
}

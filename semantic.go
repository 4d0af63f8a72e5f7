package rexif

import (
	"bytes"
	"encoding/binary"
	"strings"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Orientation is the decoded image orientation.
type Orientation uint8

const (
	OrientationUnspecified Orientation = iota
	OrientationNormal
	OrientationFlipH
	OrientationRotate180
	OrientationFlipV
	OrientationTranspose
	OrientationRotate270
	OrientationTransverse
	OrientationRotate90
)

var orientationNames = [...]string{
	"Unspecified", "Normal", "FlipH", "Rotate180", "FlipV",
	"Transpose", "Rotate270", "Transverse", "Rotate90",
}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return "Unspecified"
}

// Coordinate is a GPS latitude or longitude in signed decimal degrees.
// South and west are negative.
type Coordinate float64

// ByteRange locates a span of bytes within the buffer handed to Parse.
// The caller slices the original buffer itself; nothing is copied.
type ByteRange struct {
	Offset uint32
	Length uint32
}

// dateTimeLayout is the fixed Exif text layout for date/time tags.
const dateTimeLayout = "2006:01:02 15:04:05"

// UserComment character-set prefixes (8 bytes each).
var (
	charsetASCII   = []byte("ASCII\x00\x00\x00")
	charsetUnicode = []byte("UNICODE\x00")
	charsetJIS     = []byte("JIS\x00\x00\x00\x00\x00")
)

// applySemantics runs the post-processing pass over the decoded entries,
// attaching higher-level values to the well-known ones. base is the offset
// of the TIFF slice within the caller's buffer and tiffLen its length; the
// thumbnail range is rebased to the caller's buffer using them. A rule that
// does not match its input simply leaves Semantic nil; the raw value is
// reported regardless.
func applySemantics(entries []TagEntry, byteOrder binary.ByteOrder, base uint32, tiffLen int) {
	byTag := make(map[Namespace]map[uint16]int)
	for i, e := range entries {
		m := byTag[e.Namespace]
		if m == nil {
			m = make(map[uint16]int)
			byTag[e.Namespace] = m
		}
		if _, seen := m[e.ID]; !seen {
			m[e.ID] = i
		}
	}
	lookup := func(ns Namespace, id uint16) (TagEntry, bool) {
		if i, ok := byTag[ns][id]; ok {
			return entries[i], true
		}
		return TagEntry{}, false
	}

	for i := range entries {
		e := &entries[i]
		switch {
		case e.Namespace == NamespaceGPS && (e.ID == tagGPSLatitude || e.ID == tagGPSLongitude):
			refID := uint16(tagGPSLatitudeRef)
			negate := "S"
			if e.ID == tagGPSLongitude {
				refID = tagGPSLongitudeRef
				negate = "W"
			}
			deg, ok := toDegrees(e.Value)
			if !ok {
				continue
			}
			if ref, found := lookup(NamespaceGPS, refID); found {
				if s, isStr := ref.Value.(string); isStr && strings.TrimSpace(s) == negate {
					deg = -deg
				}
			}
			e.Semantic = Coordinate(deg)

		case e.ID == tagDateTime && (e.Namespace == NamespacePrimary || e.Namespace == NamespaceThumbnail),
			e.Namespace == NamespaceExif && (e.ID == tagExifDateTimeOrig || e.ID == tagExifDateTimeDig):
			s, ok := e.Value.(string)
			if !ok {
				continue
			}
			if t, err := time.Parse(dateTimeLayout, strings.TrimSpace(s)); err == nil {
				e.Semantic = t
			}

		case e.ID == tagOrientation && (e.Namespace == NamespacePrimary || e.Namespace == NamespaceThumbnail):
			code, ok := firstUint(e.Value)
			if ok && code >= 1 && code <= 8 {
				e.Semantic = Orientation(code)
			}

		case e.Namespace == NamespaceThumbnail && e.ID == tagThumbOffset:
			offset, ok := firstUint(e.Value)
			if !ok {
				continue
			}
			lengthEntry, found := lookup(NamespaceThumbnail, tagThumbLength)
			if !found {
				continue
			}
			length, ok := firstUint(lengthEntry.Value)
			if !ok || length == 0 {
				continue
			}
			// The thumbnail bytes must lie inside the TIFF slice.
			if uint64(offset)+uint64(length) > uint64(tiffLen) {
				continue
			}
			e.Semantic = ByteRange{Offset: base + uint32(offset), Length: uint32(length)}

		case e.Namespace == NamespaceExif && e.ID == tagUserComment:
			if s, ok := decodeUserComment(e.Value, byteOrder); ok {
				e.Semantic = s
			}

		case e.Namespace == NamespacePrimary && e.ID >= tagXPTitle && e.ID <= tagXPSubject:
			if s, ok := decodeUTF16(e.Value, unicode.LittleEndian); ok {
				e.Semantic = s
			}
		}
	}
}

// toDegrees combines a (degrees, minutes, seconds) rational triple into
// decimal degrees. Any zero denominator disqualifies the triple.
func toDegrees(v any) (float64, bool) {
	rats, ok := v.([]Rat[uint32])
	if !ok || len(rats) != 3 {
		return 0, false
	}
	for _, r := range rats {
		if !r.IsValid() {
			return 0, false
		}
	}
	return rats[0].Float64() + rats[1].Float64()/60 + rats[2].Float64()/3600, true
}

// decodeUserComment interprets the 8-byte character-set prefix of the
// UserComment tag. The UNICODE charset is UCS-2 in the byte order of the
// enclosing TIFF structure.
func decodeUserComment(v any, byteOrder binary.ByteOrder) (string, bool) {
	b, ok := v.([]byte)
	if !ok || len(b) < 8 {
		return "", false
	}
	charset, text := b[:8], b[8:]
	switch {
	case bytes.Equal(charset, charsetASCII):
		return strings.TrimRight(string(text), "\x00 "), true
	case bytes.Equal(charset, charsetUnicode):
		endianness := unicode.BigEndian
		if byteOrder == binary.LittleEndian {
			endianness = unicode.LittleEndian
		}
		decoded, err := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder().Bytes(text)
		if err != nil {
			return "", false
		}
		return strings.TrimRight(string(decoded), "\x00 "), true
	case bytes.Equal(charset, charsetJIS):
		decoded, err := japanese.ISO2022JP.NewDecoder().Bytes(text)
		if err != nil {
			return "", false
		}
		return strings.TrimRight(string(decoded), "\x00 "), true
	default:
		return "", false
	}
}

// decodeUTF16 decodes the UCS-2 byte payload of the XP* tags.
func decodeUTF16(v any, endianness unicode.Endianness) (string, bool) {
	b, ok := v.([]byte)
	if !ok || len(b) == 0 {
		return "", false
	}
	decoded, err := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return strings.TrimRight(string(decoded), "\x00"), true
}

// firstUint extracts the first element of an unsigned integer slice value.
func firstUint(v any) (uint32, bool) {
	switch vv := v.(type) {
	case []uint16:
		if len(vv) > 0 {
			return uint32(vv[0]), true
		}
	case []uint32:
		if len(vv) > 0 {
			return vv[0], true
		}
	case []byte:
		if len(vv) > 0 {
			return uint32(vv[0]), true
		}
	}
	return 0, false
}

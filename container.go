package rexif

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ContainerKind is the detected outer format of the parsed buffer.
type ContainerKind uint8

const (
	// ContainerTIFF is a bare TIFF stream.
	ContainerTIFF ContainerKind = iota + 1
	// ContainerJPEG is a JPEG stream with an embedded Exif segment.
	ContainerJPEG
)

func (c ContainerKind) String() string {
	switch c {
	case ContainerTIFF:
		return "TIFF"
	case ContainerJPEG:
		return "JPEG"
	default:
		return fmt.Sprintf("ContainerKind(%d)", uint8(c))
	}
}

const (
	markerSOI  = 0xffd8
	markerEOI  = 0xffd9
	markerSOS  = 0xffda
	markerAPP1 = 0xffe1
	markerTEM  = 0xff01

	byteOrderBigEndian    = 0x4d4d // "MM"
	byteOrderLittleEndian = 0x4949 // "II"
)

// exifSignature prefixes the APP1 payload that carries TIFF-structured metadata.
var exifSignature = []byte("Exif\x00\x00")

// locate finds the TIFF-structured metadata block in buf.
// It returns the container kind, the offset of the TIFF slice within buf,
// and the slice itself. The slice aliases buf; nothing is copied.
func locate(buf []byte) (ContainerKind, uint32, []byte, error) {
	if len(buf) < 2 {
		return 0, 0, nil, fmt.Errorf("%w: %d bytes", ErrUnrecognizedContainer, len(buf))
	}

	head := binary.BigEndian.Uint16(buf)
	switch head {
	case byteOrderBigEndian, byteOrderLittleEndian:
		return ContainerTIFF, 0, buf, nil
	case markerSOI:
		base, tiff, err := locateJPEG(buf)
		if err != nil {
			return 0, 0, nil, err
		}
		return ContainerJPEG, base, tiff, nil
	default:
		return 0, 0, nil, fmt.Errorf("%w: preamble 0x%04x", ErrUnrecognizedContainer, head)
	}
}

// locateJPEG scans the marker segments after SOI for an APP1 segment whose
// payload starts with the Exif signature. The scan gives up at SOS or EOI;
// compressed image data follows and no metadata segment can appear there.
func locateJPEG(buf []byte) (uint32, []byte, error) {
	offset := 2

	for {
		if offset+4 > len(buf) {
			return 0, nil, fmt.Errorf("%w: ran out of jpeg markers", ErrNoExif)
		}

		marker := binary.BigEndian.Uint16(buf[offset:])

		// All JPEG markers begin with 0xff.
		if marker>>8 != 0xff {
			return 0, nil, fmt.Errorf("%w: bad marker 0x%04x at offset %d", ErrNoExif, marker, offset)
		}

		// Standalone markers carry no length field.
		if marker == markerTEM || (marker >= 0xffd0 && marker <= 0xffd7) {
			offset += 2
			continue
		}

		if marker == markerSOS || marker == markerEOI {
			return 0, nil, fmt.Errorf("%w: reached 0x%04x", ErrNoExif, marker)
		}

		// The segment length includes its own 2 bytes.
		length := int(binary.BigEndian.Uint16(buf[offset+2:]))
		if length < 2 {
			return 0, nil, fmt.Errorf("%w: segment length %d at offset %d", ErrTruncated, length, offset)
		}
		end := offset + 2 + length
		if end > len(buf) {
			return 0, nil, fmt.Errorf("%w: segment at offset %d extends past buffer", ErrTruncated, offset)
		}

		payload := buf[offset+4 : end]
		if marker == markerAPP1 && bytes.HasPrefix(payload, exifSignature) {
			base := uint32(offset + 4 + len(exifSignature))
			return base, buf[base:end], nil
		}

		offset = end
	}
}

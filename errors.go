package rexif

import (
	"errors"
	"fmt"
)

// Fatal errors abort the whole parse. Everything else is reported as a
// Warning on the ParseResult while parsing continues.
var (
	// ErrUnrecognizedContainer is returned when the buffer is neither a JPEG
	// nor a TIFF stream.
	ErrUnrecognizedContainer = errors.New("rexif: unrecognized container")

	// ErrNoExif is returned for a JPEG stream that carries no Exif segment.
	ErrNoExif = errors.New("rexif: no exif segment found")

	// ErrInvalidHeader is returned when the TIFF header is malformed
	// (bad byte-order marker or version).
	ErrInvalidHeader = errors.New("rexif: invalid tiff header")

	// ErrTruncated is returned when the buffer is shorter than the
	// container or TIFF header demands.
	ErrTruncated = errors.New("rexif: truncated")
)

// IsFatal reports whether err is one of the fatal parse errors.
func IsFatal(err error) bool {
	for _, target := range []error{ErrUnrecognizedContainer, ErrNoExif, ErrInvalidHeader, ErrTruncated} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WarningKind classifies a non-fatal parse problem.
type WarningKind uint8

const (
	// WarnTruncated means a directory's declared entry count overran the buffer.
	WarnTruncated WarningKind = iota + 1
	// WarnCycleDetected means a directory offset was visited twice.
	WarnCycleDetected
	// WarnOutOfBounds means an entry's value extent fell outside the buffer.
	WarnOutOfBounds
	// WarnUnsupportedType means an entry declared an unknown type code.
	WarnUnsupportedType
	// WarnTypeMismatch means an entry's declared type differs from the registry's expectation.
	WarnTypeMismatch
	// WarnCountMismatch means an entry's declared count falls outside the registry's expectation.
	WarnCountMismatch
)

func (k WarningKind) String() string {
	switch k {
	case WarnTruncated:
		return "Truncated"
	case WarnCycleDetected:
		return "CycleDetected"
	case WarnOutOfBounds:
		return "OutOfBounds"
	case WarnUnsupportedType:
		return "UnsupportedType"
	case WarnTypeMismatch:
		return "TypeMismatch"
	case WarnCountMismatch:
		return "CountMismatch"
	default:
		return fmt.Sprintf("WarningKind(%d)", uint8(k))
	}
}

// Warning describes a non-fatal problem encountered during a parse.
// TagID is zero for directory-level warnings.
type Warning struct {
	Kind      WarningKind
	Namespace Namespace
	TagID     uint16
	Message   string
}

func (w Warning) String() string {
	if w.TagID == 0 {
		return fmt.Sprintf("%s: %s: %s", w.Namespace, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: tag 0x%04x: %s: %s", w.Namespace, w.TagID, w.Kind, w.Message)
}

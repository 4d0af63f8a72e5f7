package rexif

import (
	"bytes"
	"fmt"
	"math"
)

// decodeValue turns a raw entry into its typed Go value. The bool result
// reports whether the entry should be kept: values past the size limit are
// dropped without notice, out-of-bounds values are dropped with a warning,
// and unknown type codes are kept as opaque bytes alongside a warning.
func decodeValue(r bufReader, e rawEntry, limitTagSize uint32) (any, *Warning, bool) {
	if !e.known {
		b, err := r.bytes(e.valOffset, 4)
		if err != nil {
			return nil, &Warning{Kind: WarnOutOfBounds, Namespace: e.namespace, TagID: e.id,
				Message: fmt.Sprintf("value at offset %d out of bounds", e.valOffset)}, false
		}
		return bytes.Clone(b), &Warning{Kind: WarnUnsupportedType, Namespace: e.namespace, TagID: e.id,
			Message: fmt.Sprintf("unknown type code %d, kept %d raw bytes", e.typeCode, len(b))}, true
	}

	if e.size > uint64(limitTagSize) {
		return nil, nil, false
	}

	b, err := r.bytes(e.valOffset, e.size)
	if err != nil {
		return nil, &Warning{Kind: WarnOutOfBounds, Namespace: e.namespace, TagID: e.id,
			Message: fmt.Sprintf("value needs %d bytes at offset %d, buffer has %d", e.size, e.valOffset, r.len())}, false
	}

	bo := r.byteOrder
	n := int(e.count)

	switch e.typ() {
	case TypeUnsignedByte:
		return bytes.Clone(b), nil, true
	case TypeUndef:
		return bytes.Clone(b), nil, true
	case TypeASCII:
		// A single trailing NUL terminator is part of the declared count
		// but not of the text.
		return string(bytes.TrimSuffix(b, []byte{0})), nil, true
	case TypeUnsignedShort:
		vals := make([]uint16, n)
		for i := range vals {
			vals[i] = bo.Uint16(b[2*i:])
		}
		return vals, nil, true
	case TypeSignedShort:
		vals := make([]int16, n)
		for i := range vals {
			vals[i] = int16(bo.Uint16(b[2*i:]))
		}
		return vals, nil, true
	case TypeUnsignedLong:
		vals := make([]uint32, n)
		for i := range vals {
			vals[i] = bo.Uint32(b[4*i:])
		}
		return vals, nil, true
	case TypeSignedLong:
		vals := make([]int32, n)
		for i := range vals {
			vals[i] = int32(bo.Uint32(b[4*i:]))
		}
		return vals, nil, true
	case TypeSignedByte:
		vals := make([]int8, n)
		for i := range vals {
			vals[i] = int8(b[i])
		}
		return vals, nil, true
	case TypeUnsignedRat:
		vals := make([]Rat[uint32], n)
		for i := range vals {
			vals[i] = Rat[uint32]{Num: bo.Uint32(b[8*i:]), Den: bo.Uint32(b[8*i+4:])}
		}
		return vals, nil, true
	case TypeSignedRat:
		vals := make([]Rat[int32], n)
		for i := range vals {
			vals[i] = Rat[int32]{Num: int32(bo.Uint32(b[8*i:])), Den: int32(bo.Uint32(b[8*i+4:]))}
		}
		return vals, nil, true
	case TypeFloat:
		vals := make([]float32, n)
		for i := range vals {
			vals[i] = math.Float32frombits(bo.Uint32(b[4*i:]))
		}
		return vals, nil, true
	case TypeDouble:
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = math.Float64frombits(bo.Uint64(b[8*i:]))
		}
		return vals, nil, true
	default:
		// Unreachable: unknown codes are handled above.
		return bytes.Clone(b), nil, true
	}
}

// validateAgainstRegistry compares an entry's declared type and count with
// the registry's expectation and reports mismatches. The raw value is kept
// either way; the original data may still be useful to the caller.
func validateAgainstRegistry(e rawEntry, fi fieldInfo) []Warning {
	var warnings []Warning
	if fi.typ != 0 && e.typ() != fi.typ && (fi.alt == 0 || e.typ() != fi.alt) {
		warnings = append(warnings, Warning{Kind: WarnTypeMismatch, Namespace: e.namespace, TagID: e.id,
			Message: fmt.Sprintf("%s: expected %s, found %s", fi.name, fi.typ, e.typ())})
	}
	if fi.min >= 0 && (int64(e.count) < int64(fi.min) || int64(e.count) > int64(fi.max)) {
		warnings = append(warnings, Warning{Kind: WarnCountMismatch, Namespace: e.namespace, TagID: e.id,
			Message: fmt.Sprintf("%s: expected count %d..%d, found %d", fi.name, fi.min, fi.max, e.count)})
	}
	return warnings
}

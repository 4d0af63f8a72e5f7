package rexif

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rat is a rational number as stored in a TIFF entry: a numerator and a
// denominator of the same width and signedness. The raw values are kept
// as-is; a zero denominator is representable and reported invalid by
// IsValid rather than rejected at decode time.
type Rat[T int32 | uint32] struct {
	Num T
	Den T
}

// IsValid reports whether the denominator is non-zero.
func (r Rat[T]) IsValid() bool {
	return r.Den != 0
}

// Float64 returns the floating-point quotient.
// A zero denominator yields +/-Inf, or NaN for 0/0.
func (r Rat[T]) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// String returns "num/den", or just "num" when the denominator is 1.
func (r Rat[T]) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(int64(r.Num), 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Format implements fmt.Formatter so that float verbs print the quotient.
func (r Rat[T]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'f', 'g', 'e':
		prec, ok := s.Precision()
		if !ok {
			prec = -1
		}
		f := r.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			fmt.Fprint(s, "undef")
			return
		}
		fmt.Fprint(s, strconv.FormatFloat(f, byte(verb), prec, 64))
	default:
		fmt.Fprint(s, r.String())
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Rat[T]) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rat[T]) UnmarshalText(text []byte) error {
	s := string(text)
	if !strings.Contains(s, "/") {
		num, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
		}
		r.Num = T(num)
		r.Den = 1
		return nil
	}
	if _, err := fmt.Sscanf(s, "%d/%d", &r.Num, &r.Den); err != nil {
		return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
	}
	return nil
}

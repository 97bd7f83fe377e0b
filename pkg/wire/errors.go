package wire

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTruncatedInput is returned when fewer bytes remain than a declared
	// length, count or fixed width requires.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrUnrecognizedTag is returned for a discriminant outside the known set
	// of its variant family or record kind.
	ErrUnrecognizedTag = errors.New("unrecognized tag")
	// ErrStructuralMismatch is returned when a value at a computed offset is
	// not what the layout says it must be.
	ErrStructuralMismatch = errors.New("structural mismatch")
	// ErrCapacityExceeded is returned when a record carries more plugins than
	// the layout engine can index.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrBufferTooSmall is returned by encoders instead of writing past the
	// end of the destination.
	ErrBufferTooSmall = errors.New("buffer too small")
)

// DecodeError locates a decode failure inside the buffer being read.
type DecodeError struct {
	Err    error // one of the sentinels above
	Offset int   // absolute position in the input buffer
	What   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s at offset %d: %v", e.What, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// At attaches a position to err. A nil err stays nil; an err that already
// carries a position keeps its innermost one, shifted by off.
func At(err error, off int, what string) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return &DecodeError{Err: de.Err, Offset: de.Offset + off, What: de.What}
	}
	return &DecodeError{Err: err, Offset: off, What: what}
}

func shortBuffer(need, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, need, have)
}

// checkLen rejects lengths and counts that do not fit their u32 prefix.
func checkLen(n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: length %d does not fit in a u32 prefix", ErrCapacityExceeded, n)
	}
	return nil
}

func truncated(need, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedInput, need, have)
}

// BadTag builds the error for an unknown discriminant of the named family.
func BadTag(family string, tag byte) error {
	return fmt.Errorf("%w: %s %d", ErrUnrecognizedTag, family, tag)
}

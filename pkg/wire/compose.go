package wire

import "github.com/rawbytedev/corewire/internal/common"

// Option is a one-byte presence flag (0 absent, 1 present) followed by the
// value when present.
type Option[T Encoder] struct {
	Value T
	Valid bool
}

func Some[T Encoder](v T) Option[T] { return Option[T]{Value: v, Valid: true} }

func None[T Encoder]() Option[T] { return Option[T]{} }

func (o Option[T]) Get() (T, bool) { return o.Value, o.Valid }

func (o Option[T]) EncodedSize() int {
	if !o.Valid {
		return common.SizeBool
	}
	return common.SizeBool + o.Value.EncodedSize()
}

func (o Option[T]) EncodeTo(dst []byte) (int, error) {
	w := NewWriter(dst)
	w.Present(o.Valid)
	if o.Valid {
		w.Advance(o.Value.EncodeTo(w.Rest()))
	}
	return w.Result()
}

// Seq is a u32 element count followed by the concatenated elements. As with
// Bytes, an empty sequence decodes as nil.
type Seq[T Encoder] []T

func (s Seq[T]) EncodedSize() int {
	total := common.SizeLen
	for i := range s {
		total += s[i].EncodedSize()
	}
	return total
}

func (s Seq[T]) EncodeTo(dst []byte) (int, error) {
	w := NewWriter(dst)
	w.Count(len(s))
	for i := range s {
		w.Advance(s[i].EncodeTo(w.Rest()))
	}
	return w.Result()
}

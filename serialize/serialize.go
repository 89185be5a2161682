// Package serialize implements the recursive, length-prefixed binary
// format documented in spec.md §6.1: a container writes its length as an
// 8-byte little-endian unsigned integer followed by each element encoded
// in turn; a leaf writes its raw fixed-width bytes.
//
// Go has no single "trivially copyable" trait the way C++ does, so this
// package follows the design-notes' suggested re-architecture: a small
// Codec[T] strategy interface (one instance per element type), with ready
// implementations for the leaf types this module actually needs and a
// generic container combinator for slices of any codec. This mirrors the
// teacher's codec.Codec interface (Marshal/Unmarshal by name) but is typed
// per-element rather than dispatched through any/interface{}.
package serialize

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/succinctgo/bitindex/internal/bxerr"
)

// Codec encodes and decodes values of type T in the format of spec.md §6.1.
type Codec[T any] interface {
	Encode(w io.Writer, v T) error
	Decode(r io.Reader) (T, error)

	// ElementSize reports the fixed per-element encoded width in bytes,
	// and false if T has no such fixed width (a container or other
	// variable-length encoding). This is the Go stand-in for C++'s
	// sizeof(T), used by sparsearray for the element-size sanity check in
	// spec.md §6.3.
	ElementSize() (int, bool)
}

// FixedCodec handles any fixed-width leaf type encoding/binary can write
// directly: the unsigned/signed integer types, float32/float64, bool, and
// fixed-size arrays of those. It must not be used for strings or slices —
// use StringCodec or SliceCodec for those.
type FixedCodec[T any] struct{}

// Encode writes sizeof(T) raw little-endian bytes.
func (FixedCodec[T]) Encode(w io.Writer, v T) error {
	return binary.Write(w, binary.LittleEndian, v)
}

// Decode reads sizeof(T) raw little-endian bytes.
func (FixedCodec[T]) Decode(r io.Reader) (T, error) {
	var v T
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return v, err
	}
	return v, nil
}

// ElementSize reports sizeof(T) by encoding a zero value and measuring it,
// since Go has no compile-time sizeof for an arbitrary type parameter.
func (c FixedCodec[T]) ElementSize() (int, bool) {
	var buf bytes.Buffer
	var zero T
	if err := c.Encode(&buf, zero); err != nil {
		return 0, false
	}
	return buf.Len(), true
}

// StringCodec encodes a string as a length-prefixed byte container, the
// natural reading of spec.md §6.1 for a type that is a container of bytes.
type StringCodec struct{}

// Encode writes an 8-byte length followed by the raw string bytes.
func (StringCodec) Encode(w io.Writer, v string) error {
	if err := WriteLen(w, uint64(len(v))); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}

// Decode reads an 8-byte length followed by that many raw bytes.
func (StringCodec) Decode(r io.Reader) (string, error) {
	n, err := ReadLen(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ElementSize reports that a string has no fixed per-element width: it is
// itself a length-prefixed container.
func (StringCodec) ElementSize() (int, bool) {
	return 0, false
}

// SliceCodec adapts an element Codec[E] into a Codec[[]E] using the
// container recursion from spec.md §6.1: an 8-byte length followed by each
// element encoded with elem.
type SliceCodec[E any] struct {
	Elem Codec[E]
}

// Encode writes the slice's length followed by each element.
func (c SliceCodec[E]) Encode(w io.Writer, v []E) error {
	return WriteContainer(w, v, c.Elem.Encode)
}

// Decode reads a length-prefixed sequence of elements.
func (c SliceCodec[E]) Decode(r io.Reader) ([]E, error) {
	return ReadContainer(r, c.Elem.Decode)
}

// ElementSize reports that a slice has no fixed per-element width: it is
// itself a length-prefixed container, regardless of its element codec.
func (c SliceCodec[E]) ElementSize() (int, bool) {
	return 0, false
}

// WriteLen writes n as the 8-byte little-endian container length prefix
// spec.md §6.1 calls a host-word-size size_t; this format pins it at 8
// bytes always, which is what every 64-bit target already does, so there
// is no host-word-size ambiguity to carry forward into Go.
func WriteLen(w io.Writer, n uint64) error {
	return binary.Write(w, binary.LittleEndian, n)
}

// ReadLen reads an 8-byte little-endian container length prefix.
func ReadLen(r io.Reader) (uint64, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// WriteContainer writes items as a length-prefixed sequence, encoding each
// element with encodeElem.
func WriteContainer[T any](w io.Writer, items []T, encodeElem func(io.Writer, T) error) error {
	if err := WriteLen(w, uint64(len(items))); err != nil {
		return err
	}
	for _, item := range items {
		if err := encodeElem(w, item); err != nil {
			return err
		}
	}
	return nil
}

// ReadContainer reads a length-prefixed sequence into a freshly allocated
// slice. Since a Go slice always "supports resize" in the sense spec.md
// §6.1 means (its length isn't fixed by the type), this path never raises
// ErrCorrupt on a size mismatch — that check only matters when decoding
// into a destination whose length is meant to match something else, which
// is what ReadContainerExact is for.
func ReadContainer[T any](r io.Reader, decodeElem func(io.Reader) (T, error)) ([]T, error) {
	n, err := ReadLen(r)
	if err != nil {
		return nil, err
	}
	items := make([]T, n)
	for i := range items {
		v, err := decodeElem(r)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

// ReadContainerExact reads a length-prefixed sequence and requires the
// decoded length to equal want, raising ErrCorrupt otherwise. This is the
// "container size mismatch with a non-resizable container" case spec.md
// §6.1 describes — here, a destination whose size must match a value
// derived elsewhere (sparsearray's occupancy bitmap must be ceil(size/8)
// bytes for its logical size), rather than a fixed-size language container.
func ReadContainerExact[T any](r io.Reader, want int, decodeElem func(io.Reader) (T, error)) ([]T, error) {
	n, err := ReadLen(r)
	if err != nil {
		return nil, err
	}
	if n != uint64(want) {
		return nil, fmt.Errorf("%w: serialize.ReadContainerExact: got length %d, want %d", bxerr.ErrCorrupt, n, want)
	}
	items := make([]T, n)
	for i := range items {
		v, err := decodeElem(r)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

package trx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/classicadventures/mixcreator/util"
)

// TextResource is the content of one TRx file.
//
// On disk it is a little-endian uint32 count, count ids, count+1 offsets and
// the zero-terminated strings. Offsets are measured from the end of the count
// field, so the first one is 8*count+4 and the last points one past the final
// terminator.
type TextResource struct {
	IDs     []uint32
	Offsets []uint32
	Strings [][]byte
}

// New builds a resource from parallel id and string tables and computes the offsets.
func New(ids []uint32, strs [][]byte) (*TextResource, error) {
	if len(ids) != len(strs) {
		return nil, fmt.Errorf("%d ids for %d strings", len(ids), len(strs))
	}
	n := uint64(len(ids))
	off := tableSize(n)
	offsets := make([]uint32, 0, n+1)
	for _, s := range strs {
		if off > math.MaxUint32 {
			return nil, fmt.Errorf("text resource exceeds 4 GiB")
		}
		offsets = append(offsets, uint32(off))
		off += uint64(len(s)) + 1
	}
	if off > math.MaxUint32 {
		return nil, fmt.Errorf("text resource exceeds 4 GiB")
	}
	offsets = append(offsets, uint32(off))
	return &TextResource{IDs: ids, Offsets: offsets, Strings: strs}, nil
}

// tableSize is the size of the id and offset tables for n records, which is
// also the first offset.
func tableSize(n uint64) uint64 {
	return 4*n + 4*(n+1)
}

// Count is the number of records.
func (t *TextResource) Count() int {
	return len(t.IDs)
}

// Size is the encoded size in bytes.
func (t *TextResource) Size() int64 {
	if len(t.Offsets) == 0 {
		return 4
	}
	return 4 + int64(t.Offsets[len(t.Offsets)-1])
}

// Validate checks that the three tables agree with each other.
func (t *TextResource) Validate() error {
	n := len(t.IDs)
	if len(t.Strings) != n {
		return fmt.Errorf("%w: %d ids for %d strings", ErrMalformed, n, len(t.Strings))
	}
	if len(t.Offsets) != n+1 {
		return fmt.Errorf("%w: %d offsets for %d strings", ErrMalformed, len(t.Offsets), n)
	}
	if want := tableSize(uint64(n)); uint64(t.Offsets[0]) != want {
		return fmt.Errorf("%w: first offset %d, want %d", ErrMalformed, t.Offsets[0], want)
	}
	for i, s := range t.Strings {
		if bytes.IndexByte(s, 0) >= 0 {
			return fmt.Errorf("%w: string %d contains a zero byte", ErrMalformed, i)
		}
		if want := uint64(t.Offsets[i]) + uint64(len(s)) + 1; uint64(t.Offsets[i+1]) != want {
			return fmt.Errorf("%w: offset %d is %d, want %d", ErrMalformed, i+1, t.Offsets[i+1], want)
		}
	}
	return nil
}

// MarshalBinary encodes the resource in its on-disk layout.
func (t *TextResource) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the on-disk layout to w.
func (t *TextResource) WriteTo(w io.Writer) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	cw := &util.CountingWriter{W: w}
	if err := binary.Write(cw, binary.LittleEndian, uint32(len(t.IDs))); err != nil {
		return cw.N, err
	}
	if err := binary.Write(cw, binary.LittleEndian, t.IDs); err != nil {
		return cw.N, err
	}
	if err := binary.Write(cw, binary.LittleEndian, t.Offsets); err != nil {
		return cw.N, err
	}
	for _, s := range t.Strings {
		if _, err := cw.Write(s); err != nil {
			return cw.N, err
		}
		if _, err := cw.Write([]byte{0}); err != nil {
			return cw.N, err
		}
	}
	return cw.N, nil
}

// WriteFile writes the resource to path atomically.
func (t *TextResource) WriteFile(path string) error {
	return util.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := t.WriteTo(w)
		return err
	})
}

// Parse decodes a resource from its on-disk layout.
func Parse(b []byte) (*TextResource, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: %d bytes, too short for a count", ErrMalformed, len(b))
	}
	n := uint64(binary.LittleEndian.Uint32(b))
	if 4+tableSize(n) > uint64(len(b)) {
		return nil, fmt.Errorf("%w: %d records do not fit in %d bytes", ErrMalformed, n, len(b))
	}

	t := &TextResource{
		IDs:     make([]uint32, n),
		Offsets: make([]uint32, n+1),
		Strings: make([][]byte, n),
	}
	pos := 4
	for i := range t.IDs {
		t.IDs[i] = binary.LittleEndian.Uint32(b[pos:])
		pos += 4
	}
	for i := range t.Offsets {
		t.Offsets[i] = binary.LittleEndian.Uint32(b[pos:])
		pos += 4
	}

	for i := range t.Strings {
		start, end := 4+uint64(t.Offsets[i]), 4+uint64(t.Offsets[i+1])
		if start >= end || end > uint64(len(b)) {
			return nil, fmt.Errorf("%w: string %d spans [%d, %d) of %d bytes", ErrMalformed, i, start, end, len(b))
		}
		if b[end-1] != 0 {
			return nil, fmt.Errorf("%w: string %d is not terminated", ErrMalformed, i)
		}
		t.Strings[i] = b[start : end-1 : end-1]
	}
	if size := t.Size(); size != int64(len(b)) {
		return nil, fmt.Errorf("%w: offsets describe %d bytes, have %d", ErrMalformed, size, len(b))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the first string with the given id, scanning in table order
// the way the game does.
func (t *TextResource) Lookup(id uint32) ([]byte, bool) {
	for i, v := range t.IDs {
		if v == id {
			return t.Strings[i], true
		}
	}
	return nil, false
}

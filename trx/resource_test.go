package trx

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Offsets(t *testing.T) {
	res, err := New([]uint32{1, 2}, [][]byte{[]byte("ab"), []byte("")})
	require.NoError(t, err)

	// 4*2 ids + 4*3 offsets
	assert.Equal(t, []uint32{20, 23, 24}, res.Offsets)
	assert.Equal(t, res.Offsets[2]-res.Offsets[0], uint32(len("ab")+1+len("")+1))
	assert.Equal(t, int64(28), res.Size())

	_, err = New([]uint32{1}, nil)
	assert.Error(t, err)
}

func TestWriteTo_Layout(t *testing.T) {
	res, err := New([]uint32{10001, 0xFFFF0001}, [][]byte{[]byte("Hi"), []byte("Yo!")})
	require.NoError(t, err)

	var want bytes.Buffer
	binary.Write(&want, binary.LittleEndian, []uint32{2, 10001, 0xFFFF0001, 20, 23, 27})
	want.WriteString("Hi\x00Yo!\x00")

	var got bytes.Buffer
	n, err := res.WriteTo(&got)
	require.NoError(t, err)
	assert.Equal(t, int64(want.Len()), n)
	assert.Equal(t, want.Bytes(), got.Bytes())
}

func TestEmptyResource(t *testing.T) {
	res, err := New(nil, nil)
	require.NoError(t, err)

	data, err := res.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 4, 0, 0, 0}, data)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Zero(t, back.Count())
}

func TestParse_RoundTrip(t *testing.T) {
	res, err := New(
		[]uint32{10001, 10002, 20001, 10001},
		[][]byte{[]byte("Hello"), []byte("World..."), []byte("Caf\xa7"), []byte("again")},
	)
	require.NoError(t, err)
	data, err := res.MarshalBinary()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, res.IDs, back.IDs)
	assert.Equal(t, res.Offsets, back.Offsets)
	assert.Equal(t, res.Strings, back.Strings)

	s, ok := back.Lookup(10001)
	require.True(t, ok)
	assert.Equal(t, "Hello", string(s))
	_, ok = back.Lookup(99)
	assert.False(t, ok)
}

func TestParse_Malformed(t *testing.T) {
	good, err := New([]uint32{1, 2}, [][]byte{[]byte("ab"), []byte("cd")})
	require.NoError(t, err)
	data, err := good.MarshalBinary()
	require.NoError(t, err)

	corrupt := func(f func(b []byte) []byte) []byte {
		return f(append([]byte(nil), data...))
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"count only", []byte{1, 0, 0, 0}},
		{"count too large", corrupt(func(b []byte) []byte { b[0] = 9; return b })},
		{"missing terminator", corrupt(func(b []byte) []byte { b[len(b)-1] = 'x'; return b })},
		{"truncated strings", corrupt(func(b []byte) []byte { return b[:len(b)-2] })},
		{"trailing bytes", corrupt(func(b []byte) []byte { return append(b, 0, 0) })},
		{"wrong first offset", corrupt(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[12:], 19)
			return b
		})},
		{"offsets out of order", corrupt(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[16:], 20)
			return b
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestValidate(t *testing.T) {
	res, err := New([]uint32{1}, [][]byte{[]byte("ok")})
	require.NoError(t, err)
	require.NoError(t, res.Validate())

	res.Strings[0] = []byte("o\x00k")
	assert.ErrorIs(t, res.Validate(), ErrMalformed)

	_, err = res.MarshalBinary()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestWriteFile(t *testing.T) {
	res, err := New([]uint32{7}, [][]byte{[]byte("seven")})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "OPTIONS.TRE")
	require.NoError(t, res.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, res.Strings, back.Strings)
}

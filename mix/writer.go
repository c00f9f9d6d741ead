package mix

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/classicadventures/mixcreator/util"
)

// header is the fixed 6-byte archive header.
type header struct {
	Count    uint16 // number of entries
	DataSize uint32 // size of the data segment following the entry table
}

// descriptor is one 12-byte entry of the table that follows the header.
type descriptor struct {
	ID     uint32
	Offset uint32 // relative to the data segment
	Size   uint32
}

func (x *Index) writeTable(w io.Writer) error {
	hdr := header{Count: uint16(len(x.Entries)), DataSize: x.DataSize}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	table := make([]descriptor, len(x.Entries))
	for i, e := range x.Entries {
		table[i] = descriptor{ID: e.ID, Offset: e.Offset, Size: e.Size}
	}
	return binary.Write(w, binary.LittleEndian, table)
}

// WriteTo writes the header, the entry table and the data of every entry,
// read from its Path, in index order. An entry that cannot be read in full is
// an error: the table already promised its bytes.
func (x *Index) WriteTo(w io.Writer) (int64, error) {
	cw := &util.CountingWriter{W: w}
	if err := x.writeTable(cw); err != nil {
		return cw.N, &FileError{Op: "write", Name: "entry table", Err: err}
	}
	for _, e := range x.Entries {
		if err := copyEntry(cw, e); err != nil {
			return cw.N, err
		}
	}
	return cw.N, nil
}

func copyEntry(w io.Writer, e Entry) error {
	f, err := os.Open(e.Path)
	if err != nil {
		return &FileError{Op: "open", Name: e.Label(), Err: err}
	}
	defer f.Close()

	n, err := io.Copy(w, io.LimitReader(f, int64(e.Size)+1))
	if err != nil {
		return &FileError{Op: "copy", Name: e.Label(), Err: err}
	}
	if n != int64(e.Size) {
		return &FileError{
			Op:   "copy",
			Name: e.Label(),
			Err:  fmt.Errorf("file changed while packing: indexed %d bytes, found %d", e.Size, n),
		}
	}
	return nil
}

// Pack builds the archive for the candidate names found in dirs and returns its bytes.
func Pack(names []string, dirs ...string) ([]byte, error) {
	idx, err := Collect(names, dirs...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(int(HeaderSize(len(idx.Entries))) + int(idx.DataSize))
	if _, err := idx.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PackFile builds the archive for the candidate names found in dirs and writes it to
// dest. The archive is written under a temporary name and renamed on success, so a
// failed build never leaves a truncated archive at dest.
func PackFile(dest string, names []string, dirs ...string) (*Index, error) {
	idx, err := Collect(names, dirs...)
	if err != nil {
		return nil, err
	}
	err = util.WriteFileAtomic(dest, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if _, err := idx.WriteTo(bw); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return &FileError{Op: "write", Name: dest, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

package mix

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Archive is a MIX archive opened for reading.
type Archive struct {
	Index
	r      io.ReaderAt
	size   int64
	closer io.Closer
}

// Read parses the header and entry table of an archive of the given size.
func Read(r io.ReaderAt, size int64) (*Archive, error) {
	sr := io.NewSectionReader(r, 0, size)

	var hdr header
	if err := binary.Read(sr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}
	if HeaderSize(int(hdr.Count)) > size {
		return nil, fmt.Errorf("%w: %d entries do not fit in %d bytes", ErrMalformed, hdr.Count, size)
	}
	table := make([]descriptor, hdr.Count)
	if err := binary.Read(sr, binary.LittleEndian, table); err != nil {
		return nil, fmt.Errorf("%w: entry table: %v", ErrMalformed, err)
	}

	a := &Archive{r: r, size: size}
	a.DataSize = hdr.DataSize
	a.Entries = make([]Entry, len(table))
	for i, d := range table {
		a.Entries[i] = Entry{ID: d.ID, Offset: d.Offset, Size: d.Size}
	}
	return a, nil
}

// Open opens the archive at path. The caller must Close it.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Name: path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &FileError{Op: "stat", Name: path, Err: err}
	}
	a, err := Read(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.closer = f
	return a, nil
}

// Close releases the underlying file, if the archive was opened with Open.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Size returns the total archive size in bytes.
func (a *Archive) Size() int64 {
	return a.size
}

// ReadEntry returns the data of e.
func (a *Archive) ReadEntry(e Entry) ([]byte, error) {
	start := HeaderSize(len(a.Entries)) + int64(e.Offset)
	if start+int64(e.Size) > a.size {
		return nil, fmt.Errorf("%w: entry %s extends past end of archive", ErrMalformed, e.Label())
	}
	buf := make([]byte, e.Size)
	if n, err := a.r.ReadAt(buf, start); n < len(buf) {
		return nil, &FileError{Op: "read", Name: e.Label(), Err: err}
	}
	return buf, nil
}

// ReadFile returns the data of the entry named name.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	e, ok := a.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return a.ReadEntry(e)
}

// Check reports every way the archive deviates from the layout the engine expects.
func (a *Archive) Check() []error {
	var problems []error
	var offset uint64
	for i, e := range a.Entries {
		if i > 0 && Signed(a.Entries[i-1].ID) >= Signed(e.ID) {
			problems = append(problems, fmt.Errorf("%w: entry %d (%s) is not in ascending signed id order",
				ErrMalformed, i, e.Label()))
		}
		if uint64(e.Offset) != offset {
			problems = append(problems, fmt.Errorf("%w: entry %d (%s) has offset %d, want %d",
				ErrMalformed, i, e.Label(), e.Offset, offset))
		}
		offset += uint64(e.Size)
	}
	if offset != uint64(a.DataSize) {
		problems = append(problems, fmt.Errorf("%w: entry sizes add up to %d, header declares %d",
			ErrMalformed, offset, a.DataSize))
	}
	if want := HeaderSize(len(a.Entries)) + int64(a.DataSize); want != a.size {
		problems = append(problems, fmt.Errorf("%w: archive is %d bytes, header and table describe %d",
			ErrMalformed, a.size, want))
	}
	return problems
}

package mix

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/classicadventures/mixcreator/util"
)

// MaxEntries is the largest entry count the 16-bit header field can hold.
const MaxEntries = math.MaxUint16

// Entry is one file of an archive.
type Entry struct {
	ID     uint32 // FoldHash of Name
	Offset uint32 // relative to the start of the data segment
	Size   uint32
	Name   string // empty for entries read back from an archive until resolved
	Path   string // source file on disk; never stored in the archive
}

// Index is the sorted entry table of an archive.
type Index struct {
	Entries  []Entry
	DataSize uint32
}

// HeaderSize returns the number of bytes preceding the data segment
// of an archive with count entries.
func HeaderSize(count int) int64 {
	return 6 + 12*int64(count)
}

func compareSigned(a, b Entry) int {
	return cmp.Compare(Signed(a.ID), Signed(b.ID))
}

// NewIndex orders entries by their signed id and assigns contiguous data offsets
// starting at 0. The input slice is not modified. Two entries sharing an id are
// rejected, since the engine could only ever find one of them.
func NewIndex(entries []Entry) (*Index, error) {
	if len(entries) > MaxEntries {
		return nil, fmt.Errorf("%w: %d", ErrTooManyEntries, len(entries))
	}
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareSigned)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, fmt.Errorf("%w: %q and %q both hash to %08X",
				ErrCollision, sorted[i-1].Name, sorted[i].Name, sorted[i].ID)
		}
	}

	var offset uint64
	for i := range sorted {
		sorted[i].Offset = uint32(offset)
		offset += uint64(sorted[i].Size)
		if offset > math.MaxUint32 {
			return nil, fmt.Errorf("%w: at %s", ErrDataTooLarge, sorted[i].Name)
		}
	}
	return &Index{Entries: sorted, DataSize: uint32(offset)}, nil
}

// Collect builds an index from the candidate filenames that exist in dirs.
// Each name is searched in dirs in order and the first match wins; names that exist
// nowhere are skipped. A candidate with a directory part is tried at that path
// first. A name listed more than once is only packed once (names are compared by
// their base name, case-insensitively, as the engine does).
func Collect(names []string, dirs ...string) (*Index, error) {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	seen := make(map[string]bool)
	var entries []Entry
	for _, candidate := range names {
		name := filepath.Base(candidate)
		key := strings.ToUpper(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		path, size, ok, err := locate(searchPaths(candidate, name, dirs))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if size > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %s is %d bytes", ErrDataTooLarge, name, size)
		}
		entries = append(entries, Entry{
			ID:   FoldHash(name),
			Name: name,
			Size: uint32(size),
			Path: path,
		})
	}
	return NewIndex(entries)
}

// searchPaths lists where candidate may live, in order of precedence.
func searchPaths(candidate, name string, dirs []string) []string {
	paths := make([]string, 0, len(dirs)+1)
	if filepath.Dir(candidate) != "." {
		paths = append(paths, candidate)
	}
	for _, dir := range dirs {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

func locate(paths []string) (path string, size int64, ok bool, err error) {
	for _, path = range paths {
		info, statErr := os.Stat(path)
		if errors.Is(statErr, os.ErrNotExist) {
			continue
		}
		if statErr != nil {
			return "", 0, false, &FileError{Op: "stat", Name: path, Err: statErr}
		}
		if info.IsDir() {
			return "", 0, false, &FileError{Op: "stat", Name: path, Err: util.ErrExpectedFile}
		}
		return path, info.Size(), true, nil
	}
	return "", 0, false, nil
}

// Find looks an entry up by filename the way the engine does: a binary search over
// the ids interpreted as signed integers.
func (x *Index) Find(name string) (Entry, bool) {
	target := Entry{ID: FoldHash(name)}
	i, found := slices.BinarySearchFunc(x.Entries, target, compareSigned)
	if !found {
		return Entry{}, false
	}
	return x.Entries[i], true
}

// Resolve fills in the Name of every entry whose id matches one of names
// and returns how many entries were resolved.
func (x *Index) Resolve(names []string) int {
	resolved := 0
	for _, name := range names {
		id := FoldHash(name)
		for i := range x.Entries {
			if x.Entries[i].ID == id && x.Entries[i].Name == "" {
				x.Entries[i].Name = strings.ToUpper(name)
				resolved++
			}
		}
	}
	return resolved
}

// Label returns the entry name, or its id in hex when the name is unknown.
func (e Entry) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("%08X", e.ID)
}

package mixfs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/classicadventures/mixcreator/glyphs"
	"github.com/classicadventures/mixcreator/mix"
	"github.com/classicadventures/mixcreator/trx"
)

// TextSuffix names the decoded view of a text resource.
const TextSuffix = ".txt"

// FS is a read-only view of one archive. Every entry becomes a file named
// after its resource name, or after its hex id when the name is unknown.
type FS struct {
	archive  *mix.Archive
	codePage *glyphs.CodePage
	modified time.Time

	mu    sync.Mutex
	cache map[uint32][]byte
}

// NewFS serves archive. Entry names are recovered by hashing names. When
// codePage is set, every text resource also gets a decoded .txt sibling.
func NewFS(archive *mix.Archive, names []string, codePage *glyphs.CodePage, modified time.Time) *FS {
	archive.Resolve(names)
	return &FS{
		archive:  archive,
		codePage: codePage,
		modified: modified,
		cache:    make(map[uint32][]byte),
	}
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f}, nil
}

// entryData reads an entry once and keeps it.
func (f *FS) entryData(e mix.Entry) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if data, ok := f.cache[e.ID]; ok {
		return data, nil
	}
	data, err := f.archive.ReadEntry(e)
	if err != nil {
		return nil, err
	}
	f.cache[e.ID] = data
	return data, nil
}

// Dir is the single directory of the view.
type Dir struct {
	fs *FS
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = 1
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.modified
	a.Ctime = d.fs.modified
	a.Atime = time.Now()
	return nil
}

// Lookup resolves an entry label, or the decoded view of a text resource.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if i, ok := d.find(name); ok {
		return &File{fs: d.fs, entry: d.fs.archive.Entries[i], inode: inodeOf(i, false)}, nil
	}
	if d.fs.codePage == nil || !strings.HasSuffix(strings.ToLower(name), TextSuffix) {
		return nil, syscall.ENOENT
	}
	i, ok := d.find(name[:len(name)-len(TextSuffix)])
	if !ok || !trx.IsResourceName(d.fs.archive.Entries[i].Name) {
		return nil, syscall.ENOENT
	}
	return &File{fs: d.fs, entry: d.fs.archive.Entries[i], inode: inodeOf(i, true), text: true}, nil
}

func (d *Dir) find(label string) (int, bool) {
	for i, e := range d.fs.archive.Entries {
		if strings.EqualFold(e.Label(), label) {
			return i, true
		}
	}
	return 0, false
}

// ReadDirAll lists every entry in archive order.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	var dirents []fuse.Dirent
	for i, e := range d.fs.archive.Entries {
		dirents = append(dirents, fuse.Dirent{
			Inode: inodeOf(i, false),
			Name:  e.Label(),
			Type:  fuse.DT_File,
		})
		if d.fs.codePage != nil && trx.IsResourceName(e.Name) {
			dirents = append(dirents, fuse.Dirent{
				Inode: inodeOf(i, true),
				Name:  e.Label() + TextSuffix,
				Type:  fuse.DT_File,
			})
		}
	}
	return dirents, nil
}

// inodeOf numbers entries after the root directory; decoded views take the odd numbers.
func inodeOf(index int, text bool) uint64 {
	n := 2 + 2*uint64(index)
	if text {
		n++
	}
	return n
}

// File is one archive entry, or the decoded view of one.
type File struct {
	fs    *FS
	entry mix.Entry
	inode uint64
	text  bool

	mu   sync.Mutex
	data []byte
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.inode
	a.Mode = 0o444
	a.Mtime = f.fs.modified
	a.Ctime = f.fs.modified
	a.Atime = time.Now()
	if !f.text {
		a.Size = uint64(f.entry.Size)
		return nil
	}
	data, err := f.ReadAll(ctx)
	if err != nil {
		return err
	}
	a.Size = uint64(len(data))
	return nil
}

// ReadAll reads the entire file content
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.data != nil {
		return f.data, nil
	}
	raw, err := f.fs.entryData(f.entry)
	if err != nil {
		return nil, syscall.EIO
	}
	if !f.text {
		f.data = raw
		return raw, nil
	}

	tr, err := trx.Parse(raw)
	if err != nil {
		return nil, syscall.EIO
	}
	f.data = Render(tr, f.fs.codePage)
	return f.data, nil
}

// Render lists a text resource as "id<TAB>text" lines decoded with cp.
func Render(tr *trx.TextResource, cp *glyphs.CodePage) []byte {
	var buf bytes.Buffer
	for i, id := range tr.IDs {
		fmt.Fprintf(&buf, "%d\t%s\n", id, cp.Decode(tr.Strings[i]))
	}
	return buf.Bytes()
}

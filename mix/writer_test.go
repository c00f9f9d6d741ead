package mix

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/classicadventures/mixcreator/util"
)

func TestPack_Layout(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "INTRO.VQA"), []byte("intro"), 0644)
	os.WriteFile(filepath.Join(dir, "CLOVDIES.AUD"), []byte("clovis dies"), 0644)

	got, err := Pack([]string{"CLOVDIES.AUD", "INTRO.VQA"}, dir)
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	// INTRO.VQA hashes negative and must come first.
	var want bytes.Buffer
	binary.Write(&want, binary.LittleEndian, uint16(2))
	binary.Write(&want, binary.LittleEndian, uint32(5+11))
	binary.Write(&want, binary.LittleEndian, []uint32{0xEBFD9604, 0, 5})
	binary.Write(&want, binary.LittleEndian, []uint32{0x441D04C3, 5, 11})
	want.WriteString("intro")
	want.WriteString("clovis dies")

	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("Pack() =\n% x\nwant\n% x", got, want.Bytes())
	}
}

func TestPack_Empty(t *testing.T) {
	got, err := Pack(nil, t.TempDir())
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if !bytes.Equal(got, []byte{0, 0, 0, 0, 0, 0}) {
		t.Errorf("Pack() = % x, want an empty header", got)
	}
}

func TestPackFile_RoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	contents := map[string]string{
		"INGQUO_E.TRE": "in-game quotes",
		"OPTIONS.TRE":  "options",
		"SUBTLS_E.FON": "subtitle font bitmap",
		"KIA6PT.FON":   "kia font",
	}
	var names []string
	for name, data := range contents {
		os.WriteFile(filepath.Join(srcDir, name), []byte(data), 0644)
		names = append(names, name)
	}

	dest := filepath.Join(t.TempDir(), "SUBTITLES.MIX")
	idx, err := PackFile(dest, names, srcDir)
	if err != nil {
		t.Fatalf("PackFile() error = %v", err)
	}
	if len(idx.Entries) != len(contents) {
		t.Fatalf("packed %d entries, want %d", len(idx.Entries), len(contents))
	}

	a, err := Open(dest)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer a.Close()

	if problems := a.Check(); len(problems) != 0 {
		t.Errorf("Check() = %v", problems)
	}
	for name, data := range contents {
		got, err := a.ReadFile(name)
		if err != nil {
			t.Errorf("ReadFile(%s) error = %v", name, err)
			continue
		}
		if string(got) != data {
			t.Errorf("ReadFile(%s) = %q, want %q", name, got, data)
		}
	}
	if _, err := a.ReadFile("TAHOMA24.FON"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want %v", err, ErrNotFound)
	}
}

func TestWriteTo_UnreadableEntry(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "KIA6PT.FON"), []byte("font"), 0644)

	idx, err := NewIndex([]Entry{
		{ID: FoldHash("KIA6PT.FON"), Name: "KIA6PT.FON", Size: 4, Path: filepath.Join(dir, "KIA6PT.FON")},
		{ID: FoldHash("GONE.TRE"), Name: "GONE.TRE", Size: 4, Path: filepath.Join(dir, "GONE.TRE")},
	})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	_, err = idx.WriteTo(&buf)
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("WriteTo() error = %v, want *FileError", err)
	}
	if fe.Name != "GONE.TRE" || !errors.Is(err, util.ErrIO) {
		t.Errorf("WriteTo() error = %v, want an i/o error naming GONE.TRE", err)
	}
}

func TestWriteTo_FileChangedSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VK.TRE")
	os.WriteFile(path, []byte("short"), 0644)

	idx, err := NewIndex([]Entry{{ID: FoldHash("VK.TRE"), Name: "VK.TRE", Size: 10, Path: path}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := idx.WriteTo(&bytes.Buffer{}); !errors.Is(err, util.ErrIO) {
		t.Errorf("WriteTo() error = %v, want %v", err, util.ErrIO)
	}
}

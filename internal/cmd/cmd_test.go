package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/classicadventures/mixcreator/trx"
	"github.com/classicadventures/mixcreator/util"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeQuotes writes a small in-game resource encoded in windows-1252.
func writeQuotes(t *testing.T, dir string) {
	t.Helper()
	tr, err := trx.New(
		[]uint32{230000, 230001, 990000},
		[][]byte{[]byte("Hello"), []byte("Caf\xe9"), []byte("Who?")},
	)
	require.NoError(t, err)
	require.NoError(t, tr.WriteFile(filepath.Join(dir, "INGQUO_E.TRE")))
}

func TestHashCmd(t *testing.T) {
	out, err := execute(t, "hash", "SECRET.BIN", "INGQUO_E.TRE")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "CD6A0C20")
	assert.Contains(t, lines[0], "-848688096")
	assert.Contains(t, lines[1], "152E2BFD")
}

func TestPackValidateInspect(t *testing.T) {
	dir := t.TempDir()
	writeQuotes(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SUBTLS_E.FON"), []byte("font"), 0o644))
	archive := filepath.Join(dir, "SUBTITLES.MIX")

	out, err := execute(t, "pack", "-d", dir, "-o", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "Total resource files packed in "+archive+": 2")

	out, err = execute(t, "validate", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "Total errors: 0")

	actorsFile := filepath.Join(dir, "actornames.txt")
	require.NoError(t, os.WriteFile(actorsFile, []byte("id\tshort\tfull\n23\tSebastian\tJ.F. Sebastian\n"), 0o644))

	out, err = execute(t, "inspect", archive, "--entry", "ingquo_e.tre", "--format", "json", "--actors", actorsFile)
	require.NoError(t, err)

	var view resourceView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "INGQUO_E.TRE", view.Name)
	assert.Equal(t, "in-game", view.Kind)
	require.Len(t, view.Quotes, 3)
	assert.Equal(t, quoteView{ID: 230001, Speaker: "Sebastian", Text: "Café"}, view.Quotes[1])
	assert.Empty(t, view.Quotes[2].Speaker)
}

func TestInspectLooseFile(t *testing.T) {
	dir := t.TempDir()
	writeQuotes(t, dir)
	path := filepath.Join(dir, "INGQUO_E.TRE")

	out, err := execute(t, "inspect", path, "--actors", "")
	require.NoError(t, err)
	var view resourceView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "windows-1252", view.Encoding)
	assert.Equal(t, uint32(230000), view.Quotes[0].ID)
	assert.Equal(t, "Hello", view.Quotes[0].Text)

	out, err = execute(t, "inspect", path, "-f", "text")
	require.NoError(t, err)
	assert.Equal(t, "230000\tHello\n230001\tCafé\n990000\tWho?\n", out)

	_, err = execute(t, "inspect", path, "-f", "xml")
	assert.ErrorIs(t, err, util.ErrConfiguration)

	_, err = execute(t, "inspect", filepath.Join(dir, "SUBTITLES.MIX"))
	assert.ErrorIs(t, err, util.ErrConfiguration)
}

func TestValidateCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeQuotes(t, dir)
	archive := filepath.Join(dir, "SUBTITLES.MIX")
	_, err := execute(t, "pack", "INGQUO_E.TRE", "-d", dir, "-o", archive)
	require.NoError(t, err)

	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(archive, data[:len(data)-3], 0o644))

	out, err := execute(t, "validate", archive)
	assert.ErrorIs(t, err, errValidation)
	assert.Contains(t, out, "has 1 errors")
}

func TestPackPathArgument(t *testing.T) {
	dir := t.TempDir()
	writeQuotes(t, dir)
	archive := filepath.Join(t.TempDir(), "SUBTITLES.MIX")

	out, err := execute(t, "pack", filepath.Join(dir, "INGQUO_E.TRE"), "-o", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "Total resource files packed in "+archive+": 1")

	out, err = execute(t, "pack", "MISSING.TRE", "-d", dir, "-o", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "no files found to pack")
	assert.Contains(t, out, ": 0")
}

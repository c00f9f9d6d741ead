package actors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classicadventures/mixcreator/util"
)

const table = "Id\tShort Name\tFull Name\n" +
	"0\tMcCoy\tRay McCoy\n" +
	"1\tSteele\tCrystal Steele\n" +
	"23\tGordo\tGordo Frizz\n" +
	"\n" +
	"99\tVoice\tVoice of \"Unknown\"\n"

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader(table))
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Len())

	name, ok := tbl.ShortName(1)
	assert.True(t, ok)
	assert.Equal(t, "Steele", name)

	full, ok := tbl.FullName(23)
	assert.True(t, ok)
	assert.Equal(t, "Gordo Frizz", full)

	full, ok = tbl.FullName(99)
	assert.True(t, ok)
	assert.Equal(t, `Voice of "Unknown"`, full)

	id, ok := tbl.IDByShortName("McCoy")
	assert.True(t, ok)
	assert.Equal(t, 0, id)

	_, ok = tbl.ShortName(5)
	assert.False(t, ok)
	_, ok = tbl.IDByShortName("Deckard")
	assert.False(t, ok)

	speaker, ok := tbl.Speaker(230015)
	require.True(t, ok)
	assert.Equal(t, "Gordo", speaker.ShortName)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad id", "h\th\th\nx\tA\tB\n"},
		{"too few columns", "h\th\th\n3\tA\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, util.ErrInputFormat)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(table), 0644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Len())

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, util.ErrIO)
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	assert.Zero(t, tbl.Len())
	_, ok := tbl.Speaker(10001)
	assert.False(t, ok)
	_, ok = tbl.IDByShortName("McCoy")
	assert.False(t, ok)
}

package mix

import (
	"strings"
	"testing"
)

func TestFoldHash(t *testing.T) {
	// Values pinned against the engine's own MIX lookups.
	tests := []struct {
		name     string
		expected uint32
	}{
		{"INTRO.VQA", 0xEBFD9604},
		{"CLOVDIES.AUD", 0x441D04C3},
		{"SUBTLS_E.FON", 0x2A174213},
		{"INGQUO_E.TRE", 0x152E2BFD},
		{"OPTIONS.TRE", 0x823D302F},
		{"TAHOMA18.FON", 0xFBD2CE19},
		{"VK.TRE", 0xA85CDBFE},
		{"ABCD", 0x44434241},
		{"A", 0x00000041},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FoldHash(tt.name)
			if got != tt.expected {
				t.Errorf("FoldHash(%q) = 0x%08X, want 0x%08X", tt.name, got, tt.expected)
			}
		})
	}
}

func TestFoldHash_CaseInsensitive(t *testing.T) {
	names := []string{"intro.vqa", "Clovdies.Aud", "subtls_e.fon", "kia6pt.FON", "mw_b01_e.tre"}
	for _, name := range names {
		lower := FoldHash(strings.ToLower(name))
		upper := FoldHash(strings.ToUpper(name))
		mixed := FoldHash(name)
		if lower != upper || upper != mixed {
			t.Errorf("FoldHash(%q): lower 0x%08X, upper 0x%08X, mixed 0x%08X", name, lower, upper, mixed)
		}
	}
}

func TestFoldHash_TruncatesAfterTwelveBytes(t *testing.T) {
	names := []string{"ABCDEFGHIJKLMNOP", "CLOVDIES.AUD.BAK", "verylongfilename.tre"}
	for _, name := range names {
		if got, want := FoldHash(name), FoldHash(name[:12]); got != want {
			t.Errorf("FoldHash(%q) = 0x%08X, want FoldHash(%q) = 0x%08X", name, got, name[:12], want)
		}
	}
}

func TestSigned(t *testing.T) {
	if got := Signed(0xEBFD9604); got != -335702524 {
		t.Errorf("Signed(0xEBFD9604) = %d, want -335702524", got)
	}
	if got := Signed(0x441D04C3); got != 1142752451 {
		t.Errorf("Signed(0x441D04C3) = %d, want 1142752451", got)
	}
}

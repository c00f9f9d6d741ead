package sheets

import (
	"strings"

	"github.com/classicadventures/mixcreator/trx"
)

// ArchiveName is the archive the game looks for.
const ArchiveName = "SUBTITLES.MIX"

// Font names as used by glyph configuration.
const (
	FontSubtitles = "SUBTLS_E"
	FontKIA       = "KIA6PT"
	FontTahoma    = "TAHOMA"
)

// FontFiles are packed next to the text resources when present.
var FontFiles = []string{"SUBTLS_E.FON", "KIA6PT.FON", "TAHOMA18.FON", "TAHOMA24.FON"}

const inGamePrefix = "INGQUO_"

// videoPrefixes name the cutscenes with subtitles, in playing order.
var videoPrefixes = []string{
	"WSTLGO_", "BRLOGO_", "INTRO_", "MW_A_",
	"MW_B01_", "MW_B02_", "MW_B03_", "MW_B04_", "MW_B05_",
	"INTRGT_", "MW_D_", "MW_C01_", "MW_C02_", "MW_C03_",
	"END04A_", "END04B_", "END04C_", "END06_",
	"END01A_", "END01B_", "END01C_", "END01D_", "END01E_", "END01F_",
	"END03_",
}

// englishOnlyVideos play before a language is chosen, so only an English
// resource exists for them.
var englishOnlyVideos = map[string]bool{"WSTLGO_": true, "BRLOGO_": true}

// translations are the interface text resources and the font they are drawn with.
var translations = []struct {
	name string
	font string
}{
	{"OPTIONS", FontKIA},
	{"DLGMENU", FontKIA},
	{"SCORERS", FontTahoma},
	{"VK", FontKIA},
	{"CLUES", FontKIA},
	{"CRIMES", FontKIA},
	{"ACTORS", FontKIA},
	{"HELP", FontKIA},
	{"AUTOSAVE", FontKIA},
	{"ERRORMSG", FontKIA},
	{"SPINDEST", FontKIA},
	{"KIA", FontKIA},
	{"KIACRED", FontKIA},
	{"CLUETYPE", FontKIA},
	{"ENDCRED", FontTahoma},
	{"POGO", FontKIA},
}

// Target says what a worksheet becomes.
type Target struct {
	Kind     trx.SourceKind
	Font     string
	Resource string   // TRx file name
	Sheets   []string // accepted worksheet names
}

// Catalog maps worksheet names to targets for one language.
type Catalog struct {
	Language Language
	Targets  []Target
	bySheet  map[string]int
}

// NewCatalog builds the catalog of lang.
func NewCatalog(lang Language) *Catalog {
	c := &Catalog{Language: lang, bySheet: make(map[string]int)}
	code := lang.Code
	ext := ".TR" + code

	c.add(Target{
		Kind:     trx.InGame,
		Font:     FontSubtitles,
		Resource: inGamePrefix + code + ext,
		Sheets:   []string{inGamePrefix + "E.TR", inGamePrefix + code + ".TR"},
	})
	for _, prefix := range videoPrefixes {
		resource := prefix + code + ext
		if englishOnlyVideos[prefix] {
			resource = prefix + "E.TRE"
		}
		c.add(Target{
			Kind:     trx.VideoScene,
			Font:     FontSubtitles,
			Resource: resource,
			Sheets:   []string{prefix + code + ".VQA", prefix + "E.VQA", prefix + code + ".TR"},
		})
	}
	for _, tr := range translations {
		c.add(Target{
			Kind:     trx.Translation,
			Font:     tr.font,
			Resource: tr.name + ext,
			Sheets:   []string{tr.name + ".TR"},
		})
	}
	return c
}

func (c *Catalog) add(t Target) {
	idx := len(c.Targets)
	c.Targets = append(c.Targets, t)
	for _, name := range append([]string{t.Resource}, t.Sheets...) {
		key := strings.ToUpper(name)
		if _, taken := c.bySheet[key]; !taken {
			c.bySheet[key] = idx
		}
	}
}

// Lookup finds the target of a worksheet name, ignoring case.
func (c *Catalog) Lookup(sheet string) (Target, bool) {
	idx, ok := c.bySheet[strings.ToUpper(strings.TrimSpace(sheet))]
	if !ok {
		return Target{}, false
	}
	return c.Targets[idx], true
}

// Candidates lists every file the archive may hold: dialogue resources,
// then translated interface text, then fonts.
func (c *Catalog) Candidates() []string {
	out := make([]string, 0, len(c.Targets)+len(FontFiles))
	for _, t := range c.Targets {
		out = append(out, t.Resource)
	}
	return append(out, FontFiles...)
}

// Resources lists the text resource names of the catalog.
func (c *Catalog) Resources() []string {
	out := make([]string, len(c.Targets))
	for i, t := range c.Targets {
		out[i] = t.Resource
	}
	return out
}

// AllCandidates lists the candidates of every supported language without
// duplicates. Readers use it to name the entries of an archive of unknown language.
func AllCandidates() []string {
	seen := make(map[string]bool)
	var out []string
	for _, lang := range Languages {
		for _, name := range NewCatalog(lang).Candidates() {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// TargetOf finds the target that produces a resource name in any language.
func TargetOf(resource string) (Target, bool) {
	for _, lang := range Languages {
		c := NewCatalog(lang)
		for _, t := range c.Targets {
			if strings.EqualFold(t.Resource, resource) {
				return t, true
			}
		}
	}
	return Target{}, false
}

package glyphs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// DefaultConfigFile is the configuration read when no other path is given.
const DefaultConfigFile = "configureFontsTranslation.txt"

const (
	keyEncoding = "targetEncoding"
	keyFont     = "fontNameAndOutOfOrderGlyphs"
	unsetValue  = "-"
)

// FontPairs holds the raw substitution pairs configured for one font.
type FontPairs struct {
	Font  string
	Pairs []Pair
}

// Config is the parsed font and encoding configuration.
type Config struct {
	Source   string
	Encoding string
	Fonts    []FontPairs
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Source: path, Msg: "configuration file not found", Err: err}
		}
		return nil, &ConfigError{Source: path, Msg: "cannot read configuration", Err: err}
	}
	defer f.Close()
	return ParseConfig(f, path)
}

// ParseConfig parses a configuration from r. Every line holds tab-separated
// key=value tokens. Unknown keys are ignored, a font defined twice keeps its
// first definition, and a missing target encoding is an error.
func ParseConfig(r io.Reader, source string) (*Config, error) {
	cfg := &Config{Source: source}
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		for _, token := range strings.Split(strings.TrimRight(sc.Text(), "\r"), "\t") {
			key, value, ok := strings.Cut(token, "=")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			switch key {
			case keyEncoding:
				value = strings.TrimSpace(value)
				if value != "" && value != unsetValue {
					cfg.Encoding = value
				}
			case keyFont:
				if value == "" || value == unsetValue {
					continue
				}
				fp, err := parseFontPairs(value)
				if err != nil {
					return nil, &ConfigError{Source: source, Line: line, Msg: err.Error()}
				}
				if seen[fp.Font] {
					continue
				}
				seen[fp.Font] = true
				cfg.Fonts = append(cfg.Fonts, fp)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ConfigError{Source: source, Msg: "cannot read configuration", Err: err}
	}
	if cfg.Encoding == "" {
		return nil, &ConfigError{Source: source, Msg: "no " + keyEncoding + " set"}
	}
	return cfg, nil
}

// parseFontPairs parses "FONT#a:b,c:d".
func parseFontPairs(value string) (FontPairs, error) {
	font, list, ok := strings.Cut(value, "#")
	font = strings.ToUpper(strings.TrimSpace(font))
	if !ok || font == "" || list == "" {
		return FontPairs{}, fmt.Errorf("malformed %s value %q", keyFont, value)
	}

	fp := FontPairs{Font: font}
	for _, item := range strings.Split(list, ",") {
		from, to, ok := strings.Cut(item, ":")
		if !ok {
			return FontPairs{}, fmt.Errorf("font %s: malformed glyph pair %q", font, item)
		}
		fp.Pairs = append(fp.Pairs, Pair{From: from, To: to})
	}
	return fp, nil
}

// Plans plans every configured font. A configuration without any font gets
// the default plan for the subtitle font.
func (c *Config) Plans() (Plans, error) {
	fonts := c.Fonts
	if len(fonts) == 0 {
		fonts = []FontPairs{{Font: DefaultFont, Pairs: DefaultPairs}}
	}

	plans := make(Plans, len(fonts))
	for _, fp := range fonts {
		plan, err := NewPlan(fp.Font, fp.Pairs)
		if err != nil {
			var ce *ConfigError
			if errors.As(err, &ce) && c.Source != "" {
				ce.Source = c.Source + ": " + ce.Source
			}
			return nil, err
		}
		plans[strings.ToUpper(fp.Font)] = plan
	}
	return plans, nil
}

// CodePage resolves the configured target encoding.
func (c *Config) CodePage() (*CodePage, error) {
	cp, err := LookupCodePage(c.Encoding)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) && ce.Source == "" {
			ce.Source = c.Source
		}
		return nil, err
	}
	return cp, nil
}

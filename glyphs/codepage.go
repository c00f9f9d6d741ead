package glyphs

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// CodePage is a single-byte target encoding for resource text.
type CodePage struct {
	Name string
	cm   *charmap.Charmap
}

// LookupCodePage resolves name through the WHATWG labels first and the IANA
// registry second. Only single-byte character maps are accepted.
func LookupCodePage(name string) (*CodePage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ConfigError{Msg: "no target encoding"}
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		enc, err = ianaindex.IANA.Encoding(name)
	}
	if err != nil {
		return nil, &ConfigError{Msg: "unknown target encoding " + name, Err: err}
	}
	if enc == nil {
		return nil, &ConfigError{Msg: "unsupported target encoding " + name}
	}

	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, &ConfigError{Msg: "target encoding " + name + " is not a single-byte code page"}
	}
	return &CodePage{Name: name, cm: cm}, nil
}

// Encode maps s to one byte per rune. On failure it returns the first rune the
// code page cannot represent.
func (c *CodePage) Encode(s string) ([]byte, rune, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := c.cm.EncodeRune(r)
		if !ok {
			return nil, r, false
		}
		out = append(out, b)
	}
	return out, 0, true
}

// Decode maps encoded bytes back to text.
func (c *CodePage) Decode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c8 := range b {
		sb.WriteRune(c.cm.DecodeByte(c8))
	}
	return sb.String()
}

func (c *CodePage) String() string {
	return c.Name
}

// Package glyphs plans the per-font character substitutions applied to
// subtitle text and resolves the single-byte code page it is encoded into.
//
// The game fonts only carry glyphs for one code page, and some of them store
// extra accented letters in slots that code page assigns to other characters.
// A substitution plan moves each such letter onto its slot before encoding.
// Rules are ordered so that no rule rewrites the output of an earlier one.
package glyphs

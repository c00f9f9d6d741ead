// Package main provides the mixcreator command-line interface.
//
// mixcreator builds SUBTITLES.MIX for Blade Runner (1997): it reads the
// subtitle workbook, substitutes glyphs the game fonts draw in place of
// characters the target code page lacks, encodes every sheet into a TRx text
// resource and packs the resources and fonts into a MIX archive the engine
// can binary search.
//
// The binary supports multiple subcommands:
//   - build: workbook to archive in one run
//   - pack: archive existing files
//   - validate: check archives and the text resources inside them
//   - inspect: decode the quotes of a text resource
//   - hash: print archive ids of file names
//   - mount: serve an archive as a read-only filesystem
package main

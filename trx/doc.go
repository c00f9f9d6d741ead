// Package trx encodes spreadsheet rows into the game's text resources (TRx
// files) and reads them back.
//
// A TRx file maps 32-bit quote ids to zero-terminated strings in a single-byte
// code page. The last letter of the extension names the language (TRE for
// English, TRG for German and so on). Subtitles for in-game speech, video
// cutscenes and translated interface text all share the format and differ only
// in how their ids are derived; see SourceKind.
package trx

// Package mix reads and writes MIX archives in the layout of the Blade Runner engine.
//
// A MIX archive is a 6-byte header (uint16 entry count, uint32 data segment size),
// a table of 12-byte entry descriptors (uint32 id, uint32 offset, uint32 size) and the
// data segment holding every entry's bytes back to back. All fields are little-endian.
// Offsets are relative to the data segment.
//
// Entries carry no names. An entry's id is the FoldHash of its filename, and the engine
// locates a file with a binary search over the ids interpreted as signed 32-bit integers,
// so the table must be sorted by that signed value. Data is stored in table order.
package mix

// Package mixfs exposes a packed archive as a read-only FUSE filesystem.
//
// The mount has a single directory. Entries whose names can be recovered from
// the known resource catalog appear under those names; the rest appear under
// their eight-digit hex id. Text resources additionally appear decoded, one
// quote per line, with a .txt suffix.
package mixfs

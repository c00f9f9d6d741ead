// Package version reports the mixcreator version.
//
// Release builds inject Version, Commit and Date through -ldflags; other
// builds fall back to the module and VCS information recorded by the go tool.
// The version is shown by "mixcreator --version" and stamped into every
// build manifest.
package version

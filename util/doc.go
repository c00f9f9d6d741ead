// Package util provides the shared building blocks of mixcreator.
//
// The packages that encode text resources and pack archives share a small amount of
// infrastructure that lives here:
//
// Error Kinds:
//   - ErrConfiguration, ErrInputFormat, ErrEncoding and ErrIO classify every fatal or
//     tolerated failure of a build; component errors wrap one of them
//
// Atomic Output:
//   - WriteFileAtomic and CreateAtomic write to a uniquely named temporary file in the
//     destination directory and rename it into place on success, so an interrupted build
//     never leaves a half-written archive that looks complete
//
// Writers:
//   - CountingWriter tracks the bytes written by WriteTo implementations
//
// Hashing:
//   - SHA-256 content hashes of produced files, recorded in the build manifest
//
// Build Manifest:
//   - Manifest and ManifestEntry describe one build (language, code page, every packed entry
//     with its fold hash id, offset, size and content hash) and are persisted as JSON next to
//     the archive
package util

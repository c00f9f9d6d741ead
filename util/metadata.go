package util

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/classicadventures/mixcreator/version"
	"github.com/google/uuid"
)

// ManifestSuffix is appended to the archive path to name its build manifest.
const ManifestSuffix = ".json"

// ManifestEntry describes one packed archive entry.
type ManifestEntry struct {
	Name   string `json:"name"`
	ID     string `json:"id"`     // fold hash, %08X
	Signed int32  `json:"signed"` // sort key used by the engine
	Offset uint32 `json:"offset"` // relative to the data segment
	Size   uint32 `json:"size"`
	SHA256 string `json:"sha256"`
}

// ResourceSummary describes one text resource produced from a sheet.
type ResourceSummary struct {
	Sheet   string `json:"sheet"`
	Kind    string `json:"kind"`
	Font    string `json:"font"`
	File    string `json:"file"`
	Quotes  int    `json:"quotes"`
	Skipped int    `json:"skipped"`
}

// Manifest records what one build produced.
type Manifest struct {
	BuildID   string            `json:"build_id"`
	Tool      string            `json:"tool_version"`
	BuiltAt   time.Time         `json:"built_at"`
	Language  string            `json:"language"`
	Encoding  string            `json:"encoding"`
	Archive   string            `json:"archive"`
	SHA256    string            `json:"sha256"`
	DataSize  uint32            `json:"data_size"`
	Resources []ResourceSummary `json:"resources"`
	Entries   []ManifestEntry   `json:"entries"`
}

// NewManifest starts a manifest with a fresh build id.
func NewManifest(archive, language, encoding string) Manifest {
	return Manifest{
		BuildID:  uuid.NewString(),
		Tool:     version.GetVersion(),
		BuiltAt:  time.Now().UTC(),
		Language: language,
		Encoding: encoding,
		Archive:  archive,
	}
}

// Save writes the manifest as indented JSON next to the archive.
func (m Manifest) Save(path string) error {
	if !strings.HasSuffix(path, ManifestSuffix) {
		path += ManifestSuffix
	}
	return WriteFileAtomic(path, func(w io.Writer) error {
		je := json.NewEncoder(w)
		je.SetIndent("", "  ")
		return je.Encode(m)
	})
}

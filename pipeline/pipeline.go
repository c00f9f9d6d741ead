// Package pipeline runs a complete build: it encodes every catalogued sheet of
// a workbook into a TRx file and packs the results with the fonts into the
// subtitles archive.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/classicadventures/mixcreator/actors"
	"github.com/classicadventures/mixcreator/glyphs"
	"github.com/classicadventures/mixcreator/mix"
	"github.com/classicadventures/mixcreator/sheets"
	"github.com/classicadventures/mixcreator/trx"
	"github.com/classicadventures/mixcreator/util"
)

// Options configure a build.
type Options struct {
	Workbook   string
	ConfigPath string
	// ActorsPath names the actor table. It is optional; a missing table is logged.
	ActorsPath string
	// InputDir holds the font files. Defaults to the working directory.
	InputDir string
	// OutputDir receives the TRx files, the archive and its manifest.
	OutputDir string
	Language  sheets.Language
	Strict    bool
	Logger    logrus.FieldLogger
}

// Result describes a finished build.
type Result struct {
	Archive   string
	Index     *mix.Index
	Resources []util.ResourceSummary
	Manifest  util.Manifest
}

// Run performs the build described by opts. The configuration is loaded before
// any sheet is read, and the archive is only written once every sheet encoded.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if opts.Language.Code == "" {
		opts.Language = sheets.English
	}
	inputDir := dirOrDot(opts.InputDir)
	outputDir := dirOrDot(opts.OutputDir)
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = glyphs.DefaultConfigFile
	}

	cfg, err := glyphs.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	codePage, err := cfg.CodePage()
	if err != nil {
		return nil, err
	}
	plans, err := cfg.Plans()
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"encoding": codePage.Name, "fonts": len(plans)}).Info("loaded font configuration")

	cast := loadActors(opts.ActorsPath, log)

	wb, err := sheets.OpenWorkbook(opts.Workbook)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	catalog := sheets.NewCatalog(opts.Language)
	log.WithField("language", opts.Language.String()).Info("building subtitles")

	res := &Result{}
	producedBy := make(map[string]string)
	for _, name := range wb.SheetNames() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		target, ok := catalog.Lookup(name)
		if !ok {
			log.WithField("sheet", name).Debug("ignoring sheet")
			continue
		}
		if prev, dup := producedBy[target.Resource]; dup {
			return nil, fmt.Errorf("%w: sheets %s and %s both produce %s", util.ErrInputFormat, prev, name, target.Resource)
		}
		producedBy[target.Resource] = name

		summary, err := encodeSheet(wb, name, target, codePage, plans, opts.Strict, cast, outputDir, log)
		if err != nil {
			return nil, err
		}
		res.Resources = append(res.Resources, summary)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Archive = filepath.Join(outputDir, sheets.ArchiveName)
	res.Index, err = mix.PackFile(res.Archive, catalog.Candidates(), outputDir, inputDir)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"file": res.Archive, "entries": len(res.Index.Entries)}).Info("packed archive")

	res.Manifest, err = writeManifest(res, opts.Language, codePage)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func encodeSheet(wb sheets.Workbook, name string, target sheets.Target, cp *glyphs.CodePage, plans glyphs.Plans,
	strict bool, cast *actors.Table, outputDir string, log logrus.FieldLogger) (util.ResourceSummary, error) {
	sheet, err := sheets.Load(wb, name, target)
	if err != nil {
		return util.ResourceSummary{}, err
	}

	enc := trx.Encoder{CodePage: cp, Plan: plans.For(target.Font), Strict: strict, Logger: log}
	tr, stats, err := enc.EncodeStats(sheet)
	if err != nil {
		return util.ResourceSummary{}, err
	}
	if target.Kind == trx.InGame {
		for _, id := range stats.Long {
			if who, ok := cast.Speaker(id); ok {
				log.WithFields(logrus.Fields{"sheet": name, "quote": id, "actor": who.FullName}).Debug("long quote")
			}
		}
	}

	path := filepath.Join(outputDir, target.Resource)
	if err := tr.WriteFile(path); err != nil {
		return util.ResourceSummary{}, err
	}
	log.WithFields(logrus.Fields{"sheet": name, "file": path, "quotes": stats.Quotes}).Info("wrote text resource")

	return util.ResourceSummary{
		Sheet:   name,
		Kind:    target.Kind.String(),
		Font:    target.Font,
		File:    target.Resource,
		Quotes:  stats.Quotes,
		Skipped: stats.Skipped,
	}, nil
}

func loadActors(path string, log logrus.FieldLogger) *actors.Table {
	if path == "" {
		path = actors.DefaultFile
	}
	cast, err := actors.Load(path)
	if err != nil {
		log.WithError(err).Warn("actor names unavailable")
		return nil
	}
	log.WithFields(logrus.Fields{"file": path, "actors": cast.Len()}).Debug("loaded actor names")
	return cast
}

func writeManifest(res *Result, lang sheets.Language, cp *glyphs.CodePage) (util.Manifest, error) {
	m := util.NewManifest(filepath.Base(res.Archive), lang.Description, cp.Name)
	m.DataSize = res.Index.DataSize
	m.Resources = res.Resources

	sum, err := util.GetFileHash(res.Archive)
	if err != nil {
		return m, err
	}
	m.SHA256 = sum

	for _, e := range res.Index.Entries {
		sum, err := util.GetFileHash(e.Path)
		if err != nil {
			return m, err
		}
		m.Entries = append(m.Entries, util.ManifestEntry{
			Name:   e.Name,
			ID:     fmt.Sprintf("%08X", e.ID),
			Signed: mix.Signed(e.ID),
			Offset: e.Offset,
			Size:   e.Size,
			SHA256: sum,
		})
	}
	return m, m.Save(res.Archive)
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

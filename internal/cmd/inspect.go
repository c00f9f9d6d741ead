package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/classicadventures/mixcreator/actors"
	"github.com/classicadventures/mixcreator/glyphs"
	"github.com/classicadventures/mixcreator/mix"
	"github.com/classicadventures/mixcreator/mixfs"
	"github.com/classicadventures/mixcreator/sheets"
	"github.com/classicadventures/mixcreator/trx"
	"github.com/classicadventures/mixcreator/util"
)

// Output formats of inspect.
const (
	formatYAML = "yaml"
	formatJSON = "json"
	formatText = "text"
)

type quoteView struct {
	ID      uint32 `yaml:"id" json:"id"`
	Speaker string `yaml:"speaker,omitempty" json:"speaker,omitempty"`
	Text    string `yaml:"text" json:"text"`
}

type resourceView struct {
	Name     string      `yaml:"name" json:"name"`
	Kind     string      `yaml:"kind,omitempty" json:"kind,omitempty"`
	Encoding string      `yaml:"encoding" json:"encoding"`
	Size     int64       `yaml:"size" json:"size"`
	Quotes   []quoteView `yaml:"quotes" json:"quotes"`
}

type inspectOptions struct {
	entry    string
	format   string
	actors   string
	encoding string
}

// NewInspectCmd creates and returns the inspect subcommand for the mixcreator CLI.
// It decodes a text resource, either a loose file or an entry of an archive.
func NewInspectCmd() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Dump the quotes of a text resource",
		Long: `Decode a text resource and print its quotes.

FILE is either a text resource (INGQUO_E.TRE, OPTIONS.TRG, ...) or an archive,
in which case --entry names the resource to read. Quotes of in-game resources
are labelled with their speaker when the actor names table can be read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.entry, "entry", "e", "", "Resource to read when FILE is an archive")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatYAML, "Output format (yaml, json, text)")
	cmd.Flags().StringVar(&opts.actors, "actors", actors.DefaultFile, "Path to the actor names table")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "windows-1252", "Code page the quotes were encoded with")

	return cmd
}

func runInspect(out io.Writer, path string, opts inspectOptions) error {
	cp, err := glyphs.LookupCodePage(opts.encoding)
	if err != nil {
		return err
	}

	name, data, err := readResource(path, opts.entry)
	if err != nil {
		return err
	}
	tr, err := trx.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if opts.format == formatText {
		_, err := out.Write(mixfs.Render(tr, cp))
		return err
	}

	view := resourceView{
		Name:     name,
		Encoding: cp.String(),
		Size:     tr.Size(),
		Quotes:   make([]quoteView, 0, tr.Count()),
	}
	target, known := sheets.TargetOf(name)
	if known {
		view.Kind = target.Kind.String()
	}

	var table *actors.Table
	if known && target.Kind == trx.InGame && opts.actors != "" {
		// Speaker labels are optional; an unreadable table only drops them.
		table, _ = actors.Load(opts.actors)
	}

	for i, id := range tr.IDs {
		q := quoteView{ID: id, Text: cp.Decode(tr.Strings[i])}
		if a, ok := table.Speaker(id); ok {
			q.Speaker = a.ShortName
		}
		view.Quotes = append(view.Quotes, q)
	}

	switch opts.format {
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		return fmt.Errorf("%w: unknown format %q", util.ErrConfiguration, opts.format)
	}
}

// readResource loads a loose resource file, or entry from the archive at path.
func readResource(path, entry string) (string, []byte, error) {
	if entry == "" {
		if strings.EqualFold(filepath.Ext(path), ".MIX") {
			return "", nil, fmt.Errorf("%w: %s is an archive, name a resource with --entry", util.ErrConfiguration, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", util.ErrIO, err)
		}
		return strings.ToUpper(filepath.Base(path)), data, nil
	}

	a, err := mix.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer a.Close()

	data, err := a.ReadFile(entry)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return strings.ToUpper(entry), data, nil
}

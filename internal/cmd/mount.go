package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/spf13/cobra"

	"github.com/classicadventures/mixcreator/glyphs"
	"github.com/classicadventures/mixcreator/mix"
	"github.com/classicadventures/mixcreator/mixfs"
	"github.com/classicadventures/mixcreator/sheets"
	"github.com/classicadventures/mixcreator/util"
	"github.com/classicadventures/mixcreator/version"
)

// NewMountCmd creates and returns the mount subcommand for the mixcreator CLI.
// It serves one archive as a read-only directory.
func NewMountCmd() *cobra.Command {
	var (
		encoding string
		names    []string
	)

	cmd := &cobra.Command{
		Use:   "mount ARCHIVE MOUNTPOINT",
		Short: "Mount an archive as a read-only filesystem",
		Long: `Mount an archive at the specified mountpoint.

Every entry appears as a file named after its resource, or after its hex id
when the name is not known. Text resources also get a decoded NAME.txt
sibling listing "id<TAB>text" lines; pass --encoding "" to hide them.

The filesystem stays mounted until interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd, args[0], args[1], encoding, names)
		},
	}

	cmd.Flags().StringVar(&encoding, "encoding", "windows-1252", "Code page used to decode the .txt views")
	cmd.Flags().StringSliceVarP(&names, "name", "n", nil, "Additional entry names to recognize")

	return cmd
}

func runMount(cmd *cobra.Command, archivePath, mountpoint, encoding string, names []string) error {
	log := newLogger(cmd)
	log.Infof("mixcreator %s starting...", version.GetFullVersion())

	if pathsOverlap(archivePath, mountpoint) {
		return fmt.Errorf("%w: archive %s lies inside mountpoint %s", util.ErrConfiguration, archivePath, mountpoint)
	}

	var cp *glyphs.CodePage
	if encoding != "" {
		var err error
		if cp, err = glyphs.LookupCodePage(encoding); err != nil {
			return err
		}
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", util.ErrIO, err)
	}
	a, err := mix.Open(archivePath)
	if err != nil {
		return err
	}
	defer a.Close()

	filesystem := mixfs.NewFS(a, append(sheets.AllCandidates(), names...), cp, info.ModTime())

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("mixcreator"),
		fuse.Subtype("mixcreator"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("%w: mount %s: %w", util.ErrIO, mountpoint, err)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		if cmd.Context().Err() == nil {
			log.Info("Received interrupt signal, shutting down...")
		}
		if err := fuse.Unmount(mountpoint); err != nil {
			log.WithError(err).Debug("unmount")
		}
	}()

	log.Infof("%s mounted at %s (%d entries)", archivePath, mountpoint, len(a.Entries))
	if err := fs.Serve(c, filesystem); err != nil {
		return err
	}
	log.Info("Shutdown complete")
	return nil
}

// pathsOverlap reports whether one path is the other or lies beneath it.
func pathsOverlap(path1, path2 string) bool {
	a := absPath(path1)
	b := absPath(path2)
	return within(a, b) || within(b, a)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}


package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/althtml/althtml/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [config]",
	Short: "Compile every source of a project to its destination",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(flagVerbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		rep, err := project.Builder{Config: cfg, Log: log}.Build(cmd.Context())
		printReport(cmd.OutOrStdout(), cfg, rep, err)
		return err
	},
}

// printReport writes one status line per destination written, and a
// summary line for the pass.
func printReport(w io.Writer, cfg *project.Config, rep project.Report, err error) {
	for _, pair := range rep.Written {
		fmt.Fprintf(w, "%s %s\n", styleOK.Render("wrote"), styleFile.Render(relPath(cfg.Dir, pair.Dst)))
	}
	if err != nil {
		fmt.Fprintf(w, "%s after %v\n", styleErr.Render("failed"), rep.Elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintln(w, styleDim.Render(fmt.Sprintf(
		"built %d files, %d headers, in %v", len(rep.Written), len(rep.Headers), rep.Elapsed.Round(time.Millisecond))))
}

func relPath(dir, name string) string {
	if rel, err := filepath.Rel(dir, name); err == nil {
		return rel
	}
	return name
}

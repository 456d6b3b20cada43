package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/crates/internal/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan [dir...]",
		Short: "Import the tags of music files into the library",
		Long:  "Scan the given directories, or the configured library_sources when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sources := args
			if len(sources) == 0 {
				sources = cfg.LibrarySources
			}
			if len(sources) == 0 {
				return fmt.Errorf("no directories to scan: pass them as arguments or set library_sources")
			}

			mgr, err := ctx.openState(cfg)
			if err != nil {
				return err
			}
			defer mgr.Close()
			lib, err := newLibrary(cfg, mgr)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var progress chan library.ScanProgress
			done := make(chan struct{})
			if !quiet {
				progress = make(chan library.ScanProgress, 64)
				go func() {
					defer close(done)
					for p := range progress {
						if p.Total > 0 && p.Current%100 == 0 {
							fmt.Fprintf(out, "%s %s/%s\n", p.Phase, humanize.Comma(int64(p.Current)), humanize.Comma(int64(p.Total)))
						}
					}
				}()
			} else {
				close(done)
			}

			stats, err := lib.Scan(cmd.Context(), sources, progress)
			if progress != nil {
				close(progress)
			}
			<-done
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Files", "Count"},
				[][]string{
					{"Added", humanize.Comma(int64(stats.Added))},
					{"Updated", humanize.Comma(int64(stats.Updated))},
					{"Removed", humanize.Comma(int64(stats.Removed))},
					{"Skipped", humanize.Comma(int64(stats.Skipped))},
				},
				1,
			))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the summary")
	return cmd
}

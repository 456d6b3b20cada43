package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "library_sources  = %q\n", cfg.LibrarySources)
			fmt.Fprintf(out, "refresh_cooldown = %s\n", cfg.RefreshCooldown)
			fmt.Fprintf(out, "load_timeout     = %s\n", cfg.LoadTimeout)
			fmt.Fprintf(out, "recents_limit    = %d\n", cfg.RecentsLimit)
			fmt.Fprintf(out, "icons            = %s\n", cfg.Icons)
			fmt.Fprintf(out, "notifications    = %t\n", cfg.Notifications)
			fmt.Fprintf(out, "log_level        = %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "log_file         = %s\n", cfg.LogFile)
			fmt.Fprintf(out, "database         = %s\n", cfg.Database)
			fmt.Fprintf(out, "cache_dir        = %s\n", cfg.CacheDir)
			fmt.Fprintf(out, "artwork_dir      = %s\n", artworkDir(cfg))

			kinds := make([]string, 0, len(cfg.Layouts))
			for k := range cfg.Layouts {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				fmt.Fprintf(out, "layouts.%s = %s\n", k, cfg.Layouts[k])
			}
			return nil
		},
	}
}

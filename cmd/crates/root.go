package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/crates/internal/app"
	"github.com/llehouerou/crates/internal/config"
	"github.com/llehouerou/crates/internal/icons"
	"github.com/llehouerou/crates/internal/logging"
	"github.com/llehouerou/crates/internal/notify"
	"github.com/llehouerou/crates/internal/playback"
	"github.com/llehouerou/crates/internal/playlists"
	"github.com/llehouerou/crates/internal/refresh"
	"github.com/llehouerou/crates/internal/ui/profile"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "crates",
		Short:         "Browse your music library in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func runTUI(ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err := ctx.openLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log := logging.Component(logger, "main")
	icons.Init(cfg.Icons)

	mgr, err := ctx.openState(cfg)
	if err != nil {
		return err
	}
	defer mgr.Close()

	prefs, err := config.NewPreferences(cfg.Layouts, mgr)
	if err != nil {
		return fmt.Errorf("layouts: %w", err)
	}

	db := mgr.DB()
	lib, err := newLibrary(cfg, mgr)
	if err != nil {
		return err
	}
	pl := playlists.New(db, lib)
	rec := playlists.NewRecents(db, lib)
	svc := playback.New(lib, pl, rec, mgr, logging.Component(logger, "playback"))
	defer svc.Close()

	var notifier notify.Notifier
	if cfg.Notifications {
		if notifier, err = notify.New(); err != nil {
			log.WithError(err).Warn("desktop notifications unavailable")
		}
	}

	model := app.New(app.Options{
		Deps: profile.Deps{
			Catalogue:    lib,
			Playlists:    pl,
			Favorites:    playlists.NewFavorites(db, lib),
			Recents:      rec,
			Prefs:        prefs,
			Gate:         refresh.NewGate(cfg.RefreshCooldown, nil),
			ArtworkDir:   artworkDir(cfg),
			LoadTimeout:  cfg.LoadTimeout,
			RecentsLimit: cfg.RecentsLimit,
			Log:          logging.Component(logger, "profile"),
		},
		Player:  svc,
		Artists: lib,
		Layouts: prefs,
		State:   mgr,
		Log:     log,

		Scanner:        lib,
		LibrarySources: cfg.LibrarySources,
		Notifier:       notifier,
	})

	log.Info("starting")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

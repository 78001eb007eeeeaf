package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/shindan/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("starting tui")
	return app.Run(app.Options{
		Profiles: e.profiles,
		Gacha:    e.gacha,
		Logger:   e.log.Named("app"),
	})
}

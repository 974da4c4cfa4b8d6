package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/althtml/althtml/internal/project"
	"github.com/althtml/althtml/internal/watch"
)

var flagSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [config]",
	Short: "Build a project, then rebuild it whenever its files change",
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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		w := watch.Watcher{
			Builder: project.Builder{Config: cfg, Log: log},
			Log:     log,
			Settle:  flagSettle,
			OnBuild: func(rep project.Report, err error) {
				printReport(out, cfg, rep, err)
				if err != nil {
					cmd.PrintErrln(styleErr.Render("Error:"), err.Error())
				}
			},
		}

		// a failing initial build is reported, not fatal; the next change
		// retries it
		rep, err := w.Builder.Build(ctx)
		w.OnBuild(rep, err)

		log.Infow("watching", "config", cfg.Dir)
		return w.Run(ctx)
	},
}

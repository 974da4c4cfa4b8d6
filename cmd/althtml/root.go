package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/althtml/althtml/internal/project"
	"github.com/althtml/althtml/internal/textutil"
)

const appName = "althtml"

var rootCmd = &cobra.Command{
	Use:   appName + " [command]",
	Short: "Compile indentation-structured markup into HTML",
	Long: "Compile indentation-structured markup into HTML.\n\n" +
		"Projects are described by an " + project.DefaultConfigName + " file, found in the\n" +
		"current directory or any of its parents when not given.",
}

// newLogger returns a console logger on stderr; verbose enables debug
// logging, otherwise only warnings and errors are shown.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}

// loadConfig loads the named configuration, or finds the default one.
func loadConfig(args []string) (*project.Config, error) {
	if len(args) > 0 {
		return project.Load(args[0])
	}
	path, err := textutil.FindWDFile(project.DefaultConfigName)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("no %s found in the current directory or its parents", project.DefaultConfigName)
	}
	return project.Load(path)
}

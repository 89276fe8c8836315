// Command survey serves the joint health survey and manages its database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ywyher/survey/config"
	"github.com/ywyher/survey/internal/app"
	"github.com/ywyher/survey/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// survey is the wired application, built before any command but version runs.
	survey *app.App

	log = logger.New("cmd").File("main")
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "survey",
	Short:         "Survey collects and lists joint health questionnaire responses",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return initApp()
	},
}

func init() {
	// finalizers run even when a command fails, unlike PersistentPostRunE
	cobra.OnFinalize(func() {
		if err := closeApp(); err != nil {
			log.Function("closeApp").Er("failed to close app", err)
		}
	})

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(cacheCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "survey %s\n", version)
	},
}

func initApp() error {
	cfg, err := config.InitConfig()
	if err != nil {
		return log.Function("initApp").Err("failed to load config", err)
	}
	logger.SetLevel(cfg.LogLevel)

	survey, err = app.New(cfg)
	if err != nil {
		return log.Function("initApp").Err("failed to initialize app", err)
	}

	return nil
}

func closeApp() error {
	if survey == nil {
		return nil
	}
	err := survey.Close()
	survey = nil
	return err
}

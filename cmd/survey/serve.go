package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ywyher/survey/cmd/migration/initialize"
	"github.com/ywyher/survey/internal/handlers"
)

const shutdownTimeout = 10 * time.Second

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply pending migrations and start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := log.Function("serve")

		if !skipMigrations {
			if err := initialize.InitializeTables(survey.Database, log); err != nil {
				return err
			}
		}

		server, err := handlers.NewServer(survey)
		if err != nil {
			return log.Err("failed to build server", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		address := fmt.Sprintf(":%d", survey.Config.ServerPort)
		listenErr := make(chan error, 1)
		go func() {
			log.Info("Starting server", "address", address, "app", survey.Config.AppName)
			listenErr <- server.Listen(address)
		}()

		select {
		case err := <-listenErr:
			if err != nil {
				return log.Err("server stopped", err, "address", address)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("Shutting down server")
		if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return log.Err("failed to shut down server", err)
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "start without applying pending migrations")
}

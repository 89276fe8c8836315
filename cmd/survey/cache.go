package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response list cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drop every cached response list",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := survey.Database.FlushAllCaches(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "flushed response cache")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
}

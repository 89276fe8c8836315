package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ywyher/survey/cmd/migration/initialize"
	"github.com/ywyher/survey/cmd/migration/seed"
)

var (
	seedCount int
	seedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert generated demo responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := log.Function("seed")

		if err := initialize.InitializeTables(survey.Database, log); err != nil {
			return err
		}

		inserted, err := seed.Seed(cmd.Context(), survey.ResponseController, seedCount, seedValue, log)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d response(s)\n", inserted)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 20, "number of responses to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed (0 = time based)")
}

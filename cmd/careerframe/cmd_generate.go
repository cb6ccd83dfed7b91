package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// generateCmd derives every valid job in the dataset.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Derive every valid job combination",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngines()
		if err != nil {
			return err
		}
		jobs := e.deriv.GenerateAll(e.data.Disciplines, e.data.Levels, e.data.Tracks)
		logger.Debug("jobs generated", zap.Int("count", len(jobs)))
		return printJSON(jobs)
	},
}

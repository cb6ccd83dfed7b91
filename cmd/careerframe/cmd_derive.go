package main

import (
	"github.com/spf13/cobra"
)

// deriveCmd resolves one combination into a job definition. An invalid
// combination is an expected outcome, not an error: the command reports it
// and exits zero.
var deriveCmd = &cobra.Command{
	Use:   "derive <discipline> <level> [track]",
	Short: "Derive one job definition",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngines()
		if err != nil {
			return err
		}
		trackID := ""
		if len(args) == 3 {
			trackID = args[2]
		}
		d, l, t, err := e.resolveCombination(args[0], args[1], trackID)
		if err != nil {
			return err
		}
		job := e.deriv.DeriveJob(d, l, t)
		if job == nil {
			return printJSON(map[string]interface{}{
				"valid":  false,
				"reason": "not a valid combination",
			})
		}
		return printJSON(job)
	},
}

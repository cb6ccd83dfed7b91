package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"careerframe/internal/dataset"
)

var pathNextStep bool

// pathCmd derives a development path toward a target job, or the best next
// step from a current job with --next.
var pathCmd = &cobra.Command{
	Use:   "path <assessment.yaml> <discipline> <level> [track]",
	Short: "Derive a development path toward a target job",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngines()
		if err != nil {
			return err
		}
		sa, err := dataset.LoadAssessment(args[0])
		if err != nil {
			return err
		}
		trackID := ""
		if len(args) == 4 {
			trackID = args[3]
		}
		d, l, t, err := e.resolveCombination(args[1], args[2], trackID)
		if err != nil {
			return err
		}
		job := e.deriv.DeriveJob(d, l, t)
		if job == nil {
			return fmt.Errorf("%s is not a valid combination", derivedName(args[1], args[2], trackID))
		}
		if pathNextStep {
			next := e.match.FindNextStepJob(sa, job, e.data.Levels, e.data.Tracks)
			if next == nil {
				return printJSON(map[string]interface{}{
					"next_step": nil,
					"reason":    "already at the top level or no valid candidate",
				})
			}
			return printJSON(next)
		}
		return printJSON(e.match.DeriveDevelopmentPath(sa, job))
	},
}

func derivedName(disciplineID, levelID, trackID string) string {
	if trackID == "" {
		return disciplineID + ":" + levelID
	}
	return disciplineID + ":" + levelID + ":" + trackID
}

func init() {
	pathCmd.Flags().BoolVar(&pathNextStep, "next", false, "find the best next-step job instead of a full path")
}

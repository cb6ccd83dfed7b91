package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"careerframe/internal/dataset"
	"careerframe/internal/model"
)

var (
	matchTopN       int
	matchRealistic  bool
	matchDiscipline string
	matchLevel      string
)

// matchCmd scores a self-assessment against every valid job.
var matchCmd = &cobra.Command{
	Use:   "match <assessment.yaml>",
	Short: "Rank jobs against a self-assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngines()
		if err != nil {
			return err
		}
		sa, err := dataset.LoadAssessment(args[0])
		if err != nil {
			return err
		}
		logger.Debug("assessment loaded",
			zap.Int("skills", len(sa.Skills)),
			zap.Int("behaviours", len(sa.Behaviours)))

		disciplines := e.data.Disciplines
		if matchDiscipline != "" {
			d := e.data.Discipline(matchDiscipline)
			if d == nil {
				return fmt.Errorf("unknown discipline %q", matchDiscipline)
			}
			disciplines = []*model.Discipline{d}
		}
		levels := e.data.Levels
		if matchLevel != "" {
			l := e.data.Level(matchLevel)
			if l == nil {
				return fmt.Errorf("unknown level %q", matchLevel)
			}
			levels = []*model.Level{l}
		}

		if matchRealistic {
			result := e.match.FindRealisticMatches(sa, disciplines, levels, e.data.Tracks, matchTopN)
			return printJSON(result)
		}
		matches := e.match.FindMatchingJobs(sa, disciplines, levels, e.data.Tracks, matchTopN)
		return printJSON(matches)
	},
}

func init() {
	matchCmd.Flags().IntVarP(&matchTopN, "top", "n", 0, "number of matches to return (0 = policy default)")
	matchCmd.Flags().BoolVar(&matchRealistic, "realistic", false, "window results around the estimated level")
	matchCmd.Flags().StringVar(&matchDiscipline, "discipline", "", "restrict matching to one discipline")
	matchCmd.Flags().StringVar(&matchLevel, "level", "", "restrict matching to one level")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"careerframe/internal/model"
	"careerframe/internal/progression"
)

// progressionCmd diffs two derived jobs for progression display.
var progressionCmd = &cobra.Command{
	Use:   "progression <from> <to>",
	Short: "Diff two jobs (arguments as discipline:level[:track])",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngines()
		if err != nil {
			return err
		}
		from, err := e.deriveTriple(args[0])
		if err != nil {
			return err
		}
		to, err := e.deriveTriple(args[1])
		if err != nil {
			return err
		}
		return printJSON(progression.Analyze(from, to))
	},
}

// deriveTriple derives the job named by a discipline:level[:track] triple,
// failing on invalid combinations since a diff needs both endpoints.
func (e *engines) deriveTriple(arg string) (*model.JobDefinition, error) {
	disciplineID, levelID, trackID, err := parseTriple(arg)
	if err != nil {
		return nil, err
	}
	d, l, t, err := e.resolveCombination(disciplineID, levelID, trackID)
	if err != nil {
		return nil, err
	}
	job := e.deriv.DeriveJob(d, l, t)
	if job == nil {
		return nil, fmt.Errorf("%s is not a valid combination", arg)
	}
	return job, nil
}

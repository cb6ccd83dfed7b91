// careerframe derives concrete job definitions from an authored career
// framework and scores self-assessments against them. All output is JSON;
// rendering belongs to downstream consumers.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"careerframe/internal/dataset"
	"careerframe/internal/derive"
	"careerframe/internal/match"
	"careerframe/internal/model"
	"careerframe/internal/policy"
)

var (
	// Global flags
	dataDir string
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "careerframe",
	Short: "careerframe - career framework derivation and matching engine",
	Long: `careerframe models a career framework (disciplines, tracks, levels,
skills, behaviours) and derives concrete job definitions, candidate match
scores and role-to-role progression diffs from it.

All commands read the framework from a dataset directory of YAML files
(--data) and print JSON to stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// engines bundles everything a command needs after loading the dataset.
type engines struct {
	data  *dataset.Dataset
	deriv *derive.Engine
	match *match.Engine
}

func loadEngines() (*engines, error) {
	ds, err := dataset.Load(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading dataset from %s: %w", dataDir, err)
	}
	logger.Debug("dataset loaded",
		zap.String("dir", dataDir),
		zap.Int("disciplines", len(ds.Disciplines)),
		zap.Int("tracks", len(ds.Tracks)),
		zap.Int("levels", len(ds.Levels)),
		zap.Int("skills", len(ds.Skills)),
		zap.Int("behaviours", len(ds.Behaviours)))

	pol := policy.Default()
	if err := pol.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	deriv := derive.NewEngine(ds.Skills, ds.Behaviours, ds.Capabilities, ds.Levels, ds.Rules, pol)
	return &engines{
		data:  ds,
		deriv: deriv,
		match: match.NewEngine(deriv, pol),
	}, nil
}

// resolveCombination parses a discipline/level/optional-track argument set.
func (e *engines) resolveCombination(disciplineID, levelID, trackID string) (*model.Discipline, *model.Level, *model.Track, error) {
	d := e.data.Discipline(disciplineID)
	if d == nil {
		return nil, nil, nil, fmt.Errorf("unknown discipline %q", disciplineID)
	}
	l := e.data.Level(levelID)
	if l == nil {
		return nil, nil, nil, fmt.Errorf("unknown level %q", levelID)
	}
	var t *model.Track
	if trackID != "" {
		if t = e.data.Track(trackID); t == nil {
			return nil, nil, nil, fmt.Errorf("unknown track %q", trackID)
		}
	}
	return d, l, t, nil
}

// parseTriple splits "discipline:level[:track]".
func parseTriple(arg string) (disciplineID, levelID, trackID string, err error) {
	parts := strings.Split(arg, ":")
	switch len(parts) {
	case 2:
		return parts[0], parts[1], "", nil
	case 3:
		return parts[0], parts[1], parts[2], nil
	default:
		return "", "", "", fmt.Errorf("expected discipline:level[:track], got %q", arg)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data", "dataset directory of framework YAML files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(progressionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

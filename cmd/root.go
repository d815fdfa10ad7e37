package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/brand-d/tailorshop/sim"
)

var (
	// CLI flags for the simulation run
	turns        int    // number of turns to play (0 = to the horizon)
	seed         int64  // master seed for randomized noise tables
	randomize    bool   // draw fresh noise tables instead of the fixed ones
	noStepping   bool   // disable stepped-input validation
	logLevel     string // log verbosity level
	scenarioPath string // optional scripted scenario YAML
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tailorshop",
	Short: "Turn-based economic simulation of a small clothing factory",
}

// runCmd plays a scenario against the engine using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Tailorshop simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scenario := &ScenarioConfig{}
		if scenarioPath != "" {
			scenario, err = LoadScenarioConfig(scenarioPath)
			if err != nil {
				logrus.Fatalf("Unable to load scenario: %v", err)
			}
		}

		cfg := sim.DefaultEngineConfig()
		cfg.Seed = seed
		cfg.Randomize = randomize
		cfg.Stepping = !noStepping
		if scenario.InitialState != nil {
			cfg.InitialState = sim.NewSimulationState(scenario.InitialState.StateValues())
		}
		if scenario.InitialActions != nil {
			values := sim.DefaultActionValues()
			scenario.InitialActions.MergeInto(&values)
			cfg.InitialActions = sim.NewActionSet(values, cfg.Stepping)
		}

		engine := sim.NewEngine(cfg)
		metrics := sim.NewRunMetrics()

		logrus.Infof("Starting simulation: horizon=%d turns, randomize=%v, stepping=%v",
			engine.Noise().Horizon(), cfg.Randomize, cfg.Stepping)

		maxTurns := turns
		if maxTurns <= 0 {
			maxTurns = math.MaxInt
		}

		actions := engine.LastActions()
		for played := 0; played < maxTurns && !engine.IsFinished(); played++ {
			if override, ok := scenario.OverrideFor(engine.CurrentState().Turn); ok {
				override.Apply(actions)
			}
			if err := engine.DoNextStep(actions); err != nil {
				logrus.Fatalf("Simulation stopped: %v", err)
			}
			state := engine.CurrentState()
			metrics.Observe(state)
			logrus.Infof("[turn %02d] bank=%s value=%s sales=%g stock=%g",
				state.Turn, humanize.Commaf(state.BankAccount),
				humanize.Commaf(state.CompanyValue), state.ShirtSales, state.ShirtStock)
			actions = engine.LastActions()
		}

		metrics.Print()
		fmt.Println()
		fmt.Print(engine)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&turns, "turns", 0, "Number of turns to play (0 = play to the horizon)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for randomized noise tables")
	runCmd.Flags().BoolVar(&randomize, "randomize", false, "Draw fresh noise tables instead of the fixed defaults")
	runCmd.Flags().BoolVar(&noStepping, "no-stepping", false, "Disable stepped-input validation on action fields")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a scripted scenario YAML")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}

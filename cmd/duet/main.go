package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zen-systems/duet/pkg/config"
	"github.com/zen-systems/duet/pkg/engine"
	"github.com/zen-systems/duet/pkg/orchestrate"
	"github.com/zen-systems/duet/pkg/render"
	"github.com/zen-systems/duet/pkg/trace"
)

var (
	configFile string
	engineFlag string
	modelFlag  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "duet",
		Short: "Side-by-side comparison of direct and tool-routed generation",
		Long: `Duet runs a query through two response strategies against the same
	generation engine: a direct pass-through that always generates, and a
	routed strategy that substitutes a deterministic calculator for
	generation when the query looks arithmetic. Both paths record a trace
	of the steps they took for side-by-side inspection.`,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&engineFlag, "engine", "", "engine override (mock, openai, anthropic, google)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "model override")

	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(directCmd())
	rootCmd.AddCommand(routedCmd())
	rootCmd.AddCommand(examplesCmd())
	rootCmd.AddCommand(enginesCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func compareCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "compare [query]",
		Short: "Run both strategies and show their traces side by side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, eng, err := setup()
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Running both paths on %s\n", eng.Name())
			cmp, err := orch.Compare(cmd.Context(), args[0])
			if cmp != nil && (cmp.Direct != nil || cmp.Routed != nil) {
				if printErr := printComparison(cmp, jsonOut); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the comparison as JSON")
	return cmd
}

func directCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "direct [query]",
		Short: "Run only the direct path (always generates, no tools)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, _, err := setup()
			if err != nil {
				return err
			}

			res, err := orch.RunDirect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(res, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the result as JSON")
	return cmd
}

func routedCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "routed [query]",
		Short: "Run only the routed path (may invoke the calculator)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, _, err := setup()
			if err != nil {
				return err
			}

			res, err := orch.RunRouted(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(res, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the result as JSON")
	return cmd
}

func examplesCmd() *cobra.Command {
	var runIndex int

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List example prompts, or compare one with --run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if runIndex == 0 {
				for i, example := range cfg.Examples {
					fmt.Printf("%2d. %s\n", i+1, example)
				}
				return nil
			}

			if runIndex < 1 || runIndex > len(cfg.Examples) {
				return fmt.Errorf("example index %d out of range (1-%d)", runIndex, len(cfg.Examples))
			}

			orch, eng, err := setup()
			if err != nil {
				return err
			}

			query := cfg.Examples[runIndex-1]
			fmt.Fprintf(os.Stderr, "Running both paths on %s\n", eng.Name())
			cmp, err := orch.Compare(cmd.Context(), query)
			if cmp != nil && (cmp.Direct != nil || cmp.Routed != nil) {
				if printErr := printComparison(cmp, false); printErr != nil {
					return printErr
				}
			}
			return err
		},
	}

	cmd.Flags().IntVar(&runIndex, "run", 0, "compare the numbered example prompt")
	return cmd
}

func enginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List engines and whether credentials are configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ENGINE\tCONFIGURED\tMODELS")
			for _, name := range []string{"mock", "openai", "anthropic", "google"} {
				configured := "no"
				if cfg.HasEngine(name) {
					configured = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, configured, modelList(cfg, name))
			}
			return w.Flush()
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Config OK\n")
			fmt.Printf("  engine: %s", cfg.Engine.Name)
			if cfg.Engine.Model != "" {
				fmt.Printf(" (%s)", cfg.Engine.Model)
			}
			fmt.Println()
			fmt.Printf("  direct sampling: %d new tokens\n", cfg.Sampling.Direct.MaxNewTokens)
			fmt.Printf("  routed sampling: %d new tokens\n", cfg.Sampling.Routed.MaxNewTokens)
			fmt.Printf("  examples: %d\n", len(cfg.Examples))
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFromFile(configFile)
	}
	return config.Load()
}

// setup loads config, builds the engine (warming it up so an unavailable
// model fails here, at startup), and wires the orchestrator.
func setup() (*orchestrate.Orchestrator, engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return nil, nil, err
	}

	orch := orchestrate.New(eng,
		orchestrate.WithDirectSampling(cfg.Sampling.Direct),
		orchestrate.WithRoutedSampling(cfg.Sampling.Routed),
	)
	return orch, eng, nil
}

// buildEngine assembles the engine stack: lazy one-time construction, an
// optional single-slot queue, and an optional per-call timeout.
func buildEngine(cfg *config.Config) (engine.Engine, error) {
	name := cfg.Engine.Name
	if engineFlag != "" {
		name = engineFlag
	}
	model := cfg.Engine.Model
	if modelFlag != "" {
		model = modelFlag
	}

	lazy := engine.NewLazy(name, func() (engine.Engine, error) {
		switch name {
		case "mock":
			return engine.NewMockEngine(), nil
		case "openai":
			return engine.NewOpenAIEngine(cfg.OpenAIAPIKey, model)
		case "anthropic":
			return engine.NewAnthropicEngine(cfg.AnthropicAPIKey, model)
		case "google":
			return engine.NewGoogleEngine(cfg.GoogleAPIKey, model)
		default:
			return nil, fmt.Errorf("unknown engine %q", name)
		}
	})
	if err := lazy.Warmup(); err != nil {
		return nil, err
	}

	var eng engine.Engine = lazy
	if cfg.Engine.Serialize {
		eng = engine.NewSerialized(eng)
	}
	if cfg.Engine.TimeoutSeconds > 0 {
		eng = engine.WithTimeout(eng, time.Duration(cfg.Engine.TimeoutSeconds)*time.Second)
	}
	return eng, nil
}

func modelList(cfg *config.Config, name string) string {
	if !cfg.HasEngine(name) {
		return "-"
	}

	var eng engine.Engine
	var err error
	switch name {
	case "mock":
		eng = engine.NewMockEngine()
	case "openai":
		eng, err = engine.NewOpenAIEngine(cfg.OpenAIAPIKey, "")
	case "anthropic":
		eng, err = engine.NewAnthropicEngine(cfg.AnthropicAPIKey, "")
	case "google":
		eng, err = engine.NewGoogleEngine(cfg.GoogleAPIKey, "")
	}
	if err != nil || eng == nil {
		return "-"
	}

	models := eng.Models()
	out := ""
	for i, m := range models {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}

func printComparison(cmp *trace.Comparison, jsonOut bool) error {
	if jsonOut {
		data, err := json.MarshalIndent(cmp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(render.Comparison(cmp))
	return nil
}

func printResult(res *trace.Result, jsonOut bool) error {
	if jsonOut {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(render.Result(res))
	return nil
}

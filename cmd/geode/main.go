package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-geode/internal/loader"
	"github.com/napolitain/solver-geode/internal/models"
	"github.com/napolitain/solver-geode/internal/solver/blueprint"
)

type options struct {
	configFile   string
	part1Minutes int
	part1Limit   int
	part2Minutes int
	part2Limit   int
	workers      int
	noPrune      bool
	quiet        bool
	verbose      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "geode <blueprints>",
		Short: "Geode-cracking robot build order optimizer",
		Long: `Searches the best robot build order for every blueprint and prints
the quality sum (24 minutes, all blueprints) and the quality product
(32 minutes, first three blueprints).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolver(cmd, opts, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to YAML config file")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Max concurrent searches (0 = one per blueprint)")
	flags.BoolVar(&opts.noPrune, "no-prune", false, "Disable the optimistic-bound prune")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Minimal output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")

	rootCmd.Flags().IntVar(&opts.part1Minutes, "part1-minutes", 24, "Minutes for the quality sum")
	rootCmd.Flags().IntVar(&opts.part1Limit, "part1-limit", 0, "Blueprints for the quality sum (0 = all)")
	rootCmd.Flags().IntVar(&opts.part2Minutes, "part2-minutes", 32, "Minutes for the quality product")
	rootCmd.Flags().IntVar(&opts.part2Limit, "part2-limit", 3, "Blueprints for the quality product (0 = all)")

	rootCmd.AddCommand(newPlanCmd(opts))

	return rootCmd
}

// loadConfig merges the config file (if any) with explicitly set flags
func loadConfig(cmd *cobra.Command, opts *options) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := models.LoadConfig(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("part1-minutes") {
		cfg.Part1.Minutes = opts.part1Minutes
	}
	if flags.Changed("part1-limit") {
		cfg.Part1.Limit = opts.part1Limit
	}
	if flags.Changed("part2-minutes") {
		cfg.Part2.Minutes = opts.part2Minutes
	}
	if flags.Changed("part2-limit") {
		cfg.Part2.Limit = opts.part2Limit
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if opts.noPrune {
		prune := false
		cfg.Prune = &prune
	}

	if err := models.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(opts *options) *slog.Logger {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newEvaluator(cfg *models.Config, logger *slog.Logger) *blueprint.Evaluator {
	return blueprint.NewEvaluator(
		blueprint.WithWorkers(cfg.Workers),
		blueprint.WithCapOverrides(cfg.CapOverrides()),
		blueprint.WithBoundPrune(cfg.PruneEnabled()),
		blueprint.WithLogger(logger),
	)
}

func runSolver(cmd *cobra.Command, opts *options, path string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	blueprints, err := loader.LoadBlueprints(path)
	if err != nil {
		return fmt.Errorf("loading blueprints: %w", err)
	}

	infoColor := color.New(color.FgYellow)
	successColor := color.New(color.FgGreen, color.Bold)

	if !opts.quiet {
		printBanner(out, "Geode Build Order Optimizer")
		infoColor.Fprintf(out, "📦 Loaded %d blueprints from %s\n\n", len(blueprints), path)
	}

	evaluator := newEvaluator(cfg, newLogger(opts))

	start := time.Now()
	sum, sumResults, err := evaluator.QualitySum(ctx, blueprints, cfg.Part1.Minutes, cfg.Part1.Limit)
	if err != nil {
		return fmt.Errorf("part 1: %w", err)
	}
	if !opts.quiet {
		infoColor.Fprintf(out, "🔄 Part 1: %d minutes\n", cfg.Part1.Minutes)
		printResults(out, sumResults)
	}

	product, productResults, err := evaluator.QualityProduct(ctx, blueprints, cfg.Part2.Minutes, cfg.Part2.Limit)
	if err != nil {
		return fmt.Errorf("part 2: %w", err)
	}
	if !opts.quiet {
		infoColor.Fprintf(out, "\n🔄 Part 2: %d minutes\n", cfg.Part2.Minutes)
		printResults(out, productResults)
		fmt.Fprintln(out)
	}

	if opts.quiet {
		fmt.Fprintf(out, "part 1 %d\n", sum)
		fmt.Fprintf(out, "part 2 %d\n", product)
		return nil
	}

	successColor.Fprintf(out, "✓ Part 1 quality sum:     %d\n", sum)
	successColor.Fprintf(out, "✓ Part 2 quality product: %d\n", product)
	fmt.Fprintf(out, "\n⏱️  Total time: %s\n", time.Since(start).Round(time.Millisecond))

	return nil
}

func printBanner(w io.Writer, title string) {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("6")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 2)
	fmt.Fprintln(w, style.Render(title))
	fmt.Fprintln(w)
}

func printResults(w io.Writer, results []blueprint.Result) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Blueprint", "Geodes", "Quality", "Nodes", "Time"}),
	)

	for _, r := range results {
		row := []string{
			strconv.Itoa(r.BlueprintID),
			strconv.Itoa(r.Geodes),
			strconv.Itoa(r.Quality()),
			humanize.Comma(r.Stats.Nodes),
			r.Stats.Elapsed.Round(time.Microsecond).String(),
		}
		_ = table.Append(row)
	}

	_ = table.Render()
}

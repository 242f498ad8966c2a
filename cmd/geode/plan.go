package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-geode/internal/loader"
	"github.com/napolitain/solver-geode/internal/models"
	"github.com/napolitain/solver-geode/internal/solver/blueprint"
)

func newPlanCmd(opts *options) *cobra.Command {
	var (
		id      int
		minutes int
	)

	planCmd := &cobra.Command{
		Use:   "plan <blueprints>",
		Short: "Show the best build order for one blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, args[0], id, minutes)
		},
	}

	planCmd.Flags().IntVar(&id, "id", 1, "Blueprint id")
	planCmd.Flags().IntVarP(&minutes, "minutes", "m", 24, "Minutes to simulate")

	return planCmd
}

func runPlan(cmd *cobra.Command, opts *options, path string, id, minutes int) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if minutes < 0 {
		return fmt.Errorf("%w: minutes must be >= 0, got %d", models.ErrInvalidConfig, minutes)
	}

	blueprints, err := loader.LoadBlueprints(path)
	if err != nil {
		return fmt.Errorf("loading blueprints: %w", err)
	}

	var bp *models.Blueprint
	for _, b := range blueprints {
		if b.ID == id {
			bp = b
			break
		}
	}
	if bp == nil {
		return fmt.Errorf("blueprint %d not found in %s", id, path)
	}

	solver := blueprint.NewSolver(bp,
		blueprint.WithCaps(cfg.CapOverrides()),
		blueprint.WithPrune(cfg.PruneEnabled()),
	)
	solution, err := solver.Plan(ctx, minutes)
	if err != nil {
		return err
	}

	snapshots, _, err := blueprint.Replay(bp, minutes, solution.Commissions)
	if err != nil {
		return fmt.Errorf("replaying plan: %w", err)
	}

	if !opts.quiet {
		printBanner(out, fmt.Sprintf("Blueprint %d", bp.ID))
		printCosts(out, bp)
		fmt.Fprintln(out)
	}

	printBuildOrder(out, snapshots)

	color.New(color.FgGreen, color.Bold).Fprintf(out, "\n✓ %d geodes in %d minutes (%d robots commissioned, %s nodes)\n",
		solution.Geodes, solution.Minutes, len(solution.Commissions), humanize.Comma(solution.Stats.Nodes))

	return nil
}

func printCosts(w io.Writer, bp *models.Blueprint) {
	color.New(color.FgYellow).Fprintln(w, "📋 Robot costs:")
	for _, k := range models.AllResourceKinds() {
		fmt.Fprintf(w, "   • %s robot: %s\n", formatKind(k), bp.Cost(k))
	}
}

func printBuildOrder(w io.Writer, snapshots []blueprint.Snapshot) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Minute", "Robot", "Cost", "Stock", "Fleet"}),
	)

	for i, s := range snapshots {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Minute),
			formatKind(s.Kind),
			s.Cost.String(),
			formatVector(s.Held),
			formatVector(s.Production),
		}
		_ = table.Append(row)
	}

	_ = table.Render()
}

func formatKind(k models.ResourceKind) string {
	name := k.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

func formatVector(r models.Resources) string {
	return fmt.Sprintf("O:%2d C:%2d Ob:%2d G:%2d",
		r[models.Ore], r[models.Clay], r[models.Obsidian], r[models.Geode])
}

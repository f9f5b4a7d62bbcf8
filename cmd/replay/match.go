package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"riftreplay/internal/analysis"
	"riftreplay/internal/export"
	"riftreplay/internal/logger"
	"riftreplay/internal/refcache"
	"riftreplay/internal/server"
	"riftreplay/internal/timeline"
)

// openEngine loads one match through the configured analysis source
func openEngine(ctx context.Context, analysisID, matchID string) (*timeline.Engine, error) {
	src, closeSrc, err := analysis.Open(ctx, cfg.Analysis)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	md, err := analysis.GetMatch(ctx, src, analysisID, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match %s of %s: %w", matchID, analysisID, err)
	}
	return server.Build(*md, cfg.Policy, logger.With("engine"))
}

// reference returns the configured snapshot, or nil with --no-ref
func reference(ctx context.Context) timeline.Reference {
	if args.noRef {
		return nil
	}
	snap, err := refcache.LoadConfigured(ctx, cfg)
	if err != nil {
		logger.Warn("reference metadata degraded", "error", err)
	}
	return snap
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSampleCmd() *cobra.Command {
	var (
		t         float64
		combatant string
		path      bool
	)
	cmd := &cobra.Command{
		Use:   "sample <analysis> <match>",
		Short: "Print the reconstructed frame, or one combatant's state, at a time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, argv[0], argv[1])
			if err != nil {
				return err
			}
			if path {
				if combatant == "" {
					return fmt.Errorf("--path needs --combatant")
				}
				p, ok := eng.Path(combatant)
				if !ok {
					return fmt.Errorf("unknown combatant %q", combatant)
				}
				return printJSON(cmd.OutOrStdout(), p)
			}
			if combatant != "" {
				st, ok := eng.SampleCombatant(combatant, t)
				if !ok {
					return fmt.Errorf("unknown combatant %q", combatant)
				}
				return printJSON(cmd.OutOrStdout(), st)
			}
			return printJSON(cmd.OutOrStdout(), eng.Frame(t, reference(ctx)))
		},
	}
	cmd.Flags().Float64VarP(&t, "time", "t", 0, "query time in minutes")
	cmd.Flags().StringVar(&combatant, "combatant", "", "combatant id (PUUID)")
	cmd.Flags().BoolVar(&path, "path", false, "print the combatant's reconstructed waypoints instead")
	return cmd
}

func newGoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gold <analysis> <match>",
		Short: "Print the team gold differential series",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, argv []string) error {
			eng, err := openEngine(cmd.Context(), argv[0], argv[1])
			if err != nil {
				return err
			}
			g := eng.GoldDifferentialSeries()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "max blue lead %+.0f at %.1f min\n", g.MaxBlue.Diff, g.MaxBlue.T)
			fmt.Fprintf(out, "max red lead  %+.0f at %.1f min\n", g.MaxRed.Diff, g.MaxRed.T)
			for _, lc := range g.LeadChanges {
				fmt.Fprintf(out, "lead to %s at %.1f min\n", lc.Leader, lc.T)
			}
			fmt.Fprintf(out, "plot scale %.0f, %d samples\n", g.Scale, len(g.Samples))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		out  string
		step float64
		gz   bool
	)
	cmd := &cobra.Command{
		Use:   "export <analysis> <match>",
		Short: "Write every frame of a match as JSON lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctx := cmd.Context()
			eng, err := openEngine(ctx, argv[0], argv[1])
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join("exports", eng.ID()+".jsonl")
				if gz {
					out += ".gz"
				}
			}
			n, err := export.WriteFile(out, eng, export.Options{Step: step, Gzip: gz, Reference: reference(ctx)})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default exports/<match>.jsonl)")
	cmd.Flags().Float64Var(&step, "step", export.DefaultStep, "minutes between frames")
	cmd.Flags().BoolVar(&gz, "gzip", false, "gzip the output")
	return cmd
}

package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"riftreplay/internal/analysis"
	"riftreplay/internal/riot"
)

func newFetchCmd() *cobra.Command {
	var (
		count int
		dir   string
	)
	cmd := &cobra.Command{
		Use:   "fetch <riot-id>",
		Short: "Build an analysis file straight from the Riot match API",
		Long: "Fetches a player's recent matches and timelines from match-v5 and writes them\n" +
			"as an analysis document readable by the file source.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctx := cmd.Context()
			client, err := riot.NewClient(cfg.Riot.APIKey, cfg.Riot.Region)
			if err != nil {
				return err
			}
			if ok, err := client.ValidateKey(ctx); err != nil {
				return fmt.Errorf("failed to validate API key: %w", err)
			} else if !ok {
				return errors.New("RIOT_API_KEY is invalid or expired")
			}

			doc, err := client.FetchRecent(ctx, argv[0], count)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Analysis.Dir
			}
			path, err := analysis.NewFileSource(dir).Put(doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d matches to %s\n", len(doc.Analysis.DetailedMatches), path)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of recent matches")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default analysis.dir)")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "analyze <riot-id>",
		Short: "Ask the analysis backend to analyze a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			src, closeSrc, err := analysis.Open(ctx, cfg.Analysis)
			if err != nil {
				return err
			}
			defer closeSrc()

			an, ok := src.(analysis.Analyzer)
			if !ok {
				return fmt.Errorf("the %s source cannot run analyses", cfg.Analysis.Source)
			}
			if err := an.Analyze(ctx, argv[0], count); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "analysis started: %s\n", analysis.Filename(argv[0]))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of matches to analyze")
	return cmd
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "List analyses whose Riot ID matches the query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ctx := cmd.Context()
			src, closeSrc, err := analysis.Open(ctx, cfg.Analysis)
			if err != nil {
				return err
			}
			defer closeSrc()

			query := ""
			if len(argv) == 1 {
				query = argv[0]
			}
			hits, err := analysis.Search(ctx, src, query)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RIOT ID\tMATCHES\tROLE\tCREATED")
			for _, s := range hits {
				created := "-"
				if s.Created > 0 {
					created = time.Unix(int64(s.Created), 0).Format("2006-01-02 15:04")
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.RiotID, s.MatchCount, s.PrimaryRole, created)
			}
			return tw.Flush()
		},
	}
}

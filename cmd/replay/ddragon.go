package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riftreplay/internal/refcache"
)

func newDDragonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ddragon",
		Short: "Manage cached reference metadata",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Fetch the configured (or latest) version into the snapshot cache",
		RunE: func(cmd *cobra.Command, argv []string) error {
			snap, err := refcache.LoadConfigured(cmd.Context(), cfg)
			if err != nil && snap.Empty() {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %d items, %d champions, %d runes, %d spells\n",
				snap.Version, snap.Language, len(snap.Items), len(snap.Champions), len(snap.Runes), len(snap.Spells))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "versions",
		Short: "List cached versions, newest first",
		RunE: func(cmd *cobra.Command, argv []string) error {
			store, err := refcache.Open(cmd.Context(), refcache.Config{
				Path:       cfg.Cache.Path,
				TursoURL:   cfg.Cache.TursoURL,
				TursoToken: cfg.Cache.TursoToken,
			})
			if err != nil {
				return err
			}
			defer store.Close()

			versions, err := store.Versions(cmd.Context(), cfg.DDragon.Language)
			if err != nil {
				return err
			}
			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	})
	return cmd
}

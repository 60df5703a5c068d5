package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/EldenRingDatabase/erdb-sub000/internal/data"
	"github.com/EldenRingDatabase/erdb-sub000/internal/db"
	"github.com/EldenRingDatabase/erdb-sub000/internal/effect"
)

// RowEffects is the output record of one synthesized row.
type RowEffects struct {
	Row     int             `json:"row"`
	Effects []effect.Effect `json:"effects"`
}

func newEffectsCmd(a *app) *cobra.Command {
	var (
		path    string
		raw     bool
		persist bool
	)

	cmd := &cobra.Command{
		Use:   "effects [row...]",
		Short: "Synthesize effects from parameter rows",
		Long: `Synthesizes effects for the given row indices, or for every row when
none are given. Effects are aggregated unless --raw is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.EffectsPath
			}
			table, err := data.LoadEffectRowsFile(path)
			if err != nil {
				return err
			}
			syn, err := effect.NewSynthesizer(table.Registry, table.Rows)
			if err != nil {
				return err
			}

			indices, err := parseIndices(args)
			if err != nil {
				return err
			}
			if len(indices) == 0 {
				indices = syn.Indices()
			}

			out := make([]RowEffects, 0, len(indices))
			for _, idx := range indices {
				effects, err := syn.SynthesizeIndex(idx)
				if err != nil {
					return fmt.Errorf("row %d: %w", idx, err)
				}
				if !raw {
					effects = effect.Aggregate(effects)
				}
				out = append(out, RowEffects{Row: idx, Effects: effects})
			}

			if persist || a.cfg.Persist {
				database, err := a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer database.Close()

				repo := db.NewEffectRepository(database.Pool())
				for _, r := range out {
					if err := repo.SaveRow(cmd.Context(), r.Row, r.Effects); err != nil {
						return err
					}
				}
				slog.Info("effects persisted", "rows", len(out))
			}

			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&path, "effects", "", "Effect rows file (default from config)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Skip aggregation")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store results in the database")
	return cmd
}

func parseIndices(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q: %w", s, err)
		}
		out = append(out, n)
	}
	return out, nil
}

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/EldenRingDatabase/erdb-sub000/internal/armament"
	"github.com/EldenRingDatabase/erdb-sub000/internal/data"
	"github.com/EldenRingDatabase/erdb-sub000/internal/db"
)

// attributeFlags binds one flag per scaling attribute.
type attributeFlags struct {
	str, dex, intl, fai, arc int
}

func (f *attributeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.str, "str", 10, "Strength")
	cmd.Flags().IntVar(&f.dex, "dex", 10, "Dexterity")
	cmd.Flags().IntVar(&f.intl, "int", 10, "Intelligence")
	cmd.Flags().IntVar(&f.fai, "fai", 10, "Faith")
	cmd.Flags().IntVar(&f.arc, "arc", 10, "Arcane")
}

func (f *attributeFlags) values() armament.AttributeValues {
	return armament.AttributeValues{
		armament.Strength:     f.str,
		armament.Dexterity:    f.dex,
		armament.Intelligence: f.intl,
		armament.Faith:        f.fai,
		armament.Arcane:       f.arc,
	}
}

func (a *app) loadTables(path string) (*armament.Tables, error) {
	if path == "" {
		path = a.cfg.TablesPath
	}
	return data.LoadTablesFile(path, a.cfg.MaxLevel)
}

func newAttackCmd(a *app) *cobra.Command {
	var (
		path     string
		affinity string
		level    int
		persist  bool
		attrs    attributeFlags
	)

	cmd := &cobra.Command{
		Use:   "attack NAME",
		Short: "Evaluate attack power of one armament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.loadTables(path)
			if err != nil {
				return err
			}

			report, err := armament.Evaluate(tables, armament.Job{
				Name:       args[0],
				Affinity:   affinity,
				Level:      level,
				Attributes: attrs.values(),
			})
			if err != nil {
				return err
			}

			if persist || a.cfg.Persist {
				database, err := a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer database.Close()

				if err := db.NewAttackRepository(database.Pool()).SaveReports(cmd.Context(), []armament.Report{report}); err != nil {
					return err
				}
				slog.Info("report persisted", "armament", args[0], "affinity", affinity, "level", level)
			}

			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&path, "tables", "", "Armament tables file (default from config)")
	cmd.Flags().StringVar(&affinity, "affinity", "Standard", "Affinity")
	cmd.Flags().IntVar(&level, "level", 0, "Reinforcement level")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store results in the database")
	attrs.register(cmd)
	return cmd
}

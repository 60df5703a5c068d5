package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/EldenRingDatabase/erdb-sub000/internal/db"
)

// openStore connects to the result store and applies pending migrations.
func (a *app) openStore(ctx context.Context) (*db.DB, error) {
	dsn := a.cfg.Database.DSN()

	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected", "host", a.cfg.Database.Host, "dbname", a.cfg.Database.DBName)

	if err := db.RunMigrations(ctx, dsn); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")
	return database, nil
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply result store migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			database.Close()
			return nil
		},
	}
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/EldenRingDatabase/erdb-sub000/internal/armament"
	"github.com/EldenRingDatabase/erdb-sub000/internal/db"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		path     string
		jobsPath string
		all      bool
		workers  int
		persist  bool
		attrs    attributeFlags
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate many armament variants in parallel",
		Long: `Evaluates the jobs listed in a YAML file (--jobs), or every armament,
affinity and reinforcement level with one attribute vector (--all).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := a.loadTables(path)
			if err != nil {
				return err
			}

			var jobs []armament.Job
			switch {
			case all && jobsPath != "":
				return errors.New("--all and --jobs are mutually exclusive")
			case all:
				jobs = armament.JobsForAll(tables, attrs.values())
			case jobsPath != "":
				jobs, err = loadJobs(jobsPath)
				if err != nil {
					return err
				}
			default:
				return errors.New("either --all or --jobs is required")
			}

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}

			start := time.Now()
			reports, err := armament.RunBatch(cmd.Context(), tables, jobs, workers)
			if err != nil {
				return err
			}
			slog.Info("batch evaluated", "jobs", len(jobs), "workers", workers, "elapsed", time.Since(start))

			if persist || a.cfg.Persist {
				database, err := a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer database.Close()

				if err := db.NewAttackRepository(database.Pool()).SaveReports(cmd.Context(), reports); err != nil {
					return err
				}
				slog.Info("reports persisted", "reports", len(reports))
			}

			return writeJSON(cmd.OutOrStdout(), reports)
		},
	}

	cmd.Flags().StringVar(&path, "tables", "", "Armament tables file (default from config)")
	cmd.Flags().StringVar(&jobsPath, "jobs", "", "YAML file listing jobs")
	cmd.Flags().BoolVar(&all, "all", false, "Evaluate every armament variant")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers (default from config, 0 means GOMAXPROCS)")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store results in the database")
	attrs.register(cmd)
	return cmd
}

type jobsFile struct {
	Jobs []armament.Job `yaml:"jobs"`
}

func loadJobs(path string) ([]armament.Job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs %s: %w", path, err)
	}
	var file jobsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing jobs %s: %w", path, err)
	}
	return file.Jobs, nil
}

package armament

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job selects one armament variant and attribute vector to evaluate.
type Job struct {
	Name       string          `json:"name" yaml:"name"`
	Affinity   string          `json:"affinity" yaml:"affinity"`
	Level      int             `json:"level" yaml:"level"`
	Attributes AttributeValues `json:"attributes" yaml:"attributes"`
}

// Report is the full evaluation of a Job.
type Report struct {
	Job           Job                   `json:"job"`
	AttackPower   map[DamageType]Result `json:"attack_power"`
	StatusEffects map[StatusType]Result `json:"status_effects"`
	Guard         Guard                 `json:"guard"`
	Resistance    map[StatusType]int    `json:"resistance"`
}

// Evaluate runs every calculation for job on a fresh Calculator.
func Evaluate(tables *Tables, job Job) (Report, error) {
	calc, err := NewCalculator(tables, job.Name, job.Affinity, job.Level)
	if err != nil {
		return Report{}, err
	}

	ap, err := calc.AttackPower(job.Attributes)
	if err != nil {
		return Report{}, fmt.Errorf("attack power of %s %s +%d: %w", job.Affinity, job.Name, job.Level, err)
	}
	se, err := calc.StatusEffects(job.Attributes)
	if err != nil {
		return Report{}, fmt.Errorf("status effects of %s %s +%d: %w", job.Affinity, job.Name, job.Level, err)
	}

	return Report{
		Job:           job,
		AttackPower:   ap,
		StatusEffects: Active(se),
		Guard:         calc.Guard(),
		Resistance:    calc.Resistance(),
	}, nil
}

// RunBatch evaluates jobs in parallel, one Calculator per job, and returns
// reports in job order. workers <= 0 uses GOMAXPROCS. The first failing job
// cancels the remaining ones.
func RunBatch(ctx context.Context, tables *Tables, jobs []Job, workers int) ([]Report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reports := make([]Report, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Evaluate(tables, job)
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("batch evaluated", "jobs", len(jobs), "workers", workers)
	return reports, nil
}

// JobsForAll builds one job per armament, affinity and level listed in
// tables, using the same attribute vector.
func JobsForAll(tables *Tables, attrs AttributeValues) []Job {
	var jobs []Job
	for _, name := range sortedKeys(tables.Armaments) {
		arm := tables.Armaments[name]
		for _, aff := range sortedKeys(arm.Affinities) {
			levels := len(tables.Reinforcements[arm.Affinities[aff].ReinforcementID])
			for lvl := range levels {
				jobs = append(jobs, Job{Name: name, Affinity: aff, Level: lvl, Attributes: attrs})
			}
		}
	}
	return jobs
}

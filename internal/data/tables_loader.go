package data

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/EldenRingDatabase/erdb-sub000/internal/armament"
	"github.com/EldenRingDatabase/erdb-sub000/internal/correction"
)

// tablesFile is the on-disk layout of armament calculation inputs.
type tablesFile struct {
	Armaments         []armament.Armament   `yaml:"armaments"`
	Reinforcements    []reinforcementDef    `yaml:"reinforcements"`
	CorrectionAttacks []correctionAttackDef `yaml:"correction_attacks"`
	CorrectionGraphs  []correctionGraphDef  `yaml:"correction_graphs"`
}

type reinforcementDef struct {
	ID     int                           `yaml:"id"`
	Levels []armament.ReinforcementLevel `yaml:"levels"`
}

type correctionAttackDef struct {
	ID                        int `yaml:"id"`
	armament.CorrectionAttack `yaml:",inline"`
}

type correctionGraphDef struct {
	ID     int                `yaml:"id"`
	Ranges []correction.Range `yaml:"ranges"`
}

// LoadTablesFile reads armament tables from a YAML file.
// Graphs are expanded to dense tables covering [0, maxLevel].
func LoadTablesFile(path string, maxLevel int) (*armament.Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tables %s: %w", path, err)
	}
	defer f.Close()

	tables, err := LoadTables(f, maxLevel)
	if err != nil {
		return nil, fmt.Errorf("loading tables %s: %w", path, err)
	}
	return tables, nil
}

// LoadTables decodes armament tables from YAML.
func LoadTables(r io.Reader, maxLevel int) (*armament.Tables, error) {
	var file tablesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding tables: %w", err)
	}

	tables := &armament.Tables{
		Armaments:         make(map[string]armament.Armament, len(file.Armaments)),
		Reinforcements:    make(map[int][]armament.ReinforcementLevel, len(file.Reinforcements)),
		CorrectionAttacks: make(map[int]armament.CorrectionAttack, len(file.CorrectionAttacks)),
		CorrectionGraphs:  make(map[int]correction.Table, len(file.CorrectionGraphs)),
	}

	for _, a := range file.Armaments {
		if a.Name == "" {
			return nil, errors.New("armament without name")
		}
		if _, dup := tables.Armaments[a.Name]; dup {
			return nil, fmt.Errorf("duplicate armament %q", a.Name)
		}
		tables.Armaments[a.Name] = a
	}

	for _, rd := range file.Reinforcements {
		if _, dup := tables.Reinforcements[rd.ID]; dup {
			return nil, fmt.Errorf("duplicate reinforcement table %d", rd.ID)
		}
		tables.Reinforcements[rd.ID] = rd.Levels
	}

	for _, cd := range file.CorrectionAttacks {
		if _, dup := tables.CorrectionAttacks[cd.ID]; dup {
			return nil, fmt.Errorf("duplicate correction attack %d", cd.ID)
		}
		tables.CorrectionAttacks[cd.ID] = cd.CorrectionAttack
	}

	for _, gd := range file.CorrectionGraphs {
		if _, dup := tables.CorrectionGraphs[gd.ID]; dup {
			return nil, fmt.Errorf("duplicate correction graph %d", gd.ID)
		}
		g, err := correction.NewGraph(gd.Ranges)
		if err != nil {
			return nil, fmt.Errorf("correction graph %d: %w", gd.ID, err)
		}
		tables.CorrectionGraphs[gd.ID] = g.Expand(maxLevel)
	}

	slog.Info("loaded armament tables",
		"armaments", len(tables.Armaments),
		"reinforcements", len(tables.Reinforcements),
		"correction_attacks", len(tables.CorrectionAttacks),
		"correction_graphs", len(tables.CorrectionGraphs),
	)
	return tables, nil
}

// Package manifest records what a pipeline run read, derived and wrote.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/dataset"
	"github.com/aadit1011/Insurance-Price-Prediction-Model/internal/utils"
)

// FileName is the manifest's name inside the output directory.
const FileName = "run_manifest.json"

// Column is the schema entry for one column of the final table.
type Column struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	NonNull int    `json:"non_null"`
}

// Manifest is the on-disk record of one run.
type Manifest struct {
	ID                string                    `json:"id"`
	Input             string                    `json:"input"`
	StartedAt         time.Time                 `json:"started_at"`
	FinishedAt        time.Time                 `json:"finished_at"`
	RowsLoaded        int                       `json:"rows_loaded"`
	RowsFinal         int                       `json:"rows_final"`
	DuplicatesRemoved int                       `json:"duplicates_removed"`
	Columns           []Column                  `json:"columns"`
	Encodings         map[string]map[string]int `json:"encodings"`
	Charts            []string                  `json:"charts"`
	Report            string                    `json:"report,omitempty"`

	// Not serialized: directory the manifest is saved in.
	dir string
}

// New starts a manifest for a run reading input and writing into dir.
func New(input, dir string) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Input:     input,
		StartedAt: time.Now(),
		Encodings: make(map[string]map[string]int),
		dir:       dir,
	}
}

// Load reads run_manifest.json from dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.dir = dir
	return &m, nil
}

// Path returns where Save writes the manifest.
func (m *Manifest) Path() string { return filepath.Join(m.dir, FileName) }

// RecordTable captures the schema and row count of the final table.
func (m *Manifest) RecordTable(t *dataset.Table) {
	m.RowsFinal = t.Len()
	m.Columns = m.Columns[:0]
	for _, c := range t.Inspect().Columns {
		m.Columns = append(m.Columns, Column{Name: c.Name, Kind: c.Kind.String(), NonNull: c.NonNull})
	}
}

// RecordEncoding stores the category -> code mapping of one column.
func (m *Manifest) RecordEncoding(e dataset.Encoding) {
	if m.Encodings == nil {
		m.Encodings = make(map[string]map[string]int)
	}
	m.Encodings[e.Column] = e.Mapping()
}

// Save stamps FinishedAt and writes the manifest atomically.
func (m *Manifest) Save() error {
	if m.dir == "" {
		m.dir = "."
	}
	m.FinishedAt = time.Now()
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(m.Path(), data)
}

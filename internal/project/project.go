// Package project persists calculator state: saved projects, application
// configuration, and user wafer-standard presets.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dougthor42/gdw/internal/engine"
	"github.com/dougthor42/gdw/internal/model"
)

// WaferParams are the raw wafer inputs kept in a project file. They are
// validated when the wafer is rebuilt, not at load time, so an edited file
// surfaces its errors on use.
type WaferParams struct {
	Diameter      float64 `json:"diameter"`
	EdgeExclusion float64 `json:"edge_exclusion"`
	FlatExclusion float64 `json:"flat_exclusion"`
	FlatSize      float64 `json:"flat_size"`
}

// Build constructs the validated wafer from the stored parameters.
func (p WaferParams) Build() (model.Wafer, error) {
	return model.NewWafer(p.Diameter, p.EdgeExclusion, p.FlatExclusion, p.FlatSize)
}

// Project ties a computation's inputs and result together for save/load.
type Project struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Wafer    WaferParams       `json:"wafer"`
	Die      model.DieSize     `json:"die"`
	Settings engine.Settings   `json:"settings"`
	Result   *model.GridResult `json:"result,omitempty"`
}

// NewProject returns an empty project with a fresh ID and 150 mm defaults.
func NewProject(name string) Project {
	return Project{
		ID:   uuid.New().String()[:8],
		Name: name,
		Wafer: WaferParams{
			Diameter:      150,
			EdgeExclusion: 5,
			FlatExclusion: 5,
			FlatSize:      57.5,
		},
		Settings: engine.DefaultSettings(),
	}
}

// Save writes the project to the given path as JSON, creating parent
// directories as needed.
func Save(path string, p Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()[:8]
	}
	return p, nil
}

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/dougthor42/gdw/internal/semi"
)

// WaferStandard is one wafer-size preset: the flat length and default
// exclusions used when a caller supplies only the diameter.
type WaferStandard struct {
	Diameter      float64 `toml:"diameter"`
	FlatLength    float64 `toml:"flat_length"`
	EdgeExclusion float64 `toml:"edge_exclusion"`
	FlatExclusion float64 `toml:"flat_exclusion"`
}

// standardsFile is the on-disk TOML shape: repeated [[wafer]] tables.
type standardsFile struct {
	Wafer []WaferStandard `toml:"wafer"`
}

// DefaultStandardsPath returns the path of the user preset file.
func DefaultStandardsPath() string {
	return filepath.Join(DefaultConfigDir(), "wafers.toml")
}

// BuiltinStandards returns the SEMI M1-0302 presets with 5 mm exclusions,
// in ascending diameter order.
func BuiltinStandards() []WaferStandard {
	standards := make([]WaferStandard, 0, len(semi.FlatLengths))
	for _, dia := range semi.Diameters() {
		length, _ := semi.FlatLength(dia)
		standards = append(standards, WaferStandard{
			Diameter:      dia,
			FlatLength:    length,
			EdgeExclusion: 5,
			FlatExclusion: 5,
		})
	}
	return standards
}

// LoadStandards returns the effective wafer-standard table: the built-in
// SEMI presets overlaid with any user entries from the given TOML file.
// A user entry with the same diameter replaces the built-in one; new
// diameters are appended. A missing file yields just the built-ins.
func LoadStandards(path string) ([]WaferStandard, error) {
	standards := BuiltinStandards()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return standards, nil
		}
		return nil, err
	}

	var file standardsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse wafer standards %s: %w", path, err)
	}

	byDia := make(map[float64]int, len(standards))
	for i, s := range standards {
		byDia[s.Diameter] = i
	}
	for _, s := range file.Wafer {
		if s.Diameter <= 0 {
			return nil, fmt.Errorf("wafer standard in %s has non-positive diameter %g", path, s.Diameter)
		}
		if i, ok := byDia[s.Diameter]; ok {
			standards[i] = s
			continue
		}
		byDia[s.Diameter] = len(standards)
		standards = append(standards, s)
	}

	sort.Slice(standards, func(i, j int) bool {
		return standards[i].Diameter < standards[j].Diameter
	})
	return standards, nil
}

// FindStandard returns the preset for a diameter, if one exists.
func FindStandard(standards []WaferStandard, diameter float64) (WaferStandard, bool) {
	for _, s := range standards {
		if s.Diameter == diameter {
			return s, true
		}
	}
	return WaferStandard{}, false
}

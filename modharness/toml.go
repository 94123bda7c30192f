package modharness

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LoadPreset reads and parses a preset TOML file at path, grounded on
// julianknutsen-gascity's config.Load/Parse split (file I/O separated
// from decoding so callers can also parse in-memory bytes via
// ParsePreset).
func LoadPreset(path string) (*Preset, error) {
	var p Preset
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("modharness: loading preset %q: %w", path, err)
	}

	return &p, nil
}

// ParsePreset decodes TOML data already in memory into a Preset.
func ParsePreset(data []byte) (*Preset, error) {
	var p Preset
	if _, err := toml.Decode(string(data), &p); err != nil {
		return nil, fmt.Errorf("modharness: parsing preset: %w", err)
	}

	return &p, nil
}

// ModulePresets converts the preset's at-rest TOML module list to the
// in-memory ModulePreset slice ResolveOrder consumes.
func (p Preset) ModulePresets() []ModulePreset {
	out := make([]ModulePreset, len(p.Modules))
	for i, m := range p.Modules {
		out[i] = m.ToModulePreset()
	}

	return out
}

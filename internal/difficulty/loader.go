package difficulty

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/profiles.yaml
var defaultProfilesYAML []byte

// profileFile is the YAML layout of a profiles file.
type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// Parse decodes a profiles YAML document and overlays it on the built-in
// profiles. Profiles in the document replace built-ins with the same ID;
// new IDs are appended.
func Parse(data []byte) (*Table, error) {
	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("difficulty: parse profiles: %w", err)
	}
	profiles := defaultProfiles()
	for _, p := range f.Profiles {
		if p.ID == "" {
			continue
		}
		profiles = append(profiles, p)
	}
	return NewTable(profiles...), nil
}

// Load loads the difficulty table.
// Search order: customPath -> ~/.twitchy/profiles.yaml -> ./configs/profiles.yaml -> embedded default
func Load(customPath string) (*Table, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("difficulty: read profiles %s: %w", customPath, err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("difficulty: %s: %w", customPath, err)
		}
		return t, nil
	}

	// Try user config directory
	if userPath := userProfilesPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if t, err := Parse(data); err == nil {
				return t, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "profiles.yaml")); err == nil {
		if t, err := Parse(data); err == nil {
			return t, nil
		}
	}

	// Use embedded default YAML
	t, err := Parse(defaultProfilesYAML)
	if err != nil {
		return DefaultTable(), nil // Fallback to hardcoded if embed fails
	}
	return t, nil
}

// DefaultYAML returns the embedded profiles document, for `twitchy difficulties --dump`.
func DefaultYAML() []byte {
	return defaultProfilesYAML
}

// userProfilesPath returns the user profiles file, or empty if home is unavailable.
func userProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".twitchy", "profiles.yaml")
}

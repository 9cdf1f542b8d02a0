package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// configFile is the on-disk shape of the profile store.
type configFile struct {
	Profiles map[string]*Profile `json:"profiles"`
}

func configPath() string {
	return filepath.Join(Dir(), "config.json")
}

// LoadProfiles reads all profiles from the config file. A missing file is
// an empty store, not an error.
func LoadProfiles() (map[string]*Profile, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Profile{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	if file.Profiles == nil {
		file.Profiles = map[string]*Profile{}
	}
	return file.Profiles, nil
}

// SaveProfiles writes the full profile map back to the config file.
func SaveProfiles(profiles map[string]*Profile) error {
	if _, err := EnsureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(configFile{Profiles: profiles}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(configPath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AddProfile validates and inserts or replaces a profile.
func AddProfile(profile *Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	profiles, err := LoadProfiles()
	if err != nil {
		return err
	}
	profiles[profile.Name] = profile
	return SaveProfiles(profiles)
}

// RemoveProfile deletes a profile by name. Returns false if it did not exist.
func RemoveProfile(name string) (bool, error) {
	profiles, err := LoadProfiles()
	if err != nil {
		return false, err
	}
	if _, ok := profiles[name]; !ok {
		return false, nil
	}
	delete(profiles, name)
	return true, SaveProfiles(profiles)
}

// GetProfile resolves a profile by name. With an empty name, a store
// holding exactly one profile resolves to it; several profiles make the
// empty name ambiguous and the error lists the candidates.
func GetProfile(name string) (*Profile, error) {
	profiles, err := LoadProfiles()
	if err != nil {
		return nil, err
	}

	if name != "" {
		profile, ok := profiles[name]
		if !ok {
			return nil, fmt.Errorf("profile %q not found", name)
		}
		return profile, nil
	}

	switch len(profiles) {
	case 0:
		return nil, fmt.Errorf("no profiles configured")
	case 1:
		for _, profile := range profiles {
			return profile, nil
		}
	}

	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("multiple profiles found: %s; specify --profile", strings.Join(names, ", "))
}

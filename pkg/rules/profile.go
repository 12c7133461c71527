package rules

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Profile holds independent settings for each conversion direction.
type Profile struct {
	SheetToFlat Settings `json:"sheet_to_flat" yaml:"sheet_to_flat"`
	FlatToSheet Settings `json:"flat_to_sheet" yaml:"flat_to_sheet"`
}

// DefaultProfile returns a profile with every rule enabled in both directions.
func DefaultProfile() Profile {
	return Profile{SheetToFlat: Default(), FlatToSheet: Default()}
}

// overrides mirrors a profile document where every key is optional.
type overrides map[string]*bool

type profileDoc struct {
	SheetToFlat overrides `yaml:"sheet_to_flat"`
	FlatToSheet overrides `yaml:"flat_to_sheet"`
}

// ParseProfile decodes a YAML profile. Keys present in the document override
// the defaults; absent keys stay enabled.
func ParseProfile(data []byte) (Profile, error) {
	var doc profileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	p := DefaultProfile()
	var err error
	if p.SheetToFlat, err = doc.SheetToFlat.apply(p.SheetToFlat); err != nil {
		return Profile{}, fmt.Errorf("%w: sheet_to_flat: %w", ErrInvalidProfile, err)
	}
	if p.FlatToSheet, err = doc.FlatToSheet.apply(p.FlatToSheet); err != nil {
		return Profile{}, fmt.Errorf("%w: flat_to_sheet: %w", ErrInvalidProfile, err)
	}

	return p, nil
}

// LoadProfile reads and parses a YAML profile from fsys.
func LoadProfile(fsys fs.FS, name string) (Profile, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Profile{}, fmt.Errorf("rules: read profile %s: %w", name, err)
	}
	return ParseProfile(data)
}

func (o overrides) apply(s Settings) (Settings, error) {
	var err error
	for name, v := range o {
		if v == nil {
			continue
		}
		if s, err = s.With(name, *v); err != nil {
			return s, err
		}
	}
	return s, nil
}

package taxonomy

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// overrideFile is the YAML shape accepted by LoadOverrides. Entries with a
// known name extend the existing vocabulary; unknown names become new
// entries.
type overrideFile struct {
	Sectors     []SectorEntry    `yaml:"sectors"`
	Geographies []GeographyEntry `yaml:"geographies"`
}

// LoadOverrides merges a YAML override file into the tables. Must be called
// before the tables are handed to any classifier.
func (t *Tables) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return t.mergeYAML(data)
}

func (t *Tables) mergeYAML(data []byte) error {
	var ov overrideFile
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return err
	}

	for _, s := range ov.Sectors {
		if existing := t.findSector(s.Name); existing != nil {
			existing.Keywords = appendUnique(existing.Keywords, s.Keywords)
			for sub, kws := range s.Subsectors {
				if existing.Subsectors == nil {
					existing.Subsectors = make(map[string][]string)
				}
				existing.Subsectors[sub] = appendUnique(existing.Subsectors[sub], kws)
			}
			continue
		}
		t.Sectors = append(t.Sectors, s)
	}

	for _, g := range ov.Geographies {
		if existing := t.findGeography(g.Name); existing != nil {
			existing.Keywords = appendUnique(existing.Keywords, g.Keywords)
			existing.Cities = appendUnique(existing.Cities, g.Cities)
			continue
		}
		t.Geographies = append(t.Geographies, g)
	}

	return nil
}

func (t *Tables) findSector(name string) *SectorEntry {
	for i := range t.Sectors {
		if strings.EqualFold(t.Sectors[i].Name, name) {
			return &t.Sectors[i]
		}
	}
	return nil
}

func (t *Tables) findGeography(name string) *GeographyEntry {
	for i := range t.Geographies {
		if strings.EqualFold(t.Geographies[i].Name, name) {
			return &t.Geographies[i]
		}
	}
	return nil
}

func appendUnique(dst []string, add []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[strings.ToLower(s)] = true
	}
	for _, s := range add {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		dst = append(dst, s)
	}
	return dst
}

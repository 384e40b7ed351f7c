package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SectorMap is the monster layout of one sector-mode map.
type SectorMap struct {
	MapID    int   `yaml:"map_id"`
	Monsters []int `yaml:"monsters"`
}

// SectorTable holds the sector-mode monster layouts keyed by map id.
type SectorTable struct {
	maps map[int][]int
}

// LoadSectorTable reads the sector layouts from a YAML file.
func LoadSectorTable(path string) (*SectorTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sector table %s: %w", path, err)
	}
	var entries []SectorMap
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse sector table %s: %w", path, err)
	}
	t := &SectorTable{maps: make(map[int][]int, len(entries))}
	for _, e := range entries {
		t.maps[e.MapID] = e.Monsters
	}
	return t, nil
}

// Monsters returns the monster layout for a map, nil when unknown.
func (t *SectorTable) Monsters(mapID int) []int {
	return t.maps[mapID]
}

// Count returns the number of loaded sector maps.
func (t *SectorTable) Count() int {
	return len(t.maps)
}

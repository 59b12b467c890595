package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/utakatalp/league-standings/internal/league"
)

// SeasonExport is a season dumped to JSON, usable without a database.
type SeasonExport struct {
	Season league.Season `json:"season"`
	Teams  []league.Team `json:"teams"`
	Games  []league.Game `json:"games"`
}

// LoadSeasonFile reads a SeasonExport. Games that omit season_id are taken
// to belong to the exported season.
func LoadSeasonFile(path string) (*SeasonExport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading season file: %w", err)
	}
	var export SeasonExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("decoding season file %s: %w", path, err)
	}
	for i := range export.Games {
		if export.Games[i].SeasonID == 0 {
			export.Games[i].SeasonID = export.Season.ID
		}
	}
	return &export, nil
}

// WriteSeasonFile dumps a season so it can be recomputed offline.
func WriteSeasonFile(path string, export *SeasonExport) error {
	raw, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding season file: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing season file: %w", err)
	}
	return nil
}

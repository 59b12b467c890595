package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-standings/internal/league"
)

func TestLoadSeasonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "season.json")
	raw := `{
  "season": {"id": 7, "title": "Summer 2024"},
  "teams": [{"id": 1, "name": "Ducks"}, {"id": 2, "name": "Owls"}],
  "games": [
    {"id": 1, "home_id": 1, "away_id": 2, "home_score": 10, "away_score": 3, "completed": true},
    {"id": 2, "season_id": 7, "home_id": 2, "away_id": 1}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	export, err := LoadSeasonFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Summer 2024", export.Season.Title)
	require.Len(t, export.Games, 2)
	assert.Equal(t, 7, export.Games[0].SeasonID)
	assert.True(t, export.Games[0].Completed)
	assert.False(t, export.Games[1].Completed)

	s, err := league.ComputeStandings(export.Teams, export.Games, export.Season.ID, league.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "Ducks", s.Rows[0].Team.Name)
}

func TestSeasonFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	export := &SeasonExport{
		Season: league.Season{ID: 3, Title: "Fall", Starts: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
		Teams:  []league.Team{{ID: 1, Name: "Ducks"}, {ID: 2, Name: "Owls"}},
		Games: []league.Game{{
			ID: 9, SeasonID: 3, HomeID: 2, AwayID: 1, HomeScore: 4, AwayScore: 4, Completed: true,
			StartsAt: time.Date(2024, 9, 3, 18, 30, 0, 0, time.UTC),
		}},
	}
	require.NoError(t, WriteSeasonFile(path, export))

	got, err := LoadSeasonFile(path)
	require.NoError(t, err)
	assert.Equal(t, export, got)
}

func TestLoadSeasonFile_Errors(t *testing.T) {
	_, err := LoadSeasonFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadSeasonFile(bad)
	assert.ErrorContains(t, err, "decoding season file")
}

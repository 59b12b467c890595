package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-standings/internal/league"
)

func TestRun_TableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "season.json")
	raw := `{
  "season": {"id": 1, "title": "Summer 2024"},
  "teams": [{"id": 1, "name": "Ducks"}, {"id": 2, "name": "Owls"}, {"id": 3, "name": "Hawks"}],
  "games": [
    {"id": 1, "home_id": 1, "away_id": 2, "home_score": 10, "away_score": 3, "completed": true},
    {"id": 2, "home_id": 2, "away_id": 3, "home_score": 8, "away_score": 2, "completed": true},
    {"id": 3, "home_id": 3, "away_id": 1, "home_score": 6, "away_score": 6, "completed": true}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"table", "-file", path}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Summer 2024", lines[0])
	assert.Contains(t, lines[2], "Ducks")
	assert.Contains(t, lines[3], "Owls")
	assert.Contains(t, lines[4], "Hawks")
}

func TestRun_TableRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "season.json")
	raw := `{
  "season": {"id": 1},
  "teams": [{"id": 1, "name": "Ducks"}, {"id": 2, "name": "Owls"}],
  "games": [{"id": 4, "home_id": 1, "away_id": 2, "home_score": -1, "away_score": 5, "completed": true}]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	var out bytes.Buffer
	err := run([]string{"table", "-file", path}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, league.ErrInvalidGameRecord)
	assert.Empty(t, out.String())
}

func TestRun_GamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "season.json")
	raw := `{
  "season": {"id": 1, "title": "Summer 2024"},
  "teams": [{"id": 1, "name": "Ducks"}, {"id": 2, "name": "Owls"}, {"id": 3, "name": "Hawks"}],
  "games": [
    {"id": 11, "week": 2, "starts_at": "2024-05-13T18:30:00Z", "home_id": 2, "away_id": 3},
    {"id": 10, "week": 1, "starts_at": "2024-05-06T18:30:00Z", "home_id": 1, "away_id": 2, "home_score": 7, "away_score": 4, "completed": true},
    {"id": 12, "week": 2, "starts_at": "2024-05-13T20:00:00Z", "home_id": 3, "away_id": 1, "cancellation": 2}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"games", "-file", path}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Summer 2024", lines[0])

	assert.Equal(t, []string{"10", "1", "2024-05-06"}, strings.Fields(lines[2])[:3])
	assert.Contains(t, lines[2], "Owls 4 @ Ducks 7")
	assert.True(t, strings.HasSuffix(lines[2], "final"))

	assert.Equal(t, []string{"11", "2", "2024-05-13"}, strings.Fields(lines[3])[:3])
	assert.Contains(t, lines[3], "Hawks @ Owls")
	assert.True(t, strings.HasSuffix(lines[3], "scheduled"))

	assert.Equal(t, "12", strings.Fields(lines[4])[0])
	assert.True(t, strings.HasSuffix(lines[4], "weather"))
}

func TestRun_MissingCommand(t *testing.T) {
	assert.Error(t, run(nil, &bytes.Buffer{}))
}

func TestPickSeason(t *testing.T) {
	seasons := []league.Season{
		{ID: 1, Title: "Past", Starts: time.Now().AddDate(-1, 0, 0)},
		{ID: 2, Title: "Now", Starts: time.Now().AddDate(0, 0, -10)},
		{ID: 3, Title: "Next", Starts: time.Now().AddDate(1, 0, 0)},
	}

	s, ok := pickSeason(seasons, 0)
	require.True(t, ok)
	assert.Equal(t, "Now", s.Title)

	s, ok = pickSeason(seasons, 3)
	require.True(t, ok)
	assert.Equal(t, "Next", s.Title)

	_, ok = pickSeason(seasons, 9)
	assert.False(t, ok)
}

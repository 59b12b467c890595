package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-standings/internal/league"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, league.DefaultConfig(), cfg.League)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "postgres://postgres:@localhost:5432/LeagueStandings?sslmode=disable", cfg.DSN())
}

func TestLoad_LeagueOverrides(t *testing.T) {
	t.Setenv("LEAGUE_POINTS_PER_WIN", "3")
	t.Setenv("LEAGUE_ALLOW_TIES", "false")
	t.Setenv("LEAGUE_RUN_DIFFERENTIAL_CAP", "10")
	t.Setenv("LEAGUE_HIDE_IDLE_TEAMS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.League.PointsPerWin)
	assert.Equal(t, 1, cfg.League.PointsPerTie)
	assert.False(t, cfg.League.AllowTies)
	assert.Equal(t, 10, cfg.League.RunDifferentialCap)
	assert.True(t, cfg.League.HideIdleTeams)
}

func TestLoad_RejectsBadWeights(t *testing.T) {
	t.Setenv("LEAGUE_POINTS_PER_WIN", "1")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, league.ErrInvalidConfig))
}

func TestDSN_PrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://league:secret@db:5433/spo?sslmode=require")
	t.Setenv("PGHOST", "ignored")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://league:secret@db:5433/spo?sslmode=require", cfg.DSN())
}

func TestDSN_FromParts(t *testing.T) {
	cfg := &Config{PGUser: "spo", PGPassword: "pw", PGHost: "db", PGPort: 6543, PGDatabase: "league", PGSSLMode: "disable"}
	assert.Equal(t, "postgres://spo:pw@db:6543/league?sslmode=disable", cfg.DSN())
}

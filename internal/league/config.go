package league

import "fmt"

// Config carries the league scoring rules. It is passed into every
// computation; nothing in this package reads global settings.
type Config struct {
	PointsPerWin  int  `env:"POINTS_PER_WIN" envDefault:"2"`
	PointsPerLoss int  `env:"POINTS_PER_LOSS" envDefault:"0"`
	PointsPerTie  int  `env:"POINTS_PER_TIE" envDefault:"1"`
	AllowTies     bool `env:"ALLOW_TIES" envDefault:"true"`
	// RunDifferentialCap bounds a single game's differential for tie-breaks.
	RunDifferentialCap int `env:"RUN_DIFFERENTIAL_CAP" envDefault:"7"`
	// HideIdleTeams drops teams without a completed game from the table.
	HideIdleTeams bool `env:"HIDE_IDLE_TEAMS" envDefault:"false"`
}

// DefaultConfig returns the SPO scoring: 2 points a win, 1 a tie, cap of 7.
func DefaultConfig() Config {
	return Config{
		PointsPerWin:       2,
		PointsPerLoss:      0,
		PointsPerTie:       1,
		AllowTies:          true,
		RunDifferentialCap: 7,
	}
}

// Validate rejects weights under which a win would not outrank a tie
// or a tie would score below a loss.
func (c Config) Validate() error {
	if c.RunDifferentialCap <= 0 {
		return configError(fmt.Sprintf("run differential cap must be positive, got %d", c.RunDifferentialCap))
	}
	if c.PointsPerLoss < 0 {
		return configError(fmt.Sprintf("points per loss must not be negative, got %d", c.PointsPerLoss))
	}
	if c.PointsPerTie < c.PointsPerLoss {
		return configError(fmt.Sprintf("points per tie (%d) below points per loss (%d)", c.PointsPerTie, c.PointsPerLoss))
	}
	if c.PointsPerWin <= c.PointsPerTie {
		return configError(fmt.Sprintf("points per win (%d) must exceed points per tie (%d)", c.PointsPerWin, c.PointsPerTie))
	}
	return nil
}

// Points applies the scoring weights to a win-loss-tie record.
func (c Config) Points(wins, losses, ties int) int {
	return wins*c.PointsPerWin + losses*c.PointsPerLoss + ties*c.PointsPerTie
}

func (c Config) capDiff(diff int) int {
	if diff > c.RunDifferentialCap {
		return c.RunDifferentialCap
	}
	if diff < -c.RunDifferentialCap {
		return -c.RunDifferentialCap
	}
	return diff
}

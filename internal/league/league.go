package league

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Team represents a club in the league.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Cancellation records why a scheduled game was not played.
type Cancellation int

const (
	NotCancelled Cancellation = iota
	Forfeit
	Weather
	OtherCancellation
)

func (c Cancellation) String() string {
	switch c {
	case NotCancelled:
		return "none"
	case Forfeit:
		return "forfeit"
	case Weather:
		return "weather"
	default:
		return "cancelled"
	}
}

// Game represents a fixture between two teams in one season.
type Game struct {
	ID           int          `json:"id"`
	SeasonID     int          `json:"season_id"`
	Week         int          `json:"week"`
	StartsAt     time.Time    `json:"starts_at"`
	HomeID       int          `json:"home_id"`
	AwayID       int          `json:"away_id"`
	HomeScore    int          `json:"home_score"`
	AwayScore    int          `json:"away_score"`
	Completed    bool         `json:"completed"`
	Cancellation Cancellation `json:"cancellation,omitempty"`
}

// Involves reports whether the team played in the game.
func (g Game) Involves(teamID int) bool {
	return g.HomeID == teamID || g.AwayID == teamID
}

// ScoreFor returns the runs scored and allowed by teamID in this game.
func (g Game) ScoreFor(teamID int) (scored, allowed int) {
	if g.HomeID == teamID {
		return g.HomeScore, g.AwayScore
	}
	return g.AwayScore, g.HomeScore
}

// HeadToHead is a team's record against one specific opponent.
type HeadToHead struct {
	Wins, Losses, Ties int
	// RunDiff sums the capped per-game differentials against the opponent.
	RunDiff int
}

// StreakKind is the result type of a run of consecutive games.
type StreakKind string

const (
	StreakWin  StreakKind = "W"
	StreakLoss StreakKind = "L"
	StreakTie  StreakKind = "T"
)

// Streak is the run of identical results ending at the most recent game.
type Streak struct {
	Kind  StreakKind
	Count int
}

func (s Streak) String() string {
	if s.Count == 0 {
		return "-"
	}
	return string(s.Kind) + strconv.Itoa(s.Count)
}

// TeamRecord holds the aggregated season numbers for one team.
type TeamRecord struct {
	Team                    Team
	Wins, Losses, Ties      int
	RunsScored, RunsAgainst int
	Points                  int
	// CappedRunDiff is the tie-break differential, capped per game.
	CappedRunDiff int
	HeadToHead    map[int]*HeadToHead
	Streak        Streak
}

// GamesPlayed counts completed games.
func (r *TeamRecord) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

// RunDifferential is the uncapped runs scored minus runs against.
func (r *TeamRecord) RunDifferential() int {
	return r.RunsScored - r.RunsAgainst
}

// Percentage is wins over games played, rounded to three places.
func (r *TeamRecord) Percentage() decimal.Decimal {
	return winPercentage(r.Wins, r.GamesPlayed())
}

func winPercentage(wins, played int) decimal.Decimal {
	if played == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(wins)).
		DivRound(decimal.NewFromInt(int64(played)), 3)
}

// StandingsRow is one line of the standings table.
type StandingsRow struct {
	TeamRecord
	Rank int
	// TieBreak is the rule that fixed this row's place among point-tied peers.
	TieBreak Rule
	// Trail lists every rule evaluated for this row's tied group, in order.
	Trail []Rule
	// Unresolved marks rows still tied after the full cascade.
	Unresolved bool
	GamesBack  decimal.Decimal
}

// Standings is the ranked table for one season.
type Standings struct {
	SeasonID int
	Rows     []StandingsRow
}

// Legend maps the symbol of each tie-break rule used in the table to its reason.
func (s *Standings) Legend() []LegendEntry {
	seen := make(map[Rule]bool)
	var entries []LegendEntry
	for _, rule := range allRules {
		for _, row := range s.Rows {
			if row.TieBreak == rule && !seen[rule] {
				seen[rule] = true
				entries = append(entries, LegendEntry{Symbol: rule.Symbol(), Reason: rule.Reason()})
			}
		}
	}
	return entries
}

// LegendEntry explains one symbol printed next to a tie-broken row.
type LegendEntry struct {
	Symbol string
	Reason string
}

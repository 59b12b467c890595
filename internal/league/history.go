package league

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Season is a league season; the current one is the latest that has started.
type Season struct {
	ID     int       `json:"id"`
	Title  string    `json:"title"`
	Starts time.Time `json:"starts"`
}

// CurrentSeason picks the most recent season starting on or before now.
func CurrentSeason(seasons []Season, now time.Time) (Season, bool) {
	var current Season
	found := false
	for _, s := range seasons {
		if s.Starts.After(now) {
			continue
		}
		if !found || s.Starts.After(current.Starts) {
			current, found = s, true
		}
	}
	return current, found
}

// Line is a team's win-loss summary over some span of games.
type Line struct {
	Wins, Losses, Ties      int
	Points                  int
	RunsScored, RunsAgainst int
}

func (l Line) GamesPlayed() int { return l.Wins + l.Losses + l.Ties }

func (l Line) RunDifferential() int { return l.RunsScored - l.RunsAgainst }

func (l Line) Percentage() decimal.Decimal { return winPercentage(l.Wins, l.GamesPlayed()) }

// SeasonLine is one season of a team's history.
type SeasonLine struct {
	Season Season
	Line
}

// History is a team's record season by season plus career totals.
type History struct {
	TeamID  int
	Seasons []SeasonLine
	Career  Line
}

// TeamHistory summarizes every completed game the team played. Seasons
// without a completed game are left out; the rest are listed newest first.
func TeamHistory(teamID int, seasons []Season, games []Game, cfg Config) (*History, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bySeason := make(map[int]*SeasonLine)
	for _, s := range seasons {
		bySeason[s.ID] = &SeasonLine{Season: s}
	}

	h := &History{TeamID: teamID}
	for _, g := range games {
		if !g.Completed || !g.Involves(teamID) {
			continue
		}
		if g.HomeID == g.AwayID {
			return nil, invalidGame(g, fmt.Sprintf("team %d cannot play itself", g.HomeID))
		}
		if g.HomeScore < 0 || g.AwayScore < 0 {
			return nil, invalidGame(g, fmt.Sprintf("negative score %d-%d", g.HomeScore, g.AwayScore))
		}
		line, ok := bySeason[g.SeasonID]
		if !ok {
			line = &SeasonLine{Season: Season{ID: g.SeasonID}}
			bySeason[g.SeasonID] = line
		}
		scored, allowed := g.ScoreFor(teamID)
		line.add(scored, allowed)
		h.Career.add(scored, allowed)
	}

	for _, line := range bySeason {
		if line.GamesPlayed() == 0 {
			continue
		}
		line.Points = cfg.Points(line.Wins, line.Losses, line.Ties)
		h.Seasons = append(h.Seasons, *line)
	}
	h.Career.Points = cfg.Points(h.Career.Wins, h.Career.Losses, h.Career.Ties)

	sort.Slice(h.Seasons, func(i, j int) bool {
		a, b := h.Seasons[i].Season, h.Seasons[j].Season
		if !a.Starts.Equal(b.Starts) {
			return a.Starts.After(b.Starts)
		}
		return a.ID > b.ID
	})
	return h, nil
}

func (l *Line) add(scored, allowed int) {
	l.RunsScored += scored
	l.RunsAgainst += allowed
	switch {
	case scored > allowed:
		l.Wins++
	case scored < allowed:
		l.Losses++
	default:
		l.Ties++
	}
}

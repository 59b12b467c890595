package league

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// cascadeRules are applied in this order to teams level on points.
var cascadeRules = []Rule{
	RuleHeadToHead,
	RuleRunDifferential,
	RuleFewestRunsAgainst,
	RuleMostRunsScored,
}

// ComputeStandings ranks every team of the season from its completed games.
// Input is validated first and any bad game aborts the whole computation.
// The result depends only on the arguments, not on their order.
func ComputeStandings(teams []Team, games []Game, season int, cfg Config) (*Standings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateSeason(teams, games, season, cfg); err != nil {
		return nil, err
	}

	records := aggregate(teams, games, cfg)
	if cfg.HideIdleTeams {
		active := records[:0]
		for _, r := range records {
			if r.GamesPlayed() > 0 {
				active = append(active, r)
			}
		}
		records = active
	}

	return &Standings{SeasonID: season, Rows: rank(records, cfg)}, nil
}

func validateSeason(teams []Team, games []Game, season int, cfg Config) error {
	known := make(map[int]bool, len(teams))
	for _, t := range teams {
		if known[t.ID] {
			return &ValidationError{Kind: ErrInvalidTeam, TeamID: t.ID, Reason: "duplicate team id"}
		}
		known[t.ID] = true
	}

	for _, g := range games {
		if g.SeasonID != season {
			return invalidGame(g, fmt.Sprintf("belongs to season %d, not %d", g.SeasonID, season))
		}
		if g.HomeID == g.AwayID {
			return invalidGame(g, fmt.Sprintf("team %d cannot play itself", g.HomeID))
		}
		for _, id := range []int{g.HomeID, g.AwayID} {
			if !known[id] {
				return unknownTeam(g, id)
			}
		}
		if !g.Completed {
			continue
		}
		if g.HomeScore < 0 || g.AwayScore < 0 {
			return invalidGame(g, fmt.Sprintf("negative score %d-%d", g.HomeScore, g.AwayScore))
		}
		if !cfg.AllowTies && g.HomeScore == g.AwayScore {
			return invalidGame(g, fmt.Sprintf("tied %d-%d but the league does not allow ties", g.HomeScore, g.AwayScore))
		}
	}
	return nil
}

// aggregate builds one record per team, ordered by team ID.
func aggregate(teams []Team, games []Game, cfg Config) []*TeamRecord {
	index := make(map[int]*TeamRecord, len(teams))
	records := make([]*TeamRecord, 0, len(teams))
	for _, t := range teams {
		r := &TeamRecord{Team: t, HeadToHead: make(map[int]*HeadToHead)}
		index[t.ID] = r
		records = append(records, r)
	}

	for _, g := range games {
		if !g.Completed {
			continue
		}
		index[g.HomeID].addResult(g.AwayID, g.HomeScore, g.AwayScore, cfg)
		index[g.AwayID].addResult(g.HomeID, g.AwayScore, g.HomeScore, cfg)
	}

	for _, r := range records {
		r.Points = cfg.Points(r.Wins, r.Losses, r.Ties)
		r.Streak = currentStreak(r.Team.ID, games)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Team.ID < records[j].Team.ID
	})
	return records
}

func (r *TeamRecord) addResult(opponent, scored, allowed int, cfg Config) {
	h2h, ok := r.HeadToHead[opponent]
	if !ok {
		h2h = &HeadToHead{}
		r.HeadToHead[opponent] = h2h
	}

	r.RunsScored += scored
	r.RunsAgainst += allowed

	diff := cfg.capDiff(scored - allowed)
	r.CappedRunDiff += diff
	h2h.RunDiff += diff

	switch {
	case scored > allowed:
		r.Wins++
		h2h.Wins++
	case scored < allowed:
		r.Losses++
		h2h.Losses++
	default:
		r.Ties++
		h2h.Ties++
	}
}

// currentStreak walks the team's completed games from the most recent back.
func currentStreak(teamID int, games []Game) Streak {
	var played []Game
	for _, g := range games {
		if g.Completed && g.Involves(teamID) {
			played = append(played, g)
		}
	}
	sort.Slice(played, func(i, j int) bool {
		if !played[i].StartsAt.Equal(played[j].StartsAt) {
			return played[i].StartsAt.After(played[j].StartsAt)
		}
		return played[i].ID > played[j].ID
	})

	var s Streak
	for _, g := range played {
		kind := resultKind(g.ScoreFor(teamID))
		if s.Count > 0 && kind != s.Kind {
			break
		}
		s.Kind = kind
		s.Count++
	}
	return s
}

func resultKind(scored, allowed int) StreakKind {
	switch {
	case scored > allowed:
		return StreakWin
	case scored < allowed:
		return StreakLoss
	default:
		return StreakTie
	}
}

// tieEntry tracks one team while its point-tied group is being split.
type tieEntry struct {
	rec        *TeamRecord
	rule       Rule
	trail      []Rule
	unresolved bool
	// blockLead is the first team ID of an unresolved block.
	blockLead int
}

// rank sorts records by points and breaks every tie. Records must arrive
// ordered by team ID, which becomes the order inside unresolved blocks.
func rank(records []*TeamRecord, cfg Config) []StandingsRow {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Points > records[j].Points
	})

	rows := make([]StandingsRow, 0, len(records))
	for i := 0; i < len(records); {
		j := i + 1
		for j < len(records) && records[j].Points == records[i].Points {
			j++
		}

		tied := make([]*tieEntry, 0, j-i)
		for _, r := range records[i:j] {
			tied = append(tied, &tieEntry{rec: r})
		}
		if len(tied) > 1 {
			tied = cascade(tied, 0)
		}

		for k, e := range tied {
			row := StandingsRow{
				TeamRecord: *e.rec,
				Rank:       len(rows) + 1,
				TieBreak:   e.rule,
				Trail:      e.trail,
				Unresolved: e.unresolved,
			}
			if k > 0 && e.unresolved && tied[k-1].unresolved && tied[k-1].blockLead == e.blockLead {
				row.Rank = rows[len(rows)-1].Rank
			}
			rows = append(rows, row)
		}
		i = j
	}

	if len(rows) > 0 {
		lead := rows[0].Points
		for i := range rows {
			rows[i].GamesBack = gamesBack(lead, rows[i].Points, cfg)
		}
	}
	return rows
}

// cascade orders a tied group by applying the rules from step onward.
// Each rule only sees the teams left level by the previous one.
func cascade(tied []*tieEntry, step int) []*tieEntry {
	if len(tied) == 1 {
		return tied
	}
	if step == len(cascadeRules) {
		for _, e := range tied {
			e.rule = RuleManual
			e.trail = append(e.trail, RuleManual)
			e.unresolved = true
			e.blockLead = tied[0].rec.Team.ID
		}
		return tied
	}

	rule := cascadeRules[step]
	for _, e := range tied {
		e.trail = append(e.trail, rule)
	}

	buckets := split(tied, rule)
	if len(buckets) > 1 {
		for _, e := range tied {
			e.rule = rule
		}
	}

	out := make([]*tieEntry, 0, len(tied))
	for _, b := range buckets {
		out = append(out, cascade(b, step+1)...)
	}
	return out
}

// split partitions tied teams into ordered buckets that the rule cannot
// tell apart. A single bucket means the rule did not separate anyone.
func split(tied []*tieEntry, rule Rule) [][]*tieEntry {
	if rule == RuleHeadToHead {
		return splitHeadToHead(tied)
	}

	var key func(r *TeamRecord) int
	switch rule {
	case RuleRunDifferential:
		key = func(r *TeamRecord) int { return -r.CappedRunDiff }
	case RuleFewestRunsAgainst:
		key = func(r *TeamRecord) int { return r.RunsAgainst }
	case RuleMostRunsScored:
		key = func(r *TeamRecord) int { return -r.RunsScored }
	default:
		return [][]*tieEntry{tied}
	}

	sorted := append([]*tieEntry(nil), tied...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i].rec) < key(sorted[j].rec)
	})

	var buckets [][]*tieEntry
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && key(sorted[j].rec) == key(sorted[i].rec) {
			j++
		}
		buckets = append(buckets, sorted[i:j])
		i = j
	}
	return buckets
}

// splitHeadToHead only applies to a pair; larger groups fall through.
func splitHeadToHead(tied []*tieEntry) [][]*tieEntry {
	if len(tied) != 2 {
		return [][]*tieEntry{tied}
	}
	a, b := tied[0], tied[1]
	h2h, ok := a.rec.HeadToHead[b.rec.Team.ID]
	if !ok || h2h.Wins == h2h.Losses {
		return [][]*tieEntry{tied}
	}
	if h2h.Wins > h2h.Losses {
		return [][]*tieEntry{{a}, {b}}
	}
	return [][]*tieEntry{{b}, {a}}
}

// gamesBack is the points gap to the leader expressed in wins.
func gamesBack(leadPoints, points int, cfg Config) decimal.Decimal {
	gap := decimal.NewFromInt(int64(leadPoints - points))
	return gap.DivRound(decimal.NewFromInt(int64(cfg.PointsPerWin)), 1)
}

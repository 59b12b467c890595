package league

import (
	"fmt"
	"io"
	"sort"
)

// ScoreLine renders a game as "Away 3 @ Home 5" using the given team names.
func (g Game) ScoreLine(names map[int]string) string {
	if !g.Completed {
		return fmt.Sprintf("%s @ %s", nameOf(names, g.AwayID), nameOf(names, g.HomeID))
	}
	return fmt.Sprintf("%s %d @ %s %d",
		nameOf(names, g.AwayID), g.AwayScore,
		nameOf(names, g.HomeID), g.HomeScore,
	)
}

func nameOf(names map[int]string, id int) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("#%d", id)
}

// PrintTable writes the standings as a fixed width table followed by the
// tie-break legend.
func PrintTable(w io.Writer, label string, s *Standings) error {
	if _, err := fmt.Fprintln(w, label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%3s %-20s %2s %2s %2s %2s %3s %5s %3s %3s %4s %4s %4s\n",
		"#", "Team", "GP", "W", "L", "T", "Pts", "Pct", "RF", "RA", "Diff", "GB", "Strk"); err != nil {
		return err
	}
	for _, row := range s.Rows {
		rank := fmt.Sprintf("%d", row.Rank)
		if row.Unresolved {
			rank = "T" + rank
		}
		gb := row.GamesBack.StringFixed(1)
		if row.GamesBack.IsZero() {
			gb = "-"
		}
		if _, err := fmt.Fprintf(w, "%3s %-20s %2d %2d %2d %2d %3d %5s %3d %3d %4d %4s %4s %s\n",
			rank,
			row.Team.Name,
			row.GamesPlayed(),
			row.Wins,
			row.Losses,
			row.Ties,
			row.Points,
			row.Percentage().StringFixed(3),
			row.RunsScored,
			row.RunsAgainst,
			row.CappedRunDiff,
			gb,
			row.Streak,
			row.TieBreak.Symbol(),
		); err != nil {
			return err
		}
	}
	for _, e := range s.Legend() {
		if _, err := fmt.Fprintf(w, "%s %s\n", e.Symbol, e.Reason); err != nil {
			return err
		}
	}
	return nil
}

// PrintGames lists a season's games in the order they are played, with the
// IDs needed to record or cancel them.
func PrintGames(w io.Writer, label string, teams []Team, games []Game) error {
	names := make(map[int]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	sorted := append([]Game(nil), games...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if !a.StartsAt.Equal(b.StartsAt) {
			return a.StartsAt.Before(b.StartsAt)
		}
		return a.ID < b.ID
	})

	if _, err := fmt.Fprintln(w, label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%5s %4s %-10s %-44s %s\n", "ID", "Week", "Date", "Game", "Status"); err != nil {
		return err
	}
	for _, g := range sorted {
		date := "-"
		if !g.StartsAt.IsZero() {
			date = g.StartsAt.Format("2006-01-02")
		}
		status := "scheduled"
		switch {
		case g.Completed:
			status = "final"
		case g.Cancellation != NotCancelled:
			status = g.Cancellation.String()
		}
		if _, err := fmt.Fprintf(w, "%5d %4d %-10s %-44s %s\n", g.ID, g.Week, date, g.ScoreLine(names), status); err != nil {
			return err
		}
	}
	return nil
}

// PrintHistory writes a team's season lines and career totals.
func PrintHistory(w io.Writer, label string, h *History) error {
	if _, err := fmt.Fprintln(w, label); err != nil {
		return err
	}
	line := func(title string, l Line) error {
		_, err := fmt.Fprintf(w, "%-20s %3d %3d %3d %3d %5s %4d %4d %5d\n",
			title, l.Wins, l.Losses, l.Ties, l.Points,
			l.Percentage().StringFixed(3), l.RunsScored, l.RunsAgainst, l.RunDifferential())
		return err
	}
	if _, err := fmt.Fprintf(w, "%-20s %3s %3s %3s %3s %5s %4s %4s %5s\n",
		"Season", "W", "L", "T", "Pts", "Pct", "RF", "RA", "Diff"); err != nil {
		return err
	}
	for _, s := range h.Seasons {
		title := s.Season.Title
		if title == "" {
			title = fmt.Sprintf("Season %d", s.Season.ID)
		}
		if err := line(title, s.Line); err != nil {
			return err
		}
	}
	return line("Career", h.Career)
}

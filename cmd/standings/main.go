// Command standings maintains a league's schedule and prints its standings
// with the SPO tie-break rules applied.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/utakatalp/league-standings/internal/config"
	"github.com/utakatalp/league-standings/internal/league"
	"github.com/utakatalp/league-standings/internal/logging"
	"github.com/utakatalp/league-standings/internal/store"
)

const usage = `usage: standings <command> [flags]

commands:
  migrate                          apply database migrations
  season   -title T -starts DATE   create a season
  teams    NAME...                 add teams
  schedule -season N -first DATE   generate a double round-robin for all teams
  score    -game N -home H -away A record a final score
  cancel   -game N -reason R       mark a game forfeit, weather or other
  table    [-season N] [-file F]   print standings (current season by default)
  games    [-season N] [-file F]   list a season's games with their IDs
  export   -season N -file F       dump a season to JSON
  history  -team N                 print a team's season by season record
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logging.Log.WithError(err).Error("standings failed")
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logging.BootstrapLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, rest := args[0], args[1:]

	// table and games can read a JSON export instead of the database
	if cmd == "table" || cmd == "games" {
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		seasonID := fs.Int("season", 0, "season id (default: current season)")
		file := fs.String("file", "", "read the season from a JSON export instead of the database")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		show := printStandings
		if cmd == "games" {
			show = printGames
		}
		if *file != "" {
			data, err := store.LoadSeasonFile(*file)
			if err != nil {
				return err
			}
			return show(out, data.Season, data.Teams, data.Games, cfg.League)
		}
		return withStore(ctx, cfg, func(s *store.Store) error {
			season, teams, games, err := loadSeason(ctx, s, *seasonID)
			if err != nil {
				return err
			}
			return show(out, season, teams, games, cfg.League)
		})
	}

	return withStore(ctx, cfg, func(s *store.Store) error {
		switch cmd {
		case "migrate":
			return s.Migrate(ctx)
		case "season":
			return createSeason(ctx, out, s, rest)
		case "teams":
			return addTeams(ctx, out, s, rest)
		case "schedule":
			return schedule(ctx, s, rest)
		case "score":
			return score(ctx, s, rest)
		case "cancel":
			return cancel(ctx, s, rest)
		case "export":
			return export(ctx, s, rest)
		case "history":
			return history(ctx, out, s, rest, cfg.League)
		default:
			fmt.Fprint(os.Stderr, usage)
			return fmt.Errorf("unknown command %q", cmd)
		}
	})
}

func withStore(ctx context.Context, cfg *config.Config, fn func(*store.Store) error) error {
	s, err := store.Open(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer s.Close()
	return fn(s)
}

func parseDate(v string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", v, time.Local)
}

func createSeason(ctx context.Context, out io.Writer, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("season", flag.ContinueOnError)
	title := fs.String("title", "", "season title")
	starts := fs.String("starts", time.Now().Format("2006-01-02"), "first day of the season")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return errors.New("season: -title is required")
	}
	day, err := parseDate(*starts)
	if err != nil {
		return fmt.Errorf("season: bad -starts: %w", err)
	}
	season, err := s.CreateSeason(ctx, *title, day)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "season %d: %s\n", season.ID, season.Title)
	return err
}

func addTeams(ctx context.Context, out io.Writer, s *store.Store, names []string) error {
	if len(names) == 0 {
		return errors.New("teams: at least one name is required")
	}
	teams, err := s.InsertTeams(ctx, names)
	if err != nil {
		return err
	}
	for _, t := range teams {
		if _, err := fmt.Fprintf(out, "%4d %s\n", t.ID, t.Name); err != nil {
			return err
		}
	}
	return nil
}

func schedule(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	seasonID := fs.Int("season", 0, "season id")
	first := fs.String("first", "", "date of the first week's games")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seasonID == 0 || *first == "" {
		return errors.New("schedule: -season and -first are required")
	}
	day, err := parseDate(*first)
	if err != nil {
		return fmt.Errorf("schedule: bad -first: %w", err)
	}

	teams, err := s.Teams(ctx)
	if err != nil {
		return err
	}
	ids := make([]int, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	rounds := league.GenerateFullSeason(ids, *seasonID)
	if len(rounds) == 0 {
		return errors.New("schedule: need at least two teams")
	}
	return s.SaveSeasonSchedule(ctx, rounds, day)
}

func score(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	gameID := fs.Int("game", 0, "game id")
	home := fs.Int("home", -1, "home runs")
	away := fs.Int("away", -1, "away runs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *gameID == 0 || *home < 0 || *away < 0 {
		return errors.New("score: -game, -home and -away are required and scores cannot be negative")
	}
	return s.RecordScore(ctx, *gameID, *home, *away)
}

var cancellationReasons = map[string]league.Cancellation{
	"forfeit": league.Forfeit,
	"weather": league.Weather,
	"other":   league.OtherCancellation,
}

func cancel(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	gameID := fs.Int("game", 0, "game id")
	reason := fs.String("reason", "other", "forfeit, weather or other")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, ok := cancellationReasons[*reason]
	if *gameID == 0 || !ok {
		return errors.New("cancel: -game is required and -reason must be forfeit, weather or other")
	}
	return s.CancelGame(ctx, *gameID, r)
}

// loadSeason reads the engine inputs for one season, the current one when
// seasonID is zero.
func loadSeason(ctx context.Context, s *store.Store, seasonID int) (league.Season, []league.Team, []league.Game, error) {
	seasons, err := s.Seasons(ctx)
	if err != nil {
		return league.Season{}, nil, nil, err
	}
	season, ok := pickSeason(seasons, seasonID)
	if !ok {
		return league.Season{}, nil, nil, fmt.Errorf("no season found (asked for %d)", seasonID)
	}
	teams, games, err := s.LoadSeason(ctx, season.ID)
	if err != nil {
		return league.Season{}, nil, nil, err
	}
	return season, teams, games, nil
}

func pickSeason(seasons []league.Season, seasonID int) (league.Season, bool) {
	if seasonID == 0 {
		return league.CurrentSeason(seasons, time.Now())
	}
	for _, season := range seasons {
		if season.ID == seasonID {
			return season, true
		}
	}
	return league.Season{}, false
}

func printStandings(out io.Writer, season league.Season, teams []league.Team, games []league.Game, cfg league.Config) error {
	standings, err := league.ComputeStandings(teams, games, season.ID, cfg)
	if err != nil {
		return fmt.Errorf("season %d standings: %w", season.ID, err)
	}

	unresolved := 0
	for _, row := range standings.Rows {
		if row.Unresolved {
			unresolved++
		}
	}
	if unresolved > 0 {
		logging.Log.WithFields(logrus.Fields{"season": season.ID, "teams": unresolved}).
			Warn("tie needs manual resolution")
	}

	return league.PrintTable(out, seasonLabel(season), standings)
}

func printGames(out io.Writer, season league.Season, teams []league.Team, games []league.Game, _ league.Config) error {
	return league.PrintGames(out, seasonLabel(season), teams, games)
}

func seasonLabel(season league.Season) string {
	if season.Title != "" {
		return season.Title
	}
	return fmt.Sprintf("Season %d", season.ID)
}

func export(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	seasonID := fs.Int("season", 0, "season id")
	file := fs.String("file", "", "output path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seasonID == 0 || *file == "" {
		return errors.New("export: -season and -file are required")
	}

	season, teams, games, err := loadSeason(ctx, s, *seasonID)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return store.WriteSeasonFile(*file, &store.SeasonExport{Season: season, Teams: teams, Games: games})
}

func history(ctx context.Context, out io.Writer, s *store.Store, args []string, cfg league.Config) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	teamID := fs.Int("team", 0, "team id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *teamID == 0 {
		return errors.New("history: -team is required")
	}

	team, err := s.Team(ctx, *teamID)
	if err != nil {
		return err
	}
	seasons, err := s.Seasons(ctx)
	if err != nil {
		return err
	}
	games, err := s.LoadTeamGames(ctx, team.ID)
	if err != nil {
		return err
	}
	h, err := league.TeamHistory(team.ID, seasons, games, cfg)
	if err != nil {
		return err
	}
	return league.PrintHistory(out, team.Name, h)
}

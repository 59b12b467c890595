package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/utakatalp/league-standings/internal/league"
	"github.com/utakatalp/league-standings/internal/logging"
)

// ErrNotFound is returned when a row addressed by ID does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps a Postgres connection and provides methods to persist and
// retrieve league data. It only hands plain values to the league package.
type Store struct {
	DB *sql.DB
}

// Open opens a Postgres connection using the given connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// verify early
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	logging.Log.Debug("connected to postgres")
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// InsertTeams creates teams by name, skipping names that already exist,
// and returns every named team with its ID.
func (s *Store) InsertTeams(ctx context.Context, names []string) ([]league.Team, error) {
	const q = `
    INSERT INTO teams (name)
    VALUES ($1)
    ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
    RETURNING id
    `
	teams := make([]league.Team, 0, len(names))
	for _, name := range names {
		t := league.Team{Name: name}
		if err := s.DB.QueryRowContext(ctx, q, name).Scan(&t.ID); err != nil {
			return nil, fmt.Errorf("inserting team %q: %w", name, err)
		}
		teams = append(teams, t)
	}
	return teams, nil
}

// Team loads a single team.
func (s *Store) Team(ctx context.Context, id int) (league.Team, error) {
	t := league.Team{ID: id}
	err := s.DB.QueryRowContext(ctx, `SELECT name FROM teams WHERE id = $1`, id).Scan(&t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("team %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return t, fmt.Errorf("querying team %d: %w", id, err)
	}
	return t, nil
}

// Teams returns all teams ordered by name.
func (s *Store) Teams(ctx context.Context) ([]league.Team, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM teams ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []league.Team
	for rows.Next() {
		var t league.Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams rows: %w", err)
	}
	return teams, nil
}

// CreateSeason stores a new season.
func (s *Store) CreateSeason(ctx context.Context, title string, starts time.Time) (league.Season, error) {
	season := league.Season{Title: title, Starts: starts}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO seasons (title, starts) VALUES ($1, $2) RETURNING id`,
		title, starts,
	).Scan(&season.ID)
	if err != nil {
		return season, fmt.Errorf("creating season %q: %w", title, err)
	}
	return season, nil
}

// Seasons returns all seasons, newest first.
func (s *Store) Seasons(ctx context.Context) ([]league.Season, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, title, starts FROM seasons ORDER BY starts DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var seasons []league.Season
	for rows.Next() {
		var season league.Season
		if err := rows.Scan(&season.ID, &season.Title, &season.Starts); err != nil {
			return nil, fmt.Errorf("scanning season row: %w", err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating season rows: %w", err)
	}
	return seasons, nil
}

// SaveSeasonSchedule persists generated rounds, one week apart starting at
// firstGame, and fills in the game IDs.
func (s *Store) SaveSeasonSchedule(ctx context.Context, rounds [][]league.Game, firstGame time.Time) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule tx: %w", err)
	}
	defer tx.Rollback()

	const q = `
INSERT INTO games (season_id, week, starts_at, home_team_id, away_team_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	saved := 0
	for i, round := range rounds {
		for j := range round {
			g := &rounds[i][j]
			if g.StartsAt.IsZero() {
				g.StartsAt = firstGame.AddDate(0, 0, 7*(g.Week-1))
			}
			err := tx.QueryRowContext(ctx, q, g.SeasonID, g.Week, g.StartsAt, g.HomeID, g.AwayID).Scan(&g.ID)
			if err != nil {
				return fmt.Errorf("saving week %d game %d-%d: %w", g.Week, g.HomeID, g.AwayID, err)
			}
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule tx: %w", err)
	}
	logging.Log.WithFields(logrus.Fields{"weeks": len(rounds), "games": saved}).Info("season schedule saved")
	return nil
}

// RecordScore stores a final score, which marks the game completed.
func (s *Store) RecordScore(ctx context.Context, gameID, homeScore, awayScore int) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE games SET home_score = $1, away_score = $2 WHERE id = $3`,
		homeScore, awayScore, gameID,
	)
	if err != nil {
		return fmt.Errorf("recording score for game %d: %w", gameID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recording score for game %d: %w", gameID, err)
	}
	if n == 0 {
		return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}
	logging.Log.WithFields(logrus.Fields{"game": gameID, "home": homeScore, "away": awayScore}).Info("score recorded")
	return nil
}

// CancelGame records why a game was not played and clears any score.
func (s *Store) CancelGame(ctx context.Context, gameID int, reason league.Cancellation) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE games SET cancellation = $1, home_score = NULL, away_score = NULL WHERE id = $2`,
		int(reason), gameID,
	)
	if err != nil {
		return fmt.Errorf("cancelling game %d: %w", gameID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancelling game %d: %w", gameID, err)
	}
	if n == 0 {
		return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}
	logging.Log.WithFields(logrus.Fields{"game": gameID, "reason": reason.String()}).Info("game cancelled")
	return nil
}

const gameColumns = `id, season_id, week, starts_at, home_team_id, away_team_id, home_score, away_score, cancellation`

// LoadSeason returns the engine inputs for one season: every team with a
// game in the season, and all of the season's games.
func (s *Store) LoadSeason(ctx context.Context, seasonID int) ([]league.Team, []league.Game, error) {
	games, err := s.queryGames(ctx,
		`SELECT `+gameColumns+` FROM games WHERE season_id = $1 ORDER BY starts_at, id`, seasonID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading season %d: %w", seasonID, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
    SELECT DISTINCT t.id, t.name
    FROM teams t
    JOIN games g ON g.home_team_id = t.id OR g.away_team_id = t.id
    WHERE g.season_id = $1
    ORDER BY t.id
    `, seasonID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying season %d teams: %w", seasonID, err)
	}
	defer rows.Close()

	var teams []league.Team
	for rows.Next() {
		var t league.Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating season teams: %w", err)
	}

	logging.Log.WithFields(logrus.Fields{"season": seasonID, "teams": len(teams), "games": len(games)}).Debug("season loaded")
	return teams, games, nil
}

// LoadTeamGames fetches every game a team took part in, across seasons.
func (s *Store) LoadTeamGames(ctx context.Context, teamID int) ([]league.Game, error) {
	games, err := s.queryGames(ctx,
		`SELECT `+gameColumns+` FROM games WHERE home_team_id = $1 OR away_team_id = $1 ORDER BY starts_at DESC, id DESC`,
		teamID)
	if err != nil {
		return nil, fmt.Errorf("loading games for team %d: %w", teamID, err)
	}
	return games, nil
}

func (s *Store) queryGames(ctx context.Context, q string, args ...any) ([]league.Game, error) {
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []league.Game
	for rows.Next() {
		var (
			g                    league.Game
			homeScore, awayScore sql.NullInt64
			cancellation         int
		)
		if err := rows.Scan(
			&g.ID,
			&g.SeasonID,
			&g.Week,
			&g.StartsAt,
			&g.HomeID,
			&g.AwayID,
			&homeScore,
			&awayScore,
			&cancellation,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		// a game counts once both scores are in
		g.Completed = homeScore.Valid && awayScore.Valid
		g.HomeScore = int(homeScore.Int64)
		g.AwayScore = int(awayScore.Int64)
		g.Cancellation = league.Cancellation(cancellation)
		games = append(games, g)
	}
	return games, rows.Err()
}

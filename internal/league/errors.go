package league

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGameRecord    = errors.New("invalid game record")
	ErrUnknownTeamReference = errors.New("unknown team reference")
	ErrInvalidTeam          = errors.New("invalid team")
	ErrInvalidConfig        = errors.New("invalid league config")
)

// ValidationError describes bad input rejected before any standings are
// computed. Kind is one of the Err* sentinels above, so callers can match
// it with errors.Is.
type ValidationError struct {
	Kind   error
	GameID int
	TeamID int
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.GameID != 0:
		return fmt.Sprintf("%v: game %d: %s", e.Kind, e.GameID, e.Reason)
	case e.TeamID != 0:
		return fmt.Sprintf("%v: team %d: %s", e.Kind, e.TeamID, e.Reason)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
	}
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalidGame(g Game, reason string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidGameRecord, GameID: g.ID, Reason: reason}
}

func unknownTeam(g Game, teamID int) *ValidationError {
	return &ValidationError{
		Kind:   ErrUnknownTeamReference,
		GameID: g.ID,
		TeamID: teamID,
		Reason: fmt.Sprintf("team %d is not part of the season", teamID),
	}
}

func configError(reason string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidConfig, Reason: reason}
}

package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTeamNameLen         = 200
	MaxChampionshipNameLen = 200
)

// TeamPlayer is one player's time-bounded membership in a team within a championship.
type TeamPlayer struct {
	ID               int64      `json:"id"`
	PlayerID         int64      `json:"player_id"`
	TeamName         string     `json:"team_name"`
	ChampionshipName string     `json:"championship_name"`
	JoinedDate       time.Time  `json:"joined_date"`
	LeftDate         *time.Time `json:"left_date,omitempty"`
	Audit

	// Player is populated only by queries that join the owner for display.
	Player *Player `json:"player,omitempty"`
}

// IsActive reports whether the assignment has not been left yet.
func (tp TeamPlayer) IsActive() bool { return tp.LeftDate == nil }

// DurationDaysAt counts whole days from JoinedDate to LeftDate, or to now while active.
func (tp TeamPlayer) DurationDaysAt(now time.Time) int {
	if tp.JoinedDate.IsZero() {
		return 0
	}
	end := now
	if tp.LeftDate != nil {
		end = *tp.LeftDate
	}
	days := int(DateOf(end).Sub(DateOf(tp.JoinedDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Validate reports whether the assignment satisfies its invariants right now.
func (tp TeamPlayer) Validate() bool { return tp.ValidateAt(time.Now().UTC()) }

// ValidateAt is Validate against an explicit reference instant.
func (tp TeamPlayer) ValidateAt(now time.Time) bool {
	if tp.PlayerID <= 0 || !tp.hasCreator() {
		return false
	}
	if !validName(tp.TeamName, MaxTeamNameLen) || !validName(tp.ChampionshipName, MaxChampionshipNameLen) {
		return false
	}
	if tp.JoinedDate.IsZero() {
		return false
	}
	if tp.LeftDate != nil {
		left := DateOf(*tp.LeftDate)
		if !left.After(DateOf(tp.JoinedDate)) || left.After(Today(now)) {
			return false
		}
	}
	return true
}

// UpdateLastModified stamps the update pair with the current UTC time.
func (tp *TeamPlayer) UpdateLastModified(userID string) error {
	return tp.Touch(userID, time.Now())
}

// MarkAsLeft deactivates the assignment. It is the only way LeftDate gets set
// on an existing assignment and it succeeds at most once.
func (tp *TeamPlayer) MarkAsLeft(leftDate time.Time, userID string) error {
	return tp.MarkAsLeftAt(leftDate, userID, time.Now().UTC())
}

// MarkAsLeftAt is MarkAsLeft against an explicit reference instant.
// On error the assignment is left unchanged.
func (tp *TeamPlayer) MarkAsLeftAt(leftDate time.Time, userID string, now time.Time) error {
	if !tp.IsActive() {
		return fmt.Errorf("%w: assignment %d already left on %s", ErrInvalidOperation, tp.ID, tp.LeftDate.Format(time.DateOnly))
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id must not be empty", ErrInvalidArgument)
	}
	ld := DateOf(leftDate)
	if !ld.After(DateOf(tp.JoinedDate)) {
		return ErrLeftDateNotAfterJoined
	}
	if ld.After(Today(now)) {
		return ErrLeftDateInFuture
	}
	tp.LeftDate = &ld
	return tp.Touch(userID, now)
}

func validName(s string, max int) bool {
	s = strings.TrimSpace(s)
	return s != "" && utf8.RuneCountInString(s) <= max
}

package model

import (
	"fmt"
	"time"
)

// PlayerStatistic is one game's performance record. It hangs off the team
// assignment active at game time, not the player, so transfers never
// reattribute history.
type PlayerStatistic struct {
	ID            int64     `json:"id"`
	TeamPlayerID  int64     `json:"team_player_id"`
	GameDate      time.Time `json:"game_date"`
	MinutesPlayed int       `json:"minutes_played"`
	IsStarter     bool      `json:"is_starter"`
	JerseyNumber  int       `json:"jersey_number"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	Audit
}

// Validate reports whether the statistic satisfies its invariants right now.
func (s PlayerStatistic) Validate() bool { return s.ValidateAt(time.Now().UTC()) }

// ValidateAt is Validate against an explicit reference instant.
func (s PlayerStatistic) ValidateAt(now time.Time) bool {
	if s.TeamPlayerID <= 0 || !s.hasCreator() {
		return false
	}
	if s.GameDate.IsZero() || DateOf(s.GameDate).After(Today(now)) {
		return false
	}
	return s.MinutesPlayed >= 0 && s.JerseyNumber > 0 && s.Goals >= 0 && s.Assists >= 0
}

// UpdateLastModified stamps the update pair with the current UTC time.
func (s *PlayerStatistic) UpdateLastModified(userID string) error {
	return s.Touch(userID, time.Now())
}

var errNilStatistics = fmt.Errorf("%w: statistics must not be nil", ErrInvalidArgument)

// CalculateTotalMinutes sums MinutesPlayed. A nil slice is an error, an empty one is 0.
func CalculateTotalMinutes(stats []PlayerStatistic) (int, error) {
	return sumStats(stats, func(s PlayerStatistic) int { return s.MinutesPlayed })
}

// CalculateTotalGoals sums Goals.
func CalculateTotalGoals(stats []PlayerStatistic) (int, error) {
	return sumStats(stats, func(s PlayerStatistic) int { return s.Goals })
}

// CalculateTotalAssists sums Assists.
func CalculateTotalAssists(stats []PlayerStatistic) (int, error) {
	return sumStats(stats, func(s PlayerStatistic) int { return s.Assists })
}

func sumStats(stats []PlayerStatistic, pick func(PlayerStatistic) int) (int, error) {
	if stats == nil {
		return 0, errNilStatistics
	}
	total := 0
	for _, s := range stats {
		total += pick(s)
	}
	return total, nil
}

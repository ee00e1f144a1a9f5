package dto

import "time"

type PlayerResponse struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	DateOfBirth time.Time  `json:"date_of_birth"`
	Age         int        `json:"age"`
	Gender      *string    `json:"gender,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   string     `json:"created_by"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	UpdatedBy   *string    `json:"updated_by,omitempty"`
}

type TeamPlayerResponse struct {
	ID               int64      `json:"id"`
	PlayerID         int64      `json:"player_id"`
	PlayerName       string     `json:"player_name,omitempty"`
	TeamName         string     `json:"team_name"`
	ChampionshipName string     `json:"championship_name"`
	JoinedDate       time.Time  `json:"joined_date"`
	LeftDate         *time.Time `json:"left_date,omitempty"`
	IsActive         bool       `json:"is_active"`
	DurationDays     int        `json:"duration_days"`
	CreatedAt        time.Time  `json:"created_at"`
	CreatedBy        string     `json:"created_by"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	UpdatedBy        *string    `json:"updated_by,omitempty"`
}

type PlayerStatisticResponse struct {
	ID            int64      `json:"id"`
	TeamPlayerID  int64      `json:"team_player_id"`
	GameDate      time.Time  `json:"game_date"`
	MinutesPlayed int        `json:"minutes_played"`
	IsStarter     bool       `json:"is_starter"`
	JerseyNumber  int        `json:"jersey_number"`
	Goals         int        `json:"goals"`
	Assists       int        `json:"assists"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     string     `json:"created_by"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	UpdatedBy     *string    `json:"updated_by,omitempty"`
}

// StatisticsSummary is the aggregate view over a player's games, optionally
// scoped to one assignment.
type StatisticsSummary struct {
	PlayerID             int64   `json:"player_id"`
	TeamPlayerID         *int64  `json:"team_player_id,omitempty"`
	GameCount            int     `json:"game_count"`
	TotalGoals           int     `json:"total_goals"`
	TotalAssists         int     `json:"total_assists"`
	TotalMinutesPlayed   int     `json:"total_minutes_played"`
	AverageGoals         float64 `json:"average_goals"`
	AverageAssists       float64 `json:"average_assists"`
	AverageMinutesPlayed float64 `json:"average_minutes_played"`
}

// Page is a window of items plus the total matching count.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

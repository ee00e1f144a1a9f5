// Package dto holds the request and response shapes exchanged with callers
// and the mapping between them and the roster entities.
package dto

import "time"

// CreatePlayerRequest is the input for registering a roster member.
type CreatePlayerRequest struct {
	Name        string    `json:"name" validate:"notblank,max=200"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"date,past"`
	Gender      *string   `json:"gender,omitempty" validate:"omitempty,max=50"`
	PhotoURL    *string   `json:"photo_url,omitempty" validate:"omitempty,max=500,http_url"`
}

// UpdatePlayerRequest replaces the mutable player fields.
type UpdatePlayerRequest struct {
	Name        string    `json:"name" validate:"notblank,max=200"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"date,past"`
	Gender      *string   `json:"gender,omitempty" validate:"omitempty,max=50"`
	PhotoURL    *string   `json:"photo_url,omitempty" validate:"omitempty,max=500,http_url"`
}

// CreateTeamPlayerRequest assigns a player to a team in a championship.
// A LeftDate records a historical, already finished assignment.
type CreateTeamPlayerRequest struct {
	TeamName         string     `json:"team_name" validate:"notblank,max=200"`
	ChampionshipName string     `json:"championship_name" validate:"notblank,max=200"`
	JoinedDate       time.Time  `json:"joined_date" validate:"date"`
	LeftDate         *time.Time `json:"left_date,omitempty" validate:"omitempty,date,notfuture"`
}

// UpdateTeamPlayerRequest edits an assignment. LeftDate is deliberately absent:
// leaving goes through MarkAsLeftRequest.
type UpdateTeamPlayerRequest struct {
	TeamName         string    `json:"team_name" validate:"notblank,max=200"`
	ChampionshipName string    `json:"championship_name" validate:"notblank,max=200"`
	JoinedDate       time.Time `json:"joined_date" validate:"date"`
}

// MarkAsLeftRequest closes an active assignment.
type MarkAsLeftRequest struct {
	LeftDate time.Time `json:"left_date" validate:"date,notfuture"`
}

// CreatePlayerStatisticRequest records one game for a team assignment.
type CreatePlayerStatisticRequest struct {
	TeamPlayerID  int64     `json:"team_player_id" validate:"gt=0"`
	GameDate      time.Time `json:"game_date" validate:"date,notfuture"`
	MinutesPlayed int       `json:"minutes_played" validate:"gte=0"`
	IsStarter     bool      `json:"is_starter"`
	JerseyNumber  int       `json:"jersey_number" validate:"gt=0"`
	Goals         int       `json:"goals" validate:"gte=0"`
	Assists       int       `json:"assists" validate:"gte=0"`
}

// UpdatePlayerStatisticRequest edits a game record. The owning assignment is fixed.
type UpdatePlayerStatisticRequest struct {
	GameDate      time.Time `json:"game_date" validate:"date,notfuture"`
	MinutesPlayed int       `json:"minutes_played" validate:"gte=0"`
	IsStarter     bool      `json:"is_starter"`
	JerseyNumber  int       `json:"jersey_number" validate:"gt=0"`
	Goals         int       `json:"goals" validate:"gte=0"`
	Assists       int       `json:"assists" validate:"gte=0"`
}

// DateRange bounds a statistics query; both ends are inclusive.
type DateRange struct {
	From time.Time `json:"from" validate:"date"`
	To   time.Time `json:"to" validate:"date"`
}

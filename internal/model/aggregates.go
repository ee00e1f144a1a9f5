package model

// StatisticsAggregate holds totals and per-game averages over a set of game records.
// It is derived on demand and never persisted.
type StatisticsAggregate struct {
	GameCount            int     `json:"game_count"`
	TotalGoals           int     `json:"total_goals"`
	TotalAssists         int     `json:"total_assists"`
	TotalMinutesPlayed   int     `json:"total_minutes_played"`
	AverageGoals         float64 `json:"average_goals"`
	AverageAssists       float64 `json:"average_assists"`
	AverageMinutesPlayed float64 `json:"average_minutes_played"`
}

// NewStatisticsAggregate derives averages from totals; all averages are 0 when games is 0.
func NewStatisticsAggregate(games, goals, assists, minutes int) StatisticsAggregate {
	agg := StatisticsAggregate{
		GameCount:          games,
		TotalGoals:         goals,
		TotalAssists:       assists,
		TotalMinutesPlayed: minutes,
	}
	if games > 0 {
		n := float64(games)
		agg.AverageGoals = float64(goals) / n
		agg.AverageAssists = float64(assists) / n
		agg.AverageMinutesPlayed = float64(minutes) / n
	}
	return agg
}

// Aggregate folds a slice of statistics into a StatisticsAggregate.
func Aggregate(stats []PlayerStatistic) StatisticsAggregate {
	var goals, assists, minutes int
	for _, s := range stats {
		goals += s.Goals
		assists += s.Assists
		minutes += s.MinutesPlayed
	}
	return NewStatisticsAggregate(len(stats), goals, assists, minutes)
}

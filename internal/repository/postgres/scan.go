package postgres

import (
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/maxviazov/player-roster-service/internal/model"
)

const (
	playerColumns = `p.id, p.user_id, p.name, p.date_of_birth, p.gender, p.photo_url,
		p.created_at, p.created_by, p.updated_at, p.updated_by`
	teamPlayerColumns = `tp.id, tp.player_id, tp.team_name, tp.championship_name, tp.joined_date, tp.left_date,
		tp.created_at, tp.created_by, tp.updated_at, tp.updated_by`
	statisticColumns = `ps.id, ps.team_player_id, ps.game_date, ps.minutes_played, ps.is_starter,
		ps.jersey_number, ps.goals, ps.assists, ps.created_at, ps.created_by, ps.updated_at, ps.updated_by`
)

func playerDest(p *model.Player) []any {
	return []any{&p.ID, &p.UserID, &p.Name, &p.DateOfBirth, &p.Gender, &p.PhotoURL,
		&p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy}
}

func teamPlayerDest(tp *model.TeamPlayer) []any {
	return []any{&tp.ID, &tp.PlayerID, &tp.TeamName, &tp.ChampionshipName, &tp.JoinedDate, &tp.LeftDate,
		&tp.CreatedAt, &tp.CreatedBy, &tp.UpdatedAt, &tp.UpdatedBy}
}

func statisticDest(s *model.PlayerStatistic) []any {
	return []any{&s.ID, &s.TeamPlayerID, &s.GameDate, &s.MinutesPlayed, &s.IsStarter,
		&s.JerseyNumber, &s.Goals, &s.Assists, &s.CreatedAt, &s.CreatedBy, &s.UpdatedAt, &s.UpdatedBy}
}

func scanPlayer(row pgx.Row) (model.Player, error) {
	var p model.Player
	if err := row.Scan(playerDest(&p)...); err != nil {
		return model.Player{}, err
	}
	normalizeAudit(&p.Audit)
	return p, nil
}

func scanTeamPlayer(row pgx.Row) (model.TeamPlayer, error) {
	var tp model.TeamPlayer
	if err := row.Scan(teamPlayerDest(&tp)...); err != nil {
		return model.TeamPlayer{}, err
	}
	normalizeAudit(&tp.Audit)
	return tp, nil
}

func scanStatistic(row pgx.Row) (model.PlayerStatistic, error) {
	var s model.PlayerStatistic
	if err := row.Scan(statisticDest(&s)...); err != nil {
		return model.PlayerStatistic{}, err
	}
	normalizeAudit(&s.Audit)
	return s, nil
}

func collectTeamPlayers(rows pgx.Rows) ([]model.TeamPlayer, error) {
	defer rows.Close()
	out := make([]model.TeamPlayer, 0, 4)
	for rows.Next() {
		tp, err := scanTeamPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

func collectStatistics(rows pgx.Rows) ([]model.PlayerStatistic, error) {
	defer rows.Close()
	out := make([]model.PlayerStatistic, 0, 8)
	for rows.Next() {
		s, err := scanStatistic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// pgx hands timestamptz back in the local zone; the domain works in UTC.
func normalizeAudit(a *model.Audit) {
	a.CreatedAt = a.CreatedAt.UTC()
	if a.UpdatedAt != nil {
		u := a.UpdatedAt.UTC()
		a.UpdatedAt = &u
	}
}

func storeNow(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

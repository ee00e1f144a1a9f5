package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/player-roster-service/internal/model"
)

func activeAssignment() model.TeamPlayer {
	return model.TeamPlayer{
		ID:               7,
		PlayerID:         1,
		TeamName:         "Thunder FC",
		ChampionshipName: "Spring 2025",
		JoinedDate:       date(2025, time.January, 10),
		Audit:            model.Audit{CreatedBy: "user-1"},
	}
}

func TestTeamPlayer_ValidateAt(t *testing.T) {
	now := date(2025, time.July, 1)
	left := func(d time.Time) *time.Time { return &d }

	cases := []struct {
		name   string
		mutate func(tp *model.TeamPlayer)
		want   bool
	}{
		{"valid active", func(tp *model.TeamPlayer) {}, true},
		{"valid left", func(tp *model.TeamPlayer) { tp.LeftDate = left(date(2025, time.June, 1)) }, true},
		{"left equals joined", func(tp *model.TeamPlayer) { tp.LeftDate = left(tp.JoinedDate) }, false},
		{"left later on joined day", func(tp *model.TeamPlayer) { tp.LeftDate = left(tp.JoinedDate.Add(18 * time.Hour)) }, false},
		{"left later today", func(tp *model.TeamPlayer) { tp.LeftDate = left(now.Add(18 * time.Hour)) }, true},
		{"left before joined", func(tp *model.TeamPlayer) { tp.LeftDate = left(date(2024, time.December, 1)) }, false},
		{"left in future", func(tp *model.TeamPlayer) { tp.LeftDate = left(date(2025, time.July, 2)) }, false},
		{"zero joined", func(tp *model.TeamPlayer) { tp.JoinedDate = time.Time{} }, false},
		{"blank team", func(tp *model.TeamPlayer) { tp.TeamName = "  " }, false},
		{"blank championship", func(tp *model.TeamPlayer) { tp.ChampionshipName = "" }, false},
		{"missing player", func(tp *model.TeamPlayer) { tp.PlayerID = 0 }, false},
		{"missing creator", func(tp *model.TeamPlayer) { tp.CreatedBy = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tp := activeAssignment()
			tc.mutate(&tp)
			assert.Equal(t, tc.want, tp.ValidateAt(now))
		})
	}
}

func TestTeamPlayer_MarkAsLeftAt(t *testing.T) {
	now := date(2025, time.July, 1)

	t.Run("one way transition", func(t *testing.T) {
		tp := activeAssignment()
		require.True(t, tp.IsActive())

		require.NoError(t, tp.MarkAsLeftAt(date(2025, time.June, 1), "user-1", now))
		assert.False(t, tp.IsActive())
		assert.Equal(t, date(2025, time.June, 1), *tp.LeftDate)
		require.NotNil(t, tp.UpdatedBy)
		assert.Equal(t, "user-1", *tp.UpdatedBy)
		assert.Equal(t, now, *tp.UpdatedAt)

		err := tp.MarkAsLeftAt(date(2025, time.June, 2), "user-1", now)
		require.ErrorIs(t, err, model.ErrInvalidOperation)
		assert.Equal(t, date(2025, time.June, 1), *tp.LeftDate)
	})

	rejects := []struct {
		name     string
		leftDate time.Time
		userID   string
	}{
		{"on joined date", date(2025, time.January, 10), "user-1"},
		{"before joined date", date(2025, time.January, 1), "user-1"},
		{"in the future", date(2025, time.July, 2), "user-1"},
		{"blank user", date(2025, time.June, 1), " "},
	}
	for _, tc := range rejects {
		t.Run(tc.name, func(t *testing.T) {
			tp := activeAssignment()
			before := tp
			err := tp.MarkAsLeftAt(tc.leftDate, tc.userID, now)
			require.ErrorIs(t, err, model.ErrInvalidArgument)
			assert.Equal(t, before, tp)
		})
	}
}

func TestTeamPlayer_MarkAsLeftAt_Reasons(t *testing.T) {
	now := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)

	tp := activeAssignment()
	err := tp.MarkAsLeftAt(tp.JoinedDate.Add(18*time.Hour), "user-1", now)
	require.ErrorIs(t, err, model.ErrLeftDateNotAfterJoined)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	err = tp.MarkAsLeftAt(date(2025, time.July, 2), "user-1", now)
	require.ErrorIs(t, err, model.ErrLeftDateInFuture)
	assert.True(t, tp.IsActive())

	require.NoError(t, tp.MarkAsLeftAt(now.Add(10*time.Hour), "user-1", now))
	assert.Equal(t, date(2025, time.July, 1), *tp.LeftDate)
}

func TestTeamPlayer_DurationDaysAt(t *testing.T) {
	tp := activeAssignment()
	assert.Equal(t, 21, tp.DurationDaysAt(date(2025, time.January, 31)))

	ld := date(2025, time.February, 9)
	tp.LeftDate = &ld
	assert.Equal(t, 30, tp.DurationDaysAt(date(2026, time.January, 1)))
}

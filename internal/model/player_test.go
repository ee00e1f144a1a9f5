package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/player-roster-service/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func validPlayer() model.Player {
	return model.Player{
		UserID:      "user-1",
		Name:        "Emma",
		DateOfBirth: date(2012, time.March, 14),
		Audit:       model.Audit{CreatedBy: "user-1"},
	}
}

func TestPlayer_ValidateAt(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		mutate func(p *model.Player)
		want   bool
	}{
		{"valid", func(p *model.Player) {}, true},
		{"blank name", func(p *model.Player) { p.Name = "   " }, false},
		{"name too long", func(p *model.Player) { p.Name = string(make([]rune, 201)) }, false},
		{"dob today", func(p *model.Player) { p.DateOfBirth = now }, false},
		{"dob today as date", func(p *model.Player) { p.DateOfBirth = date(2025, time.June, 1) }, false},
		{"dob yesterday", func(p *model.Player) { p.DateOfBirth = date(2025, time.May, 31) }, true},
		{"dob in future", func(p *model.Player) { p.DateOfBirth = now.AddDate(0, 0, 1) }, false},
		{"dob zero", func(p *model.Player) { p.DateOfBirth = time.Time{} }, false},
		{"missing creator", func(p *model.Player) { p.CreatedBy = "" }, false},
		{"missing owner", func(p *model.Player) { p.UserID = " " }, false},
		{"gender too long", func(p *model.Player) { p.Gender = strPtr(string(make([]byte, 51))) }, false},
		{"gender ok", func(p *model.Player) { p.Gender = strPtr("female") }, true},
		{"photo relative", func(p *model.Player) { p.PhotoURL = strPtr("/img/emma.png") }, false},
		{"photo ftp", func(p *model.Player) { p.PhotoURL = strPtr("ftp://cdn.example.com/emma.png") }, false},
		{"photo https", func(p *model.Player) { p.PhotoURL = strPtr("https://cdn.example.com/emma.png") }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPlayer()
			tc.mutate(&p)
			assert.Equal(t, tc.want, p.ValidateAt(now))
		})
	}
}

func TestPlayer_ValidateDoesNotMutate(t *testing.T) {
	p := validPlayer()
	p.Name = "  Emma  "
	before := p
	_ = p.Validate()
	assert.Equal(t, before, p)
}

func TestPlayer_CalculateAgeAt(t *testing.T) {
	cases := []struct {
		name string
		dob  time.Time
		now  time.Time
		want int
	}{
		{"day before birthday", date(2000, time.May, 10), date(2025, time.May, 9), 24},
		{"on birthday", date(2000, time.May, 10), date(2025, time.May, 10), 25},
		{"day after birthday", date(2000, time.May, 10), date(2025, time.May, 11), 25},
		{"earlier month", date(2000, time.May, 10), date(2025, time.January, 31), 24},
		{"leap day, non-leap year feb 28", date(2004, time.February, 29), date(2025, time.February, 28), 20},
		{"leap day, non-leap year mar 1", date(2004, time.February, 29), date(2025, time.March, 1), 21},
		{"leap day, leap year", date(2004, time.February, 29), date(2024, time.February, 29), 20},
		{"born today", date(2025, time.May, 10), date(2025, time.May, 10), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Player{DateOfBirth: tc.dob}
			assert.Equal(t, tc.want, p.CalculateAgeAt(tc.now))
		})
	}
}

func TestPlayer_UpdateLastModified(t *testing.T) {
	p := validPlayer()

	err := p.UpdateLastModified("  ")
	require.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Nil(t, p.UpdatedAt)
	assert.Nil(t, p.UpdatedBy)

	require.NoError(t, p.UpdateLastModified("coach-1"))
	require.NotNil(t, p.UpdatedAt)
	first := *p.UpdatedAt
	assert.Equal(t, "coach-1", *p.UpdatedBy)
	assert.Equal(t, time.UTC, first.Location())

	require.NoError(t, p.UpdateLastModified("coach-2"))
	assert.Equal(t, "coach-2", *p.UpdatedBy)
	assert.False(t, p.UpdatedAt.Before(first))
	assert.Equal(t, "user-1", p.CreatedBy)
}

func TestDateOf(t *testing.T) {
	in := time.Date(2025, time.January, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2025, time.January, 10), model.DateOf(in))
	assert.True(t, model.DateOf(time.Time{}).IsZero())
}

package service_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/service"
	"github.com/maxviazov/player-roster-service/internal/validation"
)

func TestPlayerService_Create(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	gender := " female "

	res := e.players.Create(ctx, owner, dto.CreatePlayerRequest{
		Name: "  Emma  ", DateOfBirth: date(2010, 6, 16), Gender: &gender,
	})
	require.True(t, res.IsSuccess(), "%+v", res)
	assert.Equal(t, "Emma", res.Data.Name)
	assert.Equal(t, owner, res.Data.UserID)
	assert.Equal(t, owner, res.Data.CreatedBy)
	assert.True(t, res.Data.CreatedAt.Equal(now))
	assert.Equal(t, 14, res.Data.Age)
	require.NotNil(t, res.Data.Gender)
	assert.Equal(t, "female", *res.Data.Gender)
	assert.Nil(t, res.Data.UpdatedAt)
}

func TestPlayerService_Create_ValidationAccumulates(t *testing.T) {
	e := newEnv(t)
	bad := "ftp://example.com/a.png"
	res := e.players.Create(context.Background(), owner, dto.CreatePlayerRequest{
		Name: "   ", DateOfBirth: date(2026, 1, 1), PhotoURL: &bad,
	})
	assert.Equal(t, service.StatusValidationFailure, res.Status)
	assert.Equal(t, service.CodeValidation, res.Code)
	assert.Contains(t, res.FieldErrors, "name")
	assert.Contains(t, res.FieldErrors, "date_of_birth")
	assert.Contains(t, res.FieldErrors, "photo_url")
}

func TestPlayerService_RequiresCurrentUser(t *testing.T) {
	e := newEnv(t)
	res := e.players.Create(context.Background(), "", dto.CreatePlayerRequest{Name: "Emma", DateOfBirth: date(2010, 1, 1)})
	assert.Equal(t, service.StatusFailure, res.Status)
	assert.Equal(t, service.CodeUnauthenticated, res.Code)
}

func TestPlayerService_RejectsBlankCurrentUser(t *testing.T) {
	e := newEnv(t)
	res := e.players.Create(context.Background(), "   ", dto.CreatePlayerRequest{Name: "Emma", DateOfBirth: date(2010, 1, 1)})
	assert.Equal(t, service.StatusFailure, res.Status)
	assert.Equal(t, service.CodeUnauthenticated, res.Code)
}

func TestPlayerService_Create_BornTodayIsRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res := e.players.Create(ctx, owner, dto.CreatePlayerRequest{Name: "Emma", DateOfBirth: date(2025, 6, 15)})
	assert.Equal(t, service.StatusValidationFailure, res.Status)
	assert.Equal(t, []string{"must be in the past"}, res.FieldErrors["date_of_birth"])

	res = e.players.Create(ctx, owner, dto.CreatePlayerRequest{Name: "Emma", DateOfBirth: date(2025, 6, 14)})
	require.True(t, res.IsSuccess(), "%+v", res)
	assert.Equal(t, 0, res.Data.Age)
}

func TestPlayerService_Create_TrimsBeforeLengthCheck(t *testing.T) {
	e := newEnv(t)
	name := "   " + strings.Repeat("x", 200) + "   "
	res := e.players.Create(context.Background(), owner, dto.CreatePlayerRequest{Name: name, DateOfBirth: date(2010, 1, 1)})
	require.True(t, res.IsSuccess(), "%+v", res)
	assert.Equal(t, strings.Repeat("x", 200), res.Data.Name)
}

func TestPlayerService_OwnershipHidesForeignPlayers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")

	got := e.players.Get(ctx, stranger, p.ID)
	assert.Equal(t, service.CodeNotFound, got.Code)
	assert.Equal(t, []string{"player not found"}, got.Messages)

	upd := e.players.Update(ctx, stranger, p.ID, dto.UpdatePlayerRequest{Name: "Hacked", DateOfBirth: date(2010, 1, 1)})
	assert.Equal(t, service.CodeNotFound, upd.Code)

	del := e.players.Delete(ctx, stranger, p.ID)
	assert.Equal(t, service.CodeNotFound, del.Code)

	still := e.players.Get(ctx, owner, p.ID)
	require.True(t, still.IsSuccess())
	assert.Equal(t, "Emma", still.Data.Name)
}

func TestPlayerService_Update_StampsAudit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")
	e.clock.Add(2 * time.Hour)

	res := e.players.Update(ctx, owner, p.ID, dto.UpdatePlayerRequest{Name: "Emma Watson", DateOfBirth: date(2010, 3, 15)})
	require.True(t, res.IsSuccess(), "%+v", res)
	assert.Equal(t, "Emma Watson", res.Data.Name)
	assert.True(t, res.Data.CreatedAt.Equal(now))
	require.NotNil(t, res.Data.UpdatedAt)
	assert.True(t, res.Data.UpdatedAt.Equal(e.clock.Now()))
	require.NotNil(t, res.Data.UpdatedBy)
	assert.Equal(t, owner, *res.Data.UpdatedBy)
}

func TestPlayerService_Update_NotFound(t *testing.T) {
	e := newEnv(t)
	res := e.players.Update(context.Background(), owner, 99, dto.UpdatePlayerRequest{Name: "X", DateOfBirth: date(2010, 1, 1)})
	assert.Equal(t, service.StatusFailure, res.Status)
	assert.Equal(t, service.CodeNotFound, res.Code)
}

func TestPlayerService_ListByUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.mustPlayer(t, "Bob")
	e.mustPlayer(t, "Anna")
	require.True(t, e.players.Create(ctx, stranger, dto.CreatePlayerRequest{Name: "Zed", DateOfBirth: date(2000, 1, 1)}).IsSuccess())

	res := e.players.ListByUser(ctx, owner, repository.Page{})
	require.True(t, res.IsSuccess())
	assert.Equal(t, 2, res.Data.Total)
	assert.Equal(t, repository.DefaultPageLimit, res.Data.Limit)
	require.Len(t, res.Data.Items, 2)
	assert.Equal(t, "Anna", res.Data.Items[0].Name)
	assert.Equal(t, "Bob", res.Data.Items[1].Name)
}

func TestPlayerService_Delete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.mustPlayer(t, "Emma")

	require.True(t, e.players.Delete(ctx, owner, p.ID).IsSuccess())
	again := e.players.Delete(ctx, owner, p.ID)
	assert.Equal(t, service.CodeNotFound, again.Code)

	bad := e.players.Delete(ctx, owner, 0)
	assert.Equal(t, service.StatusValidationFailure, bad.Status)
	assert.Contains(t, bad.FieldErrors, "id")
}

func TestPlayerService_InfrastructureErrorsAreGeneric(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(now)
	svc := service.NewPlayerService(brokenPlayers{}, validation.New(mock), mock, zerolog.New(io.Discard))

	res := svc.Get(context.Background(), owner, 7)
	assert.Equal(t, service.StatusFailure, res.Status)
	assert.Equal(t, service.CodeInternal, res.Code)
	require.Len(t, res.Messages, 1)
	assert.NotContains(t, res.Messages[0], "10.0.0.5")
}

func TestPlayerService_CancelledContext(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := e.players.Create(ctx, owner, dto.CreatePlayerRequest{Name: "Emma", DateOfBirth: date(2010, 1, 1)})
	assert.Equal(t, service.CodeCancelled, res.Code)
}

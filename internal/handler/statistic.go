package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/service"
	"github.com/maxviazov/player-roster-service/pkg/response"
)

type StatisticHandler struct {
	svc service.PlayerStatisticService
}

func NewStatisticHandler(svc service.PlayerStatisticService) *StatisticHandler {
	return &StatisticHandler{svc: svc}
}

func (h *StatisticHandler) Register(r *gin.RouterGroup) {
	r.GET("/players/:player_id/statistics", h.listByPlayer)
	r.GET("/players/:player_id/statistics/aggregate", h.aggregate)
	r.GET("/team-players/:team_player_id/statistics", h.listByTeamPlayer)

	g := r.Group("/statistics")
	{
		g.POST("", h.record)
		g.GET("/:statistic_id", h.getByID)
		g.PUT("/:statistic_id", h.update)
		g.DELETE("/:statistic_id", h.delete)
	}
}

func (h *StatisticHandler) record(c *gin.Context) {
	var req dto.CreatePlayerStatisticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	response.WriteResult(c, http.StatusCreated, h.svc.Record(c.Request.Context(), currentUser(c), req))
}

func (h *StatisticHandler) getByID(c *gin.Context) {
	response.WriteResult(c, http.StatusOK, h.svc.Get(c.Request.Context(), currentUser(c), pathID(c, "statistic_id")))
}

func (h *StatisticHandler) update(c *gin.Context) {
	var req dto.UpdatePlayerStatisticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res := h.svc.Update(c.Request.Context(), currentUser(c), pathID(c, "statistic_id"), req)
	response.WriteResult(c, http.StatusOK, res)
}

func (h *StatisticHandler) delete(c *gin.Context) {
	res := h.svc.Delete(c.Request.Context(), currentUser(c), pathID(c, "statistic_id"))
	if res.IsSuccess() {
		c.Status(http.StatusNoContent)
		return
	}
	response.WriteResult(c, http.StatusNoContent, res)
}

func (h *StatisticHandler) listByTeamPlayer(c *gin.Context) {
	res := h.svc.ListByTeamPlayer(c.Request.Context(), currentUser(c), pathID(c, "team_player_id"))
	response.WriteResult(c, http.StatusOK, res)
}

// listByPlayer narrows to a date range when either from or to is given (YYYY-MM-DD).
func (h *StatisticHandler) listByPlayer(c *gin.Context) {
	ctx, user, playerID := c.Request.Context(), currentUser(c), pathID(c, "player_id")
	from, hasFrom := c.GetQuery("from")
	to, hasTo := c.GetQuery("to")
	if !hasFrom && !hasTo {
		response.WriteResult(c, http.StatusOK, h.svc.ListByPlayer(ctx, user, playerID))
		return
	}
	// Unparseable dates stay zero and come back as field errors.
	rng := dto.DateRange{From: queryDate(from), To: queryDate(to)}
	response.WriteResult(c, http.StatusOK, h.svc.ListByDateRange(ctx, user, playerID, rng))
}

func (h *StatisticHandler) aggregate(c *gin.Context) {
	var teamPlayerID *int64
	if raw, ok := c.GetQuery("team_player_id"); ok {
		id, _ := strconv.ParseInt(raw, 10, 64)
		teamPlayerID = &id
	}
	res := h.svc.Aggregates(c.Request.Context(), currentUser(c), pathID(c, "player_id"), teamPlayerID)
	response.WriteResult(c, http.StatusOK, res)
}

func queryDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

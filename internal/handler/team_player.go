package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/service"
	"github.com/maxviazov/player-roster-service/pkg/response"
)

type TeamPlayerHandler struct {
	svc service.TeamPlayerService
}

func NewTeamPlayerHandler(svc service.TeamPlayerService) *TeamPlayerHandler {
	return &TeamPlayerHandler{svc: svc}
}

func (h *TeamPlayerHandler) Register(r *gin.RouterGroup) {
	// player_id matches the wildcard name PlayerHandler uses so gin accepts both trees.
	r.GET("/players/:player_id/teams", h.listByPlayer)
	r.POST("/players/:player_id/teams", h.assign)

	g := r.Group("/team-players")
	{
		g.GET("/:team_player_id", h.getByID)
		g.PUT("/:team_player_id", h.update)
		g.POST("/:team_player_id/leave", h.markAsLeft)
		g.DELETE("/:team_player_id", h.delete)
	}
}

func (h *TeamPlayerHandler) assign(c *gin.Context) {
	var req dto.CreateTeamPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res := h.svc.Assign(c.Request.Context(), currentUser(c), pathID(c, "player_id"), req)
	response.WriteResult(c, http.StatusCreated, res)
}

func (h *TeamPlayerHandler) listByPlayer(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	res := h.svc.ListByPlayer(c.Request.Context(), currentUser(c), pathID(c, "player_id"), activeOnly)
	response.WriteResult(c, http.StatusOK, res)
}

func (h *TeamPlayerHandler) getByID(c *gin.Context) {
	response.WriteResult(c, http.StatusOK, h.svc.Get(c.Request.Context(), currentUser(c), pathID(c, "team_player_id")))
}

func (h *TeamPlayerHandler) update(c *gin.Context) {
	var req dto.UpdateTeamPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res := h.svc.Update(c.Request.Context(), currentUser(c), pathID(c, "team_player_id"), req)
	response.WriteResult(c, http.StatusOK, res)
}

func (h *TeamPlayerHandler) markAsLeft(c *gin.Context) {
	var req dto.MarkAsLeftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res := h.svc.MarkAsLeft(c.Request.Context(), currentUser(c), pathID(c, "team_player_id"), req)
	response.WriteResult(c, http.StatusOK, res)
}

func (h *TeamPlayerHandler) delete(c *gin.Context) {
	res := h.svc.Delete(c.Request.Context(), currentUser(c), pathID(c, "team_player_id"))
	if res.IsSuccess() {
		c.Status(http.StatusNoContent)
		return
	}
	response.WriteResult(c, http.StatusNoContent, res)
}

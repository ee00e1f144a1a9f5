package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/player-roster-service/internal/dto"
	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/service"
	"github.com/maxviazov/player-roster-service/pkg/response"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:player_id", h.getByID)
		g.PUT("/:player_id", h.update)
		g.DELETE("/:player_id", h.delete)
	}
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req dto.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	response.WriteResult(c, http.StatusCreated, h.svc.Create(c.Request.Context(), currentUser(c), req))
}

func (h *PlayerHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page := repository.Page{Limit: limit, Offset: offset}
	response.WriteResult(c, http.StatusOK, h.svc.ListByUser(c.Request.Context(), currentUser(c), page))
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	response.WriteResult(c, http.StatusOK, h.svc.Get(c.Request.Context(), currentUser(c), pathID(c, "player_id")))
}

func (h *PlayerHandler) update(c *gin.Context) {
	var req dto.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	response.WriteResult(c, http.StatusOK, h.svc.Update(c.Request.Context(), currentUser(c), pathID(c, "player_id"), req))
}

func (h *PlayerHandler) delete(c *gin.Context) {
	res := h.svc.Delete(c.Request.Context(), currentUser(c), pathID(c, "player_id"))
	if res.IsSuccess() {
		c.Status(http.StatusNoContent)
		return
	}
	response.WriteResult(c, http.StatusNoContent, res)
}

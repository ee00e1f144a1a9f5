package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/player-roster-service/internal/service"
)

// Services bundles the use cases the API exposes.
type Services struct {
	Players     service.PlayerService
	TeamPlayers service.TeamPlayerService
	Statistics  service.PlayerStatisticService
}

// Register mounts all public routes on the given engine. userHeader names the
// request header holding the current user id.
func Register(r *gin.Engine, store Pinger, userHeader string, svc Services) {
	h := NewHealthHandler(store)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}

		authed := api.Group("", CurrentUser(userHeader))
		NewPlayerHandler(svc.Players).Register(authed)
		NewTeamPlayerHandler(svc.TeamPlayers).Register(authed)
		NewStatisticHandler(svc.Statistics).Register(authed)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/texttopay/pkg/config"
)

// PusherConfigResponse is the public half of the broadcast credentials.
type PusherConfigResponse struct {
	Key     string `json:"key"`
	Cluster string `json:"cluster" example:"us2"`
}

// @Summary      Broadcast subscription config
// @Description  Returns the public key and cluster a client needs to subscribe to payment updates.
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.PusherConfigResponse
// @Router       /api/pusher-config [get]
func ApiPusherConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cluster := cfg.Pusher.Cluster
		if cluster == "" {
			cluster = "us2"
		}
		c.JSON(http.StatusOK, PusherConfigResponse{Key: cfg.Pusher.Key, Cluster: cluster})
	}
}

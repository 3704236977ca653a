package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/texttopay/internal/app/service/gateway"
	"github.com/fatflowers/texttopay/pkg/config"
)

type HealthEnvironment struct {
	HasWorldpayKey  bool `json:"hasWorldpayKey"`
	HasWorldpayMid  bool `json:"hasWorldpayMid"`
	HasPusherConfig bool `json:"hasPusherConfig"`
}

type HealthResponse struct {
	Status      string            `json:"status" example:"OK"`
	Timestamp   time.Time         `json:"timestamp"`
	Environment HealthEnvironment `json:"environment"`
}

// @Summary      Health check
// @Description  Reports liveness and which provider credentials are configured.
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.HealthResponse
// @Router       /api/health [get]
func Health(cfg *config.Config) gin.HandlerFunc {
	creds := gateway.EnvCredentials(cfg.Worldpay)
	return func(c *gin.Context) {
		wp, _ := creds()
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC(),
			Environment: HealthEnvironment{
				HasWorldpayKey:  wp.APIKey != "",
				HasWorldpayMid:  wp.MerchantID != "",
				HasPusherConfig: cfg.Pusher.Complete(),
			},
		})
	}
}

func RegisterSystemRoutes(r gin.IRouter, cfg *config.Config) {
	r.GET("/health", Health(cfg))
	r.GET("/pusher-config", ApiPusherConfig(cfg))
}

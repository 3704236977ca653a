package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/docs"
	"github.com/fatflowers/texttopay/internal/app/api/handlers"
	mw "github.com/fatflowers/texttopay/internal/app/api/middleware"
	"github.com/fatflowers/texttopay/internal/app/service/gateway"
	nh "github.com/fatflowers/texttopay/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/texttopay/internal/app/service/notification_log"
	cfgpkg "github.com/fatflowers/texttopay/pkg/config"
	metrics "github.com/fatflowers/texttopay/pkg/metrics"
)

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	if cfg.Env == cfgpkg.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeParams struct {
	fx.In

	Engine       *gin.Engine
	Log          *zap.SugaredLogger
	Cfg          *cfgpkg.Config
	Gateway      gateway.Gateway
	NotifHandler *nh.NotificationHandler
	NotifLog     *notificationlog.Service
}

func registerRoutes(p routeParams) {
	r, log, cfg := p.Engine, p.Log, p.Cfg

	// Prometheus metrics
	if cfg.MetricsAddr != "" {
		prom := metrics.NewPrometheus(metrics.NewPrometheusOptions{Logger: log})
		prom.SetListenAddress(cfg.MetricsAddr)
		prom.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))

	handlers.RegisterSystemRoutes(api, cfg)
	handlers.RegisterCustomerRoutes(api, p.Gateway, log)
	handlers.RegisterPaymentRoutes(api, p.Gateway, log)
	handlers.RegisterWebhookRoutes(api, p.NotifHandler, cfg.Webhook)
	handlers.RegisterAdminRoutes(api, p.NotifLog, log)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr, "broadcast_driver", cfg.Broadcast.Driver)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)

package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/texttopay/internal/app/api/server"
	"github.com/fatflowers/texttopay/internal/app/service/gateway"
	notificationhandler "github.com/fatflowers/texttopay/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/texttopay/internal/app/service/notification_log"
	"github.com/fatflowers/texttopay/internal/platform/broadcast"
	"github.com/fatflowers/texttopay/internal/platform/db"
	"github.com/fatflowers/texttopay/pkg/config"
	"github.com/fatflowers/texttopay/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	broadcast.Module,
	gateway.Module,
	notificationlog.Module,
	notificationhandler.Module,
	server.Module,
)

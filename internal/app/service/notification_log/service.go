package notification_log

import (
	"context"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/texttopay/internal/models"
	"github.com/fatflowers/texttopay/pkg/logctx"
	"github.com/fatflowers/texttopay/pkg/tool"
)

// Service records webhook receipts. A nil db turns it into a no-op.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	wg  sync.WaitGroup
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

func (s *Service) Enabled() bool { return s != nil && s.db != nil }

// Save asynchronously persists a payment notification log. Nil input is ignored.
func (s *Service) Save(ctx context.Context, entry *models.PaymentNotificationLog) {
	if !s.Enabled() || entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	// detach from the request so the write outlives the response
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save notification log: %v", err)
		}
	}()
}

// Wait blocks until pending writes finish.
func (s *Service) Wait() {
	if s != nil {
		s.wg.Wait()
	}
}

func registerFlush(lc fx.Lifecycle, s *Service) {
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		s.Wait()
		return nil
	}})
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerFlush),
)

package gormlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestShortCaller(t *testing.T) {
	require.Equal(t, "internal/platform/db/postgres.go:38", shortCaller("/home/ci/texttopay/internal/platform/db/postgres.go:38"))
	require.Equal(t, "pkg/x/y.go:12", shortCaller(`C:/repo/project/pkg/x/y.go:12`))
	require.Equal(t, "a/b/c.go:1", shortCaller("/root/a/b/c.go:1"))
	require.Equal(t, "", shortCaller(""))
}

func TestTrace_LogsErrorsAndSkipsNotFound(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := New(zap.New(core).Sugar())
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), fc, errors.New("connection refused"))
	l.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now(), fc, nil)

	require.Len(t, logs.FilterMessage("gorm_trace").All(), 1)
	require.Empty(t, logs.FilterMessage("gorm").All())

	l.LogMode(gormlogger.Info).Trace(context.Background(), time.Now(), fc, nil)
	require.Len(t, logs.FilterMessage("gorm").All(), 1)
}

package db

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObserved(threshold time.Duration) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core), threshold), logs
}

func TestZapLogger_Trace(t *testing.T) {
	fc := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("error is logged", func(t *testing.T) {
		l, logs := newObserved(time.Second)
		l.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
		assert.Equal(t, 1, logs.FilterMessage("query failed").Len())
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, logs := newObserved(time.Second)
		l.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("slow query warns", func(t *testing.T) {
		l, logs := newObserved(time.Millisecond)
		l.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
		assert.Equal(t, 1, logs.FilterMessage("slow query").Len())
	})

	t.Run("silent", func(t *testing.T) {
		l, logs := newObserved(time.Millisecond)
		silent := l.LogMode(gormlogger.Silent)
		silent.Trace(context.Background(), time.Now().Add(-time.Second), fc, errors.New("boom"))
		assert.Equal(t, 0, logs.Len())
	})
}

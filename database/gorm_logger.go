package database

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogger routes gorm's internal logging through slog, flagging slow
// queries at warn level.
type gormLogger struct {
	log           *slog.Logger
	logQueries    bool
	slowThreshold time.Duration
}

func newGormLogger(log *slog.Logger, logQueries bool, slowThreshold time.Duration) *gormLogger {
	return &gormLogger{
		log:           log,
		logQueries:    logQueries,
		slowThreshold: slowThreshold,
	}
}

func (l *gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.log.InfoContext(ctx, msg, "data", data)
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.log.WarnContext(ctx, msg, "data", data)
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.log.ErrorContext(ctx, msg, "data", data)
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.ErrorContext(ctx, "query failed", "error", err, "duration", elapsed, "rows", rows, "sql", sql)
	case elapsed > l.slowThreshold:
		l.log.WarnContext(ctx, "slow query", "duration", elapsed, "rows", rows, "sql", sql)
	case l.logQueries:
		l.log.DebugContext(ctx, "query", "duration", elapsed, "rows", rows, "sql", sql)
	}
}

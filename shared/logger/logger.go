package logger

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"contaia-backend/shared/config"
)

type contextKey string

const (
	loggerKey contextKey = "logger"

	// ginLoggerKey is where Middleware stores the request-scoped logger.
	ginLoggerKey = "logger"
)

var (
	log *zap.Logger
	mu  sync.Mutex
)

// New builds a logger for cfg: JSON in production, console otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	var logConfig zap.Config
	if cfg.IsProduction() {
		logConfig = zap.NewProductionConfig()
	} else {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = zapcore.InfoLevel
	}
	logConfig.Level.SetLevel(level)

	l, err := logConfig.Build()
	if err != nil {
		return nil, err
	}
	return l.With(
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
	), nil
}

// InitLogger initializes the global logger
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	log = l
	mu.Unlock()
	l.Info("Logger initialized", zap.String("level", cfg.LogLevel))
	return l, nil
}

// GetLogger returns the global logger instance, a no-op logger until
// InitLogger has run.
func GetLogger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// FromContext retrieves the logger from the context
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromGin retrieves the request logger set by Middleware.
func FromGin(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ginLoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return GetLogger()
}

// Middleware logs every request once it has been handled.
func Middleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = c.Writer.Header().Get("X-Request-ID")
		}
		l := base.With(zap.String("request_id", requestID))
		c.Set(ginLoggerKey, l)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), l))

		c.Next()

		fields := []zapcore.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			l.Error("HTTP request failed", fields...)
		case status >= 400:
			l.Warn("HTTP request rejected", fields...)
		default:
			l.Info("HTTP request completed", fields...)
		}
	}
}

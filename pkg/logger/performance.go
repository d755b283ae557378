package logger

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PerformanceConfig tunes the context logger.
type PerformanceConfig struct {
	SamplingRate    float64       `json:"sampling_rate"`
	MinLogLevel     zapcore.Level `json:"min_log_level"`
	EnableSampling  bool          `json:"enable_sampling"`
	MaxLogPerSecond int           `json:"max_log_per_second"`
	EnableRateLimit bool          `json:"enable_rate_limit"`
}

func DefaultPerformanceConfig() PerformanceConfig {
	return PerformanceConfig{
		SamplingRate:    1.0,
		MinLogLevel:     zapcore.InfoLevel,
		MaxLogPerSecond: 1000,
	}
}

func ProductionConfig() PerformanceConfig {
	return PerformanceConfig{
		SamplingRate:    0.1,
		MinLogLevel:     zapcore.InfoLevel,
		EnableSampling:  true,
		MaxLogPerSecond: 500,
		EnableRateLimit: true,
	}
}

func DevelopmentConfig() PerformanceConfig {
	return PerformanceConfig{
		SamplingRate:    1.0,
		MinLogLevel:     zapcore.DebugLevel,
		MaxLogPerSecond: 10000,
	}
}

// OptimizedLogger drops entries below MinLogLevel or above the per-second
// budget before any field is built.
type OptimizedLogger struct {
	config      PerformanceConfig
	logger      *zap.Logger
	rateLimiter *RateLimiter
}

// RateLimiter caps log entries per second.
type RateLimiter struct {
	maxLogs   int
	current   int
	lastReset time.Time
	mu        sync.Mutex
}

func NewRateLimiter(maxLogs int) *RateLimiter {
	return &RateLimiter{
		maxLogs:   maxLogs,
		lastReset: time.Now(),
	}
}

func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastReset) >= time.Second {
		rl.current = 0
		rl.lastReset = now
	}

	if rl.current >= rl.maxLogs {
		return false
	}

	rl.current++
	return true
}

func NewOptimizedLogger(config PerformanceConfig) (*OptimizedLogger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(config.MinLogLevel)
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zapConfig.DisableStacktrace = true

	zapLogger, err := zapConfig.Build(zap.WithCaller(false))
	if err != nil {
		return nil, err
	}

	if config.EnableSampling {
		zapLogger = zapLogger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSamplerWithOptions(core, time.Second, int(config.SamplingRate*100), 0)
		}))
	}

	return &OptimizedLogger{
		config:      config,
		logger:      zapLogger,
		rateLimiter: NewRateLimiter(config.MaxLogPerSecond),
	}, nil
}

// NewNopOptimizedLogger discards everything. Used by tests.
func NewNopOptimizedLogger() *OptimizedLogger {
	return &OptimizedLogger{
		config:      DefaultPerformanceConfig(),
		logger:      zap.NewNop(),
		rateLimiter: NewRateLimiter(1),
	}
}

// ShouldLog reports whether an entry at level passes the level and rate checks.
func (ol *OptimizedLogger) ShouldLog(level zapcore.Level) bool {
	if level < ol.config.MinLogLevel {
		return false
	}
	if ol.config.EnableRateLimit && !ol.rateLimiter.Allow() {
		return false
	}
	return true
}

var (
	optimizedLogger *OptimizedLogger
	optimizedMu     sync.RWMutex
)

func InitOptimizedLogger(config PerformanceConfig) error {
	l, err := NewOptimizedLogger(config)
	if err != nil {
		return err
	}
	SetOptimizedLogger(l)
	return nil
}

// SetOptimizedLogger replaces the global context logger.
func SetOptimizedLogger(l *OptimizedLogger) {
	optimizedMu.Lock()
	optimizedLogger = l
	optimizedMu.Unlock()
}

// GetOptimizedLogger returns the global context logger, building one from
// GO_ENV on first use.
func GetOptimizedLogger() *OptimizedLogger {
	optimizedMu.RLock()
	l := optimizedLogger
	optimizedMu.RUnlock()
	if l != nil {
		return l
	}

	config := DefaultPerformanceConfig()
	switch os.Getenv("GO_ENV") {
	case "production":
		config = ProductionConfig()
	case "development":
		config = DevelopmentConfig()
	}

	l, err := NewOptimizedLogger(config)
	if err != nil {
		l = NewNopOptimizedLogger()
	}
	SetOptimizedLogger(l)
	return l
}

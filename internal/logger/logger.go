package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init builds the process-wide logger. Call once from main before
// anything logs; GetLogger falls back to a development logger so
// tests work without initialization.
func Init(level string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		logger, _ = zap.NewDevelopment()
	}
	sugar = logger.Sugar()
}

func GetLogger() *zap.SugaredLogger {
	if sugar == nil {
		logger, _ := zap.NewDevelopment()
		sugar = logger.Sugar()
	}
	return sugar
}

func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

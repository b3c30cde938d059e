package core

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
	"package-tracker-service/config"
	"time"
)

func NewLogger(cfg config.Config) (*zap.Logger, error) {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	})

	var writeSyncer zapcore.WriteSyncer
	if cfg.LogsDirectory == "" {
		// No log directory configured, stay on stderr (CLI usage)
		writeSyncer = zapcore.AddSync(os.Stderr)
	} else {
		// Get the current UTC date to create a new file per run
		runTimestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
		logFile := fmt.Sprintf("%v/package-tracker-service-%s.log", cfg.LogsDirectory, runTimestamp)

		// Set up lumberjack for rotation
		writeSyncer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile, // Unique file for each run
			MaxSize:    100,     // MB before it rolls
			MaxBackups: 7,       // Keep last 7 logs
			MaxAge:     30,      // Days
			Compress:   true,    // Compress rotated logs
		})
	}

	zapCore := zapcore.NewCore(encoder, writeSyncer, zap.InfoLevel)
	logger := zap.New(zapCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, nil
}

package main

import (
	"os"
	"path/filepath"

	// Packages
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	logMaxSize    = 10 // megabytes
	logMaxBackups = 3
	logMaxAge     = 28 // days
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewLogger returns a logger which writes to stderr, at debug level when
// debug is set and warnings otherwise. With a path, logs are also written
// as JSON to a rotated file.
func NewLogger(debug bool, path string) (*zap.SugaredLogger, error) {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	encoder := zap.NewProductionEncoderConfig()
	if debug {
		level.SetLevel(zapcore.DebugLevel)
		encoder = zap.NewDevelopmentEncoderConfig()
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoder), zapcore.Lock(os.Stderr), level),
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(newLogFile(path)),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar(), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newLogFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAge,
		Compress:   true,
	}
}

package utils

import (
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogName = "appointment-booking"

// InitLogger always writes to stdout. When LogPath is set it also writes a
// rotated file named after the app. Debug mode switches to the console
// encoder at debug level.
func InitLogger(config AppConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if config.Debug {
		level.SetLevel(zap.DebugLevel)
	}
	encoder := newEncoder(config.Debug)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	if config.LogPath != "" {
		if err := os.MkdirAll(config.LogPath, 0755); err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotatingFile(config)), level))
	}

	service := config.Name
	if service == "" {
		service = defaultLogName
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.Fields(zap.String("service", service)),
	), nil
}

func newEncoder(debug bool) zapcore.Encoder {
	if debug {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// rotatingFile keeps a week of compressed 10 MB segments.
func rotatingFile(config AppConfig) *lumberjack.Logger {
	name := slug.Make(config.Name)
	if name == "" {
		name = defaultLogName
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(config.LogPath, name+".log"),
		MaxSize:    10,
		MaxBackups: 7,
		MaxAge:     28,
		Compress:   true,
	}
}

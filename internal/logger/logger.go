// Package logger builds the process-wide zap logger.
//
// Events always go to stdout. When a log directory is configured the same
// events are also written as JSON to <dir>/orchestra-site.log, rotated and
// compressed by lumberjack.
package logger

import (
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a *zap.SugaredLogger and installs it via zap.ReplaceGlobals so
// zap.S() works in packages that are not handed a logger.
func New(logDir string, debug bool) (*zap.SugaredLogger, error) {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level),
	}
	errOut := zapcore.AddSync(os.Stderr)

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, err
		}
		fileSink := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "orchestra-site.log"),
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(fileSink), level))
		errOut = zapcore.AddSync(fileSink)
	}

	z := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.ErrorOutput(errOut),
	).Sugar()

	zap.ReplaceGlobals(z.Desugar())

	z.Infow("logger online", "file", logDir != "", "debug", debug)
	return z, nil
}

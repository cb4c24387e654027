package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a JSON logger writing to a size-rotated file under
// logDir. When echoStderr is set (one-shot CLI runs), entries also go to
// stderr in console form.
func NewLogger(logDir string, echoStderr bool) (*zap.Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "tournotify.log"),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	})
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), w, zap.InfoLevel),
	}
	if echoStderr {
		cenc := zap.NewDevelopmentEncoderConfig()
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(cenc),
			zapcore.AddSync(os.Stderr),
			zap.InfoLevel,
		))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

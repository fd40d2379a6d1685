// Package log holds the process wide zap logger. It is silent until Init is called.
package log

import (
	"io"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	global = atomic.NewPointer(zap.NewNop())
)

// Init installs a console logger writing to w at the named level.
func Init(w io.Writer, levelName string) error {
	if err := SetLevel(levelName); err != nil {
		return err
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
	ReplaceGlobal(zap.New(core))
	return nil
}

// SetLevel changes the level of the logger installed by Init.
func SetLevel(levelName string) error {
	if levelName == "" {
		return nil
	}
	return level.UnmarshalText([]byte(levelName))
}

// ReplaceGlobal swaps the process logger.
func ReplaceGlobal(logger *zap.Logger) {
	global.Store(logger)
}

// L returns the process logger.
func L() *zap.Logger {
	return global.Load()
}

// With returns a child of the process logger.
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// FieldComponent returns the component field.
func FieldComponent(name string) zap.Field {
	return zap.String("component", name)
}

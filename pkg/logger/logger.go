package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var base *zap.Logger

var serviceName = "signal_bot"

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// Init поднимает zap production-логгер, вызывается один раз на старте.
func Init() error {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	base = l
	return nil
}

func l() *zap.Logger {
	if base == nil {
		panic("logger is not initialized")
	}
	return base.With(zap.String("service", serviceName))
}

func Info(format string, args ...interface{}) {
	l().Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	l().Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	l().Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	l().Fatal(fmt.Sprintf(format, args...))
}

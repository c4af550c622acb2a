// kubeview's logging implementation via Logrus
package logger

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/anchore/kubeview-client/pkg/logger"
)

const defaultLogPermissions fs.FileMode = 0644

const timestampFormat = "2006-01-02 15:04:05"

var _ logger.Logger = (*LogrusLogger)(nil)

// LogrusConfig controls where and how the application logs
type LogrusConfig struct {
	EnableConsole bool
	EnableFile    bool
	Structured    bool
	Level         logrus.Level
	FileLocation  string
}

// LogrusLogger wraps the internal Logrus implementation
type LogrusLogger struct {
	Config LogrusConfig
	Logger *logrus.Logger
}

// NewLogrusLogger builds the application logger (initialized in cmd)
func NewLogrusLogger(cfg LogrusConfig) *LogrusLogger {
	appLogger := logrus.New()

	var output io.Writer
	switch {
	case cfg.EnableConsole && cfg.EnableFile:
		output = io.MultiWriter(os.Stderr, openLogFile(cfg.FileLocation))
	case cfg.EnableConsole:
		output = os.Stderr
	case cfg.EnableFile:
		output = openLogFile(cfg.FileLocation)
	default:
		output = io.Discard
	}

	appLogger.SetOutput(output)
	appLogger.SetLevel(cfg.Level)

	if cfg.Structured {
		appLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	} else {
		appLogger.SetFormatter(&prefixed.TextFormatter{
			DisableColors:   true,
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
			ForceFormatting: true,
		})
	}

	return &LogrusLogger{
		Config: cfg,
		Logger: appLogger,
	}
}

func openLogFile(location string) *os.File {
	logFile, err := os.OpenFile(location, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultLogPermissions)
	if err != nil {
		panic(fmt.Errorf("unable to setup log file: %w", err))
	}
	return logFile
}

func (l *LogrusLogger) Debugf(format string, args ...interface{}) {
	l.Logger.Debugf(format, args...)
}

func (l *LogrusLogger) Infof(format string, args ...interface{}) {
	l.Logger.Infof(format, args...)
}

func (l *LogrusLogger) Debug(args ...interface{}) {
	l.Logger.Debug(args...)
}

func (l *LogrusLogger) Info(args ...interface{}) {
	l.Logger.Info(args...)
}

func (l *LogrusLogger) Warnf(format string, args ...interface{}) {
	l.Logger.Warnf(format, args...)
}

func (l *LogrusLogger) Errorf(format string, args ...interface{}) {
	l.Logger.Errorf(format, args...)
}

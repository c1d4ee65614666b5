package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "NAVDEMO_LOG_LEVEL"

// LogFileEnvVar redirects log output to a file. The interactive browser owns
// the terminal, so file output is the only useful sink while it runs.
const LogFileEnvVar = "NAVDEMO_LOG_FILE"

// Options selects the level and destination of the logger.
type Options struct {
	Level string // debug, info, warn, error; empty means silent
	File  string // empty means stderr
}

// Initialize creates the global logger.
// Empty fields fall back to NAVDEMO_LOG_LEVEL and NAVDEMO_LOG_FILE.
// If no level is set anywhere, logging is disabled (silent mode).
func Initialize(opts Options) error {
	if opts.Level == "" {
		opts.Level = os.Getenv(LogLevelEnvVar)
	}
	if opts.File == "" {
		opts.File = os.Getenv(LogFileEnvVar)
	}

	if opts.Level == "" {
		logger = zap.NewNop()
		return nil
	}

	output := "stderr"
	if opts.File != "" {
		output = opts.File
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(opts.Level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if opts.File == "" {
		// colour codes only make sense on a terminal
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogOperation logs a step of a simulated remote operation
func LogOperation(op string, phase string, fields ...zap.Field) {
	all := append([]zap.Field{
		zap.String("op", op),
		zap.String("phase", phase),
	}, fields...)
	Info("Operation", all...)
}

// LogStateChange logs a client state notification at debug level
func LogStateChange(kind string, loggedIn bool, fetchCount int, records int) {
	Debug("State changed",
		zap.String("event", kind),
		zap.Bool("logged_in", loggedIn),
		zap.Int("fetch_count", fetchCount),
		zap.Int("records", records),
	)
}

// LogNavigation logs a screen push or pop in the browser
func LogNavigation(action string, screen string, depth int) {
	Debug("Navigation",
		zap.String("action", action),
		zap.String("screen", screen),
		zap.Int("depth", depth),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = logger.Sync()
}

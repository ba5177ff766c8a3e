package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger so packages can depend on one logging type.
type Logger struct {
	*zap.Logger
	config *Config
}

// Config holds the logger settings.
type Config struct {
	Level      string
	Format     string
	OutputFile string
}

// ToZapLevel converts the string log level to zapcore.Level.
func (c *Config) ToZapLevel() zapcore.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	case "panic":
		return zapcore.PanicLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a Logger. Unknown levels fall back to info; an output file whose
// directory cannot be created falls back to stdout.
func New(cfg Config) (*Logger, error) {
	var zapConfig zap.Config
	if cfg.ToZapLevel() == zapcore.DebugLevel {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.ToZapLevel())

	output := cfg.OutputFile
	if output == "" {
		output = "stdout"
	}
	if output != "stdout" && output != "stderr" {
		logDir := filepath.Dir(output)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create log directory '%s', defaulting to stdout: %v\n", logDir, err)
			zapConfig.OutputPaths = []string{"stdout"}
			zapConfig.ErrorOutputPaths = []string{"stderr"}
		} else {
			zapConfig.OutputPaths = []string{output, "stdout"}
			zapConfig.ErrorOutputPaths = []string{output, "stderr"}
		}
	} else {
		zapConfig.OutputPaths = []string{output}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "text":
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapConfig.Encoding = "json"
	}

	zl, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	l := &Logger{Logger: zl, config: &cfg}
	l.Info("Logger initialized",
		zap.String("level", cfg.ToZapLevel().String()),
		zap.String("format", zapConfig.Encoding),
		zap.Strings("output_paths", zapConfig.OutputPaths),
	)
	return l, nil
}

// NewNop returns a Logger that discards everything. Used by tests and tools.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: &Config{Level: "info"}}
}

// Named adds a new path segment to the logger's name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

// With adds structured context to the logger.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), config: l.config}
}

// Zap exposes the underlying zap.Logger for adapters that take one directly.
func (l *Logger) Zap() *zap.Logger {
	return l.Logger
}

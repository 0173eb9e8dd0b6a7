package logging

import (
	"encoding/hex"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	lineEnding = zapcore.DefaultLineEnding
)

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent.
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "KEYPAD_LOG_LEVEL"

// maxDump limits hex and ascii dumps.
const maxDump = 256

// Initialize creates the global logger at the given level.
// If level is empty, KEYPAD_LOG_LEVEL is consulted; if that is empty too the
// logger is a no-op.
func Initialize(level string) error {
	return InitializeWithOutput(level, "stderr")
}

// InitializeWithOutput is Initialize writing to the given zap output paths
// (files, "stdout" or "stderr").
func InitializeWithOutput(level string, outputs ...string) error {
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      outputs,
		ErrorOutputPaths: outputs,
	}

	config.EncoderConfig.LineEnding = lineEnding
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from KEYPAD_LOG_LEVEL.
func InitializeFromEnv() error {
	return Initialize("")
}

// SetLogger replaces the global logger. Used by the simulator to route logs
// away from the terminal and by tests to observe output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// SetRawTerminal makes loggers built afterwards end lines with "\r\n", for
// output to a terminal in raw mode.
func SetRawTerminal(raw bool) {
	if raw {
		lineEnding = "\r\n"
	} else {
		lineEnding = zapcore.DefaultLineEnding
	}
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
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

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogKey logs one processed key press. Digits are masked so codes never
// reach the log.
func LogKey(key byte, action string, length int, full bool) {
	Debug("Input symbol",
		zap.String("key", maskKey(key)),
		zap.String("action", action),
		zap.Int("length", length),
		zap.Bool("full", full),
	)
}

// LogModeChange logs an overlay mode transition.
func LogModeChange(from, to, reason string) {
	Info("Overlay mode changed",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("reason", reason),
	)
}

// LogMQTTMessage logs an MQTT message in either direction.
func LogMQTTMessage(direction, topic string, qos byte, retained bool, payload []byte) {
	fields := []zap.Field{
		zap.String("direction", direction),
		zap.String("topic", topic),
		zap.Uint8("qos", qos),
		zap.Bool("retained", retained),
		zap.Int("length", len(payload)),
	}

	if GetLogger().Core().Enabled(zapcore.DebugLevel) {
		fields = append(fields, zap.String("ascii", asciiDump(payload)))
	}

	Info("MQTT message", fields...)
}

// LogRawBytes logs raw bytes (useful for debugging payload problems)
func LogRawBytes(label string, data []byte) {
	Debug(label,
		zap.Int("length", len(data)),
		zap.String("hex", hexDump(data)),
		zap.String("ascii", asciiDump(data)),
	)
}

// Helper functions

func maskKey(key byte) string {
	if key >= '0' && key <= '9' {
		return "digit"
	}
	if key >= 32 && key <= 126 {
		return string(rune(key))
	}
	return fmt.Sprintf("0x%02x", key)
}

func hexDump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) > maxDump {
		return hex.EncodeToString(data[:maxDump]) + "..."
	}
	return hex.EncodeToString(data)
}

func asciiDump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) > maxDump {
		data = data[:maxDump]
	}

	result := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			result[i] = b
		} else {
			result[i] = '.'
		}
	}
	return string(result)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

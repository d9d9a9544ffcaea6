package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. Production environments log JSON at info,
// everything else logs console output at debug. LOG_LEVEL and LOG_FORMAT override.
func New(service string) (*zap.Logger, error) {
	var cfg zap.Config
	if isProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl, ok := parseLevel(os.Getenv("LOG_LEVEL")); ok {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		cfg.Encoding = "json"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case "console", "text", "pretty":
		cfg.Encoding = "console"
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", service), zap.String("env", EnvironmentName())), nil
}

func parseLevel(v string) (zapcore.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "DEBUG":
		return zapcore.DebugLevel, true
	case "INFO":
		return zapcore.InfoLevel, true
	case "WARN", "WARNING":
		return zapcore.WarnLevel, true
	case "ERROR":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// EnvironmentName returns the detected runtime environment.
func EnvironmentName() string {
	for _, k := range []string{"ENV", "APP_ENV", "GO_ENV"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return strings.ToLower(v)
		}
	}
	return "development"
}

func isProduction() bool {
	switch EnvironmentName() {
	case "prod", "production":
		return true
	default:
		return false
	}
}

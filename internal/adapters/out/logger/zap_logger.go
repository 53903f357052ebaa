package logger

import (
	"sort"

	"github.com/suchimauz/coaching-slot-picker/internal/config"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger JSON-логи для dev/stage/production
type ZapLogger struct {
	logger        *zap.Logger
	defaultFields out.LogFields
	module        string
}

func NewZapLogger(cfg *config.Config) (*ZapLogger, error) {
	var zapConfig zap.Config

	if cfg.IsNotLocal() {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := zapConfig.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}

	return WrapZapLogger(logger), nil
}

// WrapZapLogger оборачивает готовый *zap.Logger, в тестах удобно передавать zap.NewNop()
func WrapZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{
		logger:        logger,
		defaultFields: make(out.LogFields),
		module:        "unknown",
	}
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return &ZapLogger{
		logger:        l.logger,
		defaultFields: mergeFields(l.defaultFields, fields),
		module:        l.module,
	}
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{
		logger:        l.logger,
		defaultFields: l.defaultFields,
		module:        module,
	}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.log(zapcore.DebugLevel, event, fields)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.log(zapcore.InfoLevel, event, fields)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.log(zapcore.WarnLevel, event, fields)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.log(zapcore.ErrorLevel, event, fields)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func (l *ZapLogger) log(level zapcore.Level, event string, fields out.LogFields) {
	ce := l.logger.Check(level, event)
	if ce == nil {
		return
	}

	merged := mergeFields(l.defaultFields, fields)

	// Стабильный порядок полей в выводе
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zapFields := make([]zap.Field, 0, len(keys)+1)
	zapFields = append(zapFields, zap.String("module", l.module))
	for _, k := range keys {
		zapFields = append(zapFields, zap.Any(k, merged[k]))
	}

	ce.Write(zapFields...)
}

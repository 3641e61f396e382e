package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New instancia un logger zap de producción con JSON estructurado.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// Must entra en pánico si el logger no pudo crearse.
func Must(l *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return l
}

// Named devuelve un logger hijo con el nombre de componente dado.
// Tolera base nil (útil en tests) devolviendo un nop logger.
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}

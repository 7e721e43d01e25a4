package logger

import (
	"go.uber.org/zap"

	"github.com/teranos/shopplan/sym"
)

// Symbol-aware logging helpers.
// These functions log with the symbol as a structured field, not in the message.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(sym.Plan + " Run started", "run_id", id)
//
//	// Use:
//	logger.PlanInfow("Run started", "run_id", id)

// PlanInfow logs an info message with the Plan symbol (⧖)
func PlanInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Plan}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// PlanWarnw logs a warning message with the Plan symbol (⧖)
func PlanWarnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.Plan}, keysAndValues...)
		Logger.Warnw(msg, fields...)
	}
}

// DBInfow logs an info message with the DB symbol (⊔)
func DBInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.DB}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// DBDebugw logs a debug message with the DB symbol (⊔)
func DBDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, sym.DB}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// AddPlanSymbol wraps a logger with the Plan symbol (⧖)
func AddPlanSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.Plan)
}

// AddDBSymbol wraps a logger with the DB symbol (⊔)
func AddDBSymbol(l *zap.SugaredLogger) *zap.SugaredLogger {
	return l.With(FieldSymbol, sym.DB)
}

// WithSymbol returns a logger with the given symbol as a field.
// For ad-hoc symbol usage not covered by the helpers above.
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

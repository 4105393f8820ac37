package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across enumgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Generation inputs
	FieldModule     = "module"
	FieldModuleType = "module_type"
	FieldSchema     = "schema"
	FieldDefinition = "definition"
	FieldEntry      = "entry"
	FieldUsage      = "usage"

	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldCommand   = "command"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount       = "count"
	FieldDefinitions = "definitions"
	FieldEntries     = "entries"

	// Files and paths
	FieldFile = "file"
	FieldDir  = "dir"
)

type contextKey string

const (
	moduleKey    contextKey = "logger_module"
	componentKey contextKey = "logger_component"
)

// WithModule adds a module name to the context for logging
func WithModule(ctx context.Context, module string) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if module, ok := ctx.Value(moduleKey).(string); ok && module != "" {
		fields = append(fields, FieldModule, module)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Driver struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Driver {
//	    return &Driver{logger: logger.ComponentLogger("driver")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

package logging

import "context"

// Logger provides logging functionality with structured fields
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
	WithComponent(component string) Logger
	WithContext(ctx map[string]interface{}) Logger
}

// LoggerFactory creates the loggers used across the gallery service
type LoggerFactory interface {
	CreateLogger(component string) Logger
	CreateCatalogLogger(mode string) Logger
	CreateHTTPLogger() Logger
}

// LogRepository persists log entries
type LogRepository interface {
	SaveLog(ctx context.Context, entry LogEntry) error
}

// LogEntry represents a log entry for persistence
type LogEntry struct {
	Component string                 `json:"component"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	Mode      string                 `json:"mode,omitempty"`
	Fields    map[string]interface{} `json:"fields"`
}

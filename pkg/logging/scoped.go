package logging

// ScopedLogger pins a set of fields onto every entry of a base logger.
// Catalog loggers carry the data source mode, HTTP loggers the transport.
type ScopedLogger struct {
	base   Logger
	scope  string
	fields map[string]interface{}
}

// NewScopedLogger creates a logger that adds scope and fields to every entry
func NewScopedLogger(base Logger, scope string, fields map[string]interface{}) *ScopedLogger {
	return &ScopedLogger{
		base:   base,
		scope:  scope,
		fields: copyFields(fields),
	}
}

func (s *ScopedLogger) Info(msg string, fields map[string]interface{}) {
	s.base.Info(msg, s.enrich(fields))
}

func (s *ScopedLogger) Error(msg string, err error, fields map[string]interface{}) {
	s.base.Error(msg, err, s.enrich(fields))
}

func (s *ScopedLogger) Warn(msg string, fields map[string]interface{}) {
	s.base.Warn(msg, s.enrich(fields))
}

func (s *ScopedLogger) Debug(msg string, fields map[string]interface{}) {
	s.base.Debug(msg, s.enrich(fields))
}

func (s *ScopedLogger) WithComponent(component string) Logger {
	return &ScopedLogger{
		base:   s.base.WithComponent(component),
		scope:  s.scope,
		fields: copyFields(s.fields),
	}
}

func (s *ScopedLogger) WithContext(ctx map[string]interface{}) Logger {
	fields := copyFields(s.fields)
	for k, v := range ctx {
		fields[k] = v
	}
	return &ScopedLogger{
		base:   s.base,
		scope:  s.scope,
		fields: fields,
	}
}

// enrich merges the pinned fields under the call-site fields
func (s *ScopedLogger) enrich(fields map[string]interface{}) map[string]interface{} {
	enriched := copyFields(s.fields)
	for k, v := range fields {
		enriched[k] = v
	}
	enriched["scope"] = s.scope
	return enriched
}

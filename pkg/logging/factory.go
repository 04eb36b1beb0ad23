package logging

import (
	"sync"
)

// DefaultLoggerFactory implements LoggerFactory using zap loggers
type DefaultLoggerFactory struct {
	opts    Options
	loggers map[string]Logger
	mu      sync.Mutex
}

// NewLoggerFactory creates a new logger factory
func NewLoggerFactory(opts Options) *DefaultLoggerFactory {
	return &DefaultLoggerFactory{
		opts:    opts,
		loggers: make(map[string]Logger),
	}
}

// CreateLogger returns the cached logger of component, creating it on
// first use. Invalid options fall back to a no-op zap core.
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := f.newBase(component)
	f.loggers[component] = logger
	return logger
}

// CreateCatalogLogger creates a logger for catalog operations in mode
func (f *DefaultLoggerFactory) CreateCatalogLogger(mode string) Logger {
	return NewScopedLogger(f.CreateLogger("catalog"), "catalog", map[string]interface{}{
		"mode": mode,
	})
}

// CreateHTTPLogger creates a logger for the HTTP layer
func (f *DefaultLoggerFactory) CreateHTTPLogger() Logger {
	return NewScopedLogger(f.CreateLogger("http"), "http", nil)
}

func (f *DefaultLoggerFactory) newBase(component string) Logger {
	zapLogger, err := NewZapLogger(component, f.opts)
	if err != nil {
		fallback, fallbackErr := NewZapLogger(component, DefaultOptions())
		if fallbackErr != nil {
			return NewNopLogger()
		}
		fallback.Warn("Invalid logger options, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return fallback
	}
	return zapLogger
}

// DatabaseLoggerFactory extends the default factory with database persistence
type DatabaseLoggerFactory struct {
	*DefaultLoggerFactory
	repository LogRepository
	persister  *persister
	minLevel   string
}

// NewDatabaseLoggerFactory creates a logger factory that also persists
// entries at or above minLevel
func NewDatabaseLoggerFactory(opts Options, repository LogRepository, minLevel string) *DatabaseLoggerFactory {
	f := &DatabaseLoggerFactory{
		DefaultLoggerFactory: NewLoggerFactory(opts),
		repository:           repository,
		minLevel:             minLevel,
	}
	if repository != nil {
		f.persister = newPersister(repository)
	}
	return f
}

// Flush waits until entries queued by any of the factory's loggers have
// been saved or dropped
func (f *DatabaseLoggerFactory) Flush() {
	if f.persister != nil {
		f.persister.flush()
	}
}

// CreateLogger creates a database-backed logger for the specified component
func (f *DatabaseLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := newDatabaseLogger(f.newBase(component), f.persister, component, f.minLevel)
	f.loggers[component] = logger
	return logger
}

func (f *DatabaseLoggerFactory) CreateCatalogLogger(mode string) Logger {
	return NewScopedLogger(f.CreateLogger("catalog"), "catalog", map[string]interface{}{
		"mode": mode,
	})
}

func (f *DatabaseLoggerFactory) CreateHTTPLogger() Logger {
	return NewScopedLogger(f.CreateLogger("http"), "http", nil)
}

var (
	globalFactory LoggerFactory
	factoryOnce   sync.Once
	factoryMu     sync.RWMutex
)

// GetGlobalLoggerFactory returns the global logger factory instance
func GetGlobalLoggerFactory() LoggerFactory {
	factoryOnce.Do(func() {
		factoryMu.Lock()
		if globalFactory == nil {
			globalFactory = NewLoggerFactory(DefaultOptions())
		}
		factoryMu.Unlock()
	})

	factoryMu.RLock()
	defer factoryMu.RUnlock()
	return globalFactory
}

// SetGlobalLoggerFactory replaces the global logger factory
func SetGlobalLoggerFactory(factory LoggerFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	globalFactory = factory
}

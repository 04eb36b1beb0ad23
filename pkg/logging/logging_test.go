package logging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockLogRepository records saved entries
type MockLogRepository struct {
	mu      sync.Mutex
	entries []LogEntry
	err     error
}

func (m *MockLogRepository) SaveLog(ctx context.Context, entry LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockLogRepository) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry(nil), m.entries...)
}

func newObserved(component string) (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLoggerFrom(zap.New(core), component), logs
}

func TestZapLogger_PrefixesComponentAndMergesContext(t *testing.T) {
	logger, logs := newObserved("catalog")

	logger.WithContext(map[string]interface{}{"mode": "fixture"}).
		Info("Loaded artworks", map[string]interface{}{"count": 12})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "[catalog] Loaded artworks", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "fixture", fields["mode"])
	assert.EqualValues(t, 12, fields["count"])
}

func TestZapLogger_WithComponentNests(t *testing.T) {
	logger, logs := newObserved("catalog")

	logger.WithComponent("database").Warn("Slow query", nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "[catalog.database] Slow query", logs.All()[0].Message)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestZapLogger_WithContextDoesNotLeak(t *testing.T) {
	logger, logs := newObserved("http")

	_ = logger.WithContext(map[string]interface{}{"path": "/api/artworks"})
	logger.Info("Request", nil)

	require.Equal(t, 1, logs.Len())
	_, found := logs.All()[0].ContextMap()["path"]
	assert.False(t, found)
}

func TestNewZapLogger_RejectsBadOptions(t *testing.T) {
	_, err := NewZapLogger("x", Options{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, err = NewZapLogger("x", Options{Level: "info", Format: "xml"})
	assert.Error(t, err)

	logger, err := NewZapLogger("x", Options{Level: "debug", Format: "text"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestScopedLogger_AddsScopeAndPinnedFields(t *testing.T) {
	base, logs := newObserved("catalog")
	scoped := NewScopedLogger(base, "catalog", map[string]interface{}{"mode": "database"})

	scoped.Error("Query failed", errors.New("boom"), map[string]interface{}{"operation": "getArtworkById"})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "catalog", fields["scope"])
	assert.Equal(t, "database", fields["mode"])
	assert.Equal(t, "getArtworkById", fields["operation"])
	assert.Equal(t, "boom", fields["error"])
}

func TestDatabaseLogger_PersistsAtOrAboveMinLevel(t *testing.T) {
	base, logs := newObserved("catalog")
	repo := &MockLogRepository{}
	logger := NewDatabaseLogger(base, repo, "catalog", "WARN")

	logger.Debug("debug", nil)
	logger.Info("info", nil)
	logger.Warn("warn", map[string]interface{}{"mode": "database"})
	logger.Error("error", errors.New("db down"), nil)
	logger.Flush()

	assert.Equal(t, 4, logs.Len())

	entries := repo.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "database", entries[0].Mode)
	assert.Equal(t, "catalog", entries[0].Component)
	assert.Equal(t, "ERROR", entries[1].Level)
	assert.Equal(t, "db down", entries[1].Error)
}

func TestDatabaseLogger_SaveFailureGoesToBaseOnly(t *testing.T) {
	base, logs := newObserved("catalog")
	repo := &MockLogRepository{err: errors.New("table missing")}
	logger := NewDatabaseLogger(base, repo, "catalog", "ERROR")

	logger.Error("Query failed", nil, nil)
	logger.Flush()

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "[catalog] Failed to persist log to database", logs.All()[1].Message)
}

func TestDatabaseLogger_BacksOffAfterSaveFailure(t *testing.T) {
	base, logs := newObserved("catalog")
	repo := &MockLogRepository{err: errors.New("connection refused")}
	logger := NewDatabaseLogger(base, repo, "catalog", "WARN")

	for i := 0; i < 5; i++ {
		logger.Warn("Slow query", nil)
	}
	logger.Flush()

	// five warnings plus a single save failure
	require.Equal(t, 6, logs.Len())
	failures := logs.FilterMessage("[catalog] Failed to persist log to database")
	require.Equal(t, 1, failures.Len())
	assert.Equal(t, persistBackoff.String(), failures.All()[0].ContextMap()["paused_for"])
	assert.EqualValues(t, 4, logger.Dropped())
}

func TestDatabaseLogger_ResumesAfterBackoff(t *testing.T) {
	base, _ := newObserved("catalog")
	repo := &MockLogRepository{err: errors.New("connection refused")}
	logger := NewDatabaseLogger(base, repo, "catalog", "WARN")

	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	logger.persister.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	logger.Warn("first", nil)
	logger.Flush()

	repo.mu.Lock()
	repo.err = nil
	repo.mu.Unlock()
	mu.Lock()
	now = now.Add(persistBackoff + time.Second)
	mu.Unlock()

	logger.Warn("second", nil)
	logger.Flush()

	entries := repo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "second", entries[0].Message)
}

// blockingRepository holds every save until released
type blockingRepository struct {
	release chan struct{}
	saved   chan LogEntry
}

func (b *blockingRepository) SaveLog(ctx context.Context, entry LogEntry) error {
	<-b.release
	b.saved <- entry
	return nil
}

func TestDatabaseLogger_DoesNotWaitForRepository(t *testing.T) {
	base, logs := newObserved("catalog")
	repo := &blockingRepository{release: make(chan struct{}), saved: make(chan LogEntry, persistQueueSize+16)}
	logger := NewDatabaseLogger(base, repo, "catalog", "WARN")

	done := make(chan struct{})
	go func() {
		for i := 0; i < persistQueueSize+10; i++ {
			logger.Error("Query failed", nil, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("logging blocked on a stalled repository")
	}
	assert.Equal(t, persistQueueSize+10, logs.Len())
	assert.Positive(t, logger.Dropped())

	close(repo.release)
	logger.Flush()
	assert.EqualValues(t, persistQueueSize+10, int64(len(repo.saved))+logger.Dropped())
}

func TestDatabaseLogger_ContextReachesEntry(t *testing.T) {
	base, _ := newObserved("http")
	repo := &MockLogRepository{}
	logger := NewDatabaseLogger(base, repo, "http", "WARN").
		WithContext(map[string]interface{}{"path": "/api/stats"}).
		WithComponent("handler")

	logger.Warn("Slow response", nil)
	logger.(*DatabaseLogger).Flush()

	entries := repo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "http.handler", entries[0].Component)
	assert.Equal(t, "/api/stats", entries[0].Fields["path"])
}

func TestLoggerFactory_CachesPerComponent(t *testing.T) {
	factory := NewLoggerFactory(DefaultOptions())

	first := factory.CreateLogger("jobs")
	second := factory.CreateLogger("jobs")
	assert.Same(t, first, second)
	assert.NotSame(t, first, factory.CreateLogger("http"))

	assert.IsType(t, &ScopedLogger{}, factory.CreateCatalogLogger("fixture"))
	assert.IsType(t, &ScopedLogger{}, factory.CreateHTTPLogger())
}

func TestLoggerFactory_InvalidOptionsStillLog(t *testing.T) {
	factory := NewLoggerFactory(Options{Level: "nope", Format: "json"})
	assert.NotNil(t, factory.CreateLogger("catalog"))
}

func TestDatabaseLoggerFactory_WrapsLoggers(t *testing.T) {
	repo := &MockLogRepository{}
	factory := NewDatabaseLoggerFactory(DefaultOptions(), repo, "WARN")

	logger := factory.CreateLogger("catalog")
	assert.IsType(t, &DatabaseLogger{}, logger)

	factory.CreateCatalogLogger("database").Warn("Falling behind", nil)
	factory.CreateLogger("http").Error("Handler failed", nil, nil)
	factory.Flush()

	entries := repo.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "database", entries[0].Mode)
	assert.Equal(t, "http", entries[1].Component)
}

func TestGlobalLoggerFactory(t *testing.T) {
	original := GetGlobalLoggerFactory()
	require.NotNil(t, original)
	t.Cleanup(func() { SetGlobalLoggerFactory(original) })

	replacement := NewLoggerFactory(DefaultOptions())
	SetGlobalLoggerFactory(replacement)
	assert.Same(t, replacement, GetGlobalLoggerFactory())
}

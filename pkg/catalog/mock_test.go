package catalog

import (
	"sync"

	"github.com/latoulicious/artgallery/pkg/logging"
)

// MockLogger is a mock implementation of logging.Logger that records
// messages per level
type MockLogger struct {
	mu     *sync.Mutex
	infos  *[]string
	errors *[]string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		mu:     &sync.Mutex{},
		infos:  &[]string{},
		errors: &[]string{},
	}
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.infos = append(*m.infos, msg)
}

func (m *MockLogger) Error(msg string, err error, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.errors = append(*m.errors, msg)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {}

func (m *MockLogger) WithComponent(component string) logging.Logger         { return m }
func (m *MockLogger) WithContext(ctx map[string]interface{}) logging.Logger { return m }

func (m *MockLogger) Infos() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), *m.infos...)
}

func (m *MockLogger) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), *m.errors...)
}

func count(messages []string, msg string) int {
	n := 0
	for _, m := range messages {
		if m == msg {
			n++
		}
	}
	return n
}

// MockLoggerFactory hands out one shared MockLogger
type MockLoggerFactory struct {
	Logger *MockLogger
}

func NewMockLoggerFactory() *MockLoggerFactory {
	return &MockLoggerFactory{Logger: NewMockLogger()}
}

func (f *MockLoggerFactory) CreateLogger(component string) logging.Logger   { return f.Logger }
func (f *MockLoggerFactory) CreateCatalogLogger(mode string) logging.Logger { return f.Logger }
func (f *MockLoggerFactory) CreateHTTPLogger() logging.Logger               { return f.Logger }

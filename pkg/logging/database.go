package logging

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	persistTimeout   = 2 * time.Second
	persistQueueSize = 256
	persistBackoff   = 10 * time.Second
)

var levelRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3}

type pendingEntry struct {
	entry LogEntry
	base  Logger
}

// persister writes entries through a LogRepository on a single background
// worker. Entries are dropped when the queue is full and while the
// repository is backing off after a failed save.
type persister struct {
	repository  LogRepository
	queue       chan pendingEntry
	mu          sync.Mutex
	idle        *sync.Cond
	inFlight    int
	dropped     atomic.Int64
	pausedUntil time.Time // worker only
	now         func() time.Time
}

func newPersister(repository LogRepository) *persister {
	p := &persister{
		repository: repository,
		queue:      make(chan pendingEntry, persistQueueSize),
		now:        time.Now,
	}
	p.idle = sync.NewCond(&p.mu)
	go p.run()
	return p
}

func (p *persister) enqueue(base Logger, entry LogEntry) {
	p.mu.Lock()
	p.inFlight++
	p.mu.Unlock()

	select {
	case p.queue <- pendingEntry{entry: entry, base: base}:
	default:
		p.dropped.Add(1)
		p.done()
	}
}

func (p *persister) done() {
	p.mu.Lock()
	p.inFlight--
	if p.inFlight == 0 {
		p.idle.Broadcast()
	}
	p.mu.Unlock()
}

func (p *persister) run() {
	for item := range p.queue {
		p.save(item)
		p.done()
	}
}

func (p *persister) save(item pendingEntry) {
	if p.now().Before(p.pausedUntil) {
		p.dropped.Add(1)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	// reported on the base logger only, so it never recurses into the repository
	if err := p.repository.SaveLog(ctx, item.entry); err != nil {
		p.pausedUntil = p.now().Add(persistBackoff)
		item.base.Error("Failed to persist log to database", err, map[string]interface{}{
			"original_message": item.entry.Message,
			"original_level":   item.entry.Level,
			"paused_for":       persistBackoff.String(),
		})
	}
}

// flush waits until every queued entry has been handled
func (p *persister) flush() {
	p.mu.Lock()
	for p.inFlight > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// DatabaseLogger wraps a base logger and persists entries at or above
// minLevel through a LogRepository
type DatabaseLogger struct {
	base      Logger
	persister *persister
	component string
	minLevel  string
	context   map[string]interface{}
}

// NewDatabaseLogger creates a database-backed logger. Entries below
// minLevel are only written to the base logger; the rest are also saved in
// the background.
func NewDatabaseLogger(base Logger, repository LogRepository, component, minLevel string) *DatabaseLogger {
	var p *persister
	if repository != nil {
		p = newPersister(repository)
	}
	return newDatabaseLogger(base, p, component, minLevel)
}

func newDatabaseLogger(base Logger, p *persister, component, minLevel string) *DatabaseLogger {
	if _, ok := levelRank[minLevel]; !ok {
		minLevel = "WARN"
	}
	return &DatabaseLogger{
		base:      base,
		persister: p,
		component: component,
		minLevel:  minLevel,
		context:   make(map[string]interface{}),
	}
}

func (d *DatabaseLogger) Info(msg string, fields map[string]interface{}) {
	d.base.Info(msg, fields)
	d.persist("INFO", msg, nil, fields)
}

func (d *DatabaseLogger) Error(msg string, err error, fields map[string]interface{}) {
	d.base.Error(msg, err, fields)
	d.persist("ERROR", msg, err, fields)
}

func (d *DatabaseLogger) Warn(msg string, fields map[string]interface{}) {
	d.base.Warn(msg, fields)
	d.persist("WARN", msg, nil, fields)
}

func (d *DatabaseLogger) Debug(msg string, fields map[string]interface{}) {
	d.base.Debug(msg, fields)
	d.persist("DEBUG", msg, nil, fields)
}

func (d *DatabaseLogger) WithComponent(component string) Logger {
	return &DatabaseLogger{
		base:      d.base.WithComponent(component),
		persister: d.persister,
		component: d.component + "." + component,
		minLevel:  d.minLevel,
		context:   copyFields(d.context),
	}
}

func (d *DatabaseLogger) WithContext(ctx map[string]interface{}) Logger {
	newContext := copyFields(d.context)
	for k, v := range ctx {
		newContext[k] = v
	}
	return &DatabaseLogger{
		base:      d.base.WithContext(ctx),
		persister: d.persister,
		component: d.component,
		minLevel:  d.minLevel,
		context:   newContext,
	}
}

// Flush waits until queued entries have been saved or dropped
func (d *DatabaseLogger) Flush() {
	if d.persister != nil {
		d.persister.flush()
	}
}

// Dropped reports how many entries were not saved because the queue was
// full or the repository was backing off
func (d *DatabaseLogger) Dropped() int64 {
	if d.persister == nil {
		return 0
	}
	return d.persister.dropped.Load()
}

func (d *DatabaseLogger) persist(level, message string, err error, fields map[string]interface{}) {
	if d.persister == nil || levelRank[level] < levelRank[d.minLevel] {
		return
	}
	d.persister.enqueue(d.base, d.buildLogEntry(level, message, err, fields))
}

func (d *DatabaseLogger) buildLogEntry(level, message string, err error, fields map[string]interface{}) LogEntry {
	allFields := copyFields(d.context)
	for k, v := range fields {
		allFields[k] = v
	}

	entry := LogEntry{
		Component: d.component,
		Level:     level,
		Message:   message,
		Fields:    allFields,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if mode, ok := allFields["mode"].(string); ok {
		entry.Mode = mode
	}
	return entry
}

package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Dialect names the SQL backend selected by a DSN
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Options tunes the connection pool and the ORM logger
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	LogLevel        gormLogger.LogLevel
}

// DefaultOptions returns the pool settings used by the gallery service
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		SlowThreshold:   time.Second,
		LogLevel:        gormLogger.Warn,
	}
}

// DialectOf reports the backend of dsn. "sqlite:" prefixed DSNs, "file:"
// URIs and ":memory:" select SQLite; everything else is PostgreSQL.
func DialectOf(dsn string) Dialect {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"),
		strings.HasPrefix(dsn, "file:"),
		dsn == ":memory:":
		return DialectSQLite
	default:
		return DialectPostgres
	}
}

// NewGormDB creates a new GORM database connection using the provided DSN
func NewGormDB(dsn string) (*gorm.DB, error) {
	return NewGormDBWithOptions(dsn, DefaultOptions())
}

// NewGormDBWithOptions opens dsn with the driver of its dialect and applies
// the pool settings
func NewGormDBWithOptions(dsn string, opts Options) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("database DSN is not set")
	}

	var dialector gorm.Dialector
	switch DialectOf(dsn) {
	case DialectSQLite:
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite:"))
	default:
		dialector = postgres.Open(dsn)
	}

	// connectivity is checked per query so an unreachable server surfaces
	// on the call that needed it
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               newGormLogger(opts),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", DialectOf(dsn), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if isMemoryDSN(dsn) {
		// every connection to an in-memory database sees its own empty schema
		sqlDB.SetMaxOpenConns(1)
	} else if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return DialectOf(dsn) == DialectSQLite &&
		(strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory"))
}

func newGormLogger(opts Options) gormLogger.Interface {
	level := opts.LogLevel
	if level == 0 {
		level = gormLogger.Warn
	}
	slow := opts.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Ping checks that the database answers within ctx
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

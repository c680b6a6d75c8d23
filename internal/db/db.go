package db

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/ttrackr/internal/models"
)

// Options configures a Store.
type Options struct {
	// Path is the SQLite database file. Its directory is created if needed.
	Path string

	// Debug logs every SQL statement to LogWriter.
	Debug     bool
	LogWriter io.Writer

	// Now overrides the wall clock. Tests use it to move time forward.
	Now func() time.Time
}

// Store is the task repository, worklog engine and duration aggregator
// over a single database.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open connects to the database and runs migrations
func Open(opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dsn(opts.Path)), &gorm.Config{
		Logger:         newLogger(opts),
		TranslateError: true,
		NowFunc: func() time.Time {
			return now(opts.Now)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db, now: opts.Now}

	if err := s.runMigrations(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// dsn enables foreign keys and waits on locks held by other processes
// instead of failing immediately.
func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func newLogger(opts Options) logger.Interface {
	if !opts.Debug {
		return logger.Default.LogMode(logger.Silent) // Quiet by default
	}
	w := opts.LogWriter
	if w == nil {
		w = os.Stderr
	}
	return logger.New(log.New(w, "", log.LstdFlags), logger.Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      logger.Info,
		Colorful:      false,
	})
}

// runMigrations creates/updates the database schema
func (s *Store) runMigrations() error {
	return s.db.AutoMigrate(
		&models.Task{},
		&models.Worklog{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// timestamp returns the current instant at storage precision.
func (s *Store) timestamp() models.Timestamp {
	return models.NewTimestamp(now(s.now))
}

func now(clock func() time.Time) time.Time {
	if clock != nil {
		return clock()
	}
	return time.Now()
}

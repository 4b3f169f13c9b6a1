// Package store persists loans and bills behind database/sql.
//
// SQLite (modernc, pure Go) is the default. An in-memory SQLite database keeps
// data for the life of the process only. PostgreSQL is used when a DSN is
// configured. Schema is managed by embedded golang-migrate migrations.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // register postgres driver
	_ "modernc.org/sqlite" // register sqlite driver
)

// Drivers accepted by Open.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
	Memory   = "memory"
)

// ErrNotFound is returned when an update or delete names an unknown id.
var ErrNotFound = errors.New("not found")

// Options selects the backing database.
type Options struct {
	Driver string // sqlite (default), postgres, or memory
	Path   string // sqlite file path
	DSN    string // postgres connection string
}

// Store provides loan and bill persistence.
type Store struct {
	db     *sql.DB
	driver string
}

// Open opens or creates the database described by opts and migrates it to the
// latest schema.
func Open(ctx context.Context, opts Options) (*Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = SQLite
	}

	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case Memory:
		// Every connection to :memory: is a separate database, so pin one.
		db, err = sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(on)")
		if err != nil {
			return nil, fmt.Errorf("opening memory db: %w", err)
		}
		db.SetMaxOpenConns(1)
		if err := migrateShared(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Store{db: db, driver: SQLite}, nil

	case SQLite:
		if opts.Path == "" {
			return nil, errors.New("sqlite store needs a path")
		}
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o750); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
		dsn := opts.Path + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)"
		if err := migrateOwned(SQLite, dsn); err != nil {
			return nil, err
		}
		db, err = sql.Open("sqlite", dsn)

	case Postgres:
		if opts.DSN == "" {
			return nil, errors.New("postgres store needs a DSN")
		}
		if err := migrateOwned(Postgres, opts.DSN); err != nil {
			return nil, err
		}
		db, err = sql.Open("postgres", opts.DSN)

	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to %s db: %w", driver, err)
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Counts returns how many loans and bills are stored.
func (s *Store) Counts(ctx context.Context) (loans, bills int, err error) {
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM loans").Scan(&loans); err != nil {
		return 0, 0, fmt.Errorf("counting loans: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bills").Scan(&bills); err != nil {
		return 0, 0, fmt.Errorf("counting bills: %w", err)
	}
	return loans, bills, nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.rebind(query), args...)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

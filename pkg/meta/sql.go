package meta

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect captures the driver and placeholder differences between SQL
// backends.
type Dialect struct {
	Name   string
	Driver string
	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string
}

var (
	// SQLite uses the pure Go modernc.org/sqlite driver.
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite",
		Placeholder: func(int) string { return "?" },
	}
	// Postgres uses the pgx database/sql driver.
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "pgx",
		Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	}
)

// DialectByName resolves "sqlite" or "postgres".
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("meta: unsupported sql dialect %q", name)
	}
}

const defaultTable = "termmeta"

// SQL stores term metadata in a single (term_id, meta_key) keyed table.
type SQL struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// SQLOption configures the SQL store.
type SQLOption func(*SQL)

// WithTable overrides the table name.
func WithTable(name string) SQLOption {
	return func(s *SQL) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.table = trimmed
		}
	}
}

// OpenSQL opens a database for dialect and ensures the schema exists.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string, opts ...SQLOption) (*SQL, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("meta: open %s: %w", dialect.Name, err)
	}
	store := NewSQL(db, dialect, opts...)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQL wraps an existing database handle. Call Migrate before first use
// when the table may not exist.
func NewSQL(db *sql.DB, dialect Dialect, opts ...SQLOption) *SQL {
	s := &SQL{db: db, dialect: dialect, table: defaultTable}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Migrate creates the metadata table when missing.
func (s *SQL) Migrate(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	term_id BIGINT NOT NULL,
	meta_key VARCHAR(255) NOT NULL,
	meta_value TEXT NOT NULL,
	PRIMARY KEY (term_id, meta_key)
)`, s.table)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("meta: create table %s: %w", s.table, err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, termID int64, key string) (string, bool, error) {
	query := fmt.Sprintf("SELECT meta_value FROM %s WHERE term_id = %s AND meta_key = %s",
		s.table, s.dialect.Placeholder(1), s.dialect.Placeholder(2))

	var value string
	err := s.db.QueryRowContext(ctx, query, termID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("meta: get term %d key %q: %w", termID, key, err)
	}
	return value, true, nil
}

func (s *SQL) Set(ctx context.Context, termID int64, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	stmt := fmt.Sprintf(
		"INSERT INTO %s (term_id, meta_key, meta_value) VALUES (%s, %s, %s) "+
			"ON CONFLICT (term_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value",
		s.table, s.dialect.Placeholder(1), s.dialect.Placeholder(2), s.dialect.Placeholder(3))
	if _, err := s.db.ExecContext(ctx, stmt, termID, key, value); err != nil {
		return fmt.Errorf("meta: set term %d key %q: %w", termID, key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, termID int64, key string) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE term_id = %s AND meta_key = %s",
		s.table, s.dialect.Placeholder(1), s.dialect.Placeholder(2))
	if _, err := s.db.ExecContext(ctx, stmt, termID, key); err != nil {
		return fmt.Errorf("meta: delete term %d key %q: %w", termID, key, err)
	}
	return nil
}

func (s *SQL) All(ctx context.Context, termID int64) (map[string]string, error) {
	query := fmt.Sprintf("SELECT meta_key, meta_value FROM %s WHERE term_id = %s",
		s.table, s.dialect.Placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, termID)
	if err != nil {
		return nil, fmt.Errorf("meta: list term %d: %w", termID, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("meta: scan term %d: %w", termID, err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("meta: list term %d: %w", termID, err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *SQL) Close() error {
	return s.db.Close()
}

// Package insql provides a durable storage implementation on top of a relational database
// (PostgreSQL via pgx or SQLite via modernc).
package insql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danilovkiri/dk_go_snapshooter/internal/config"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage/insql/migrations"
)

// Check interface implementation explicitly
var (
	_ storage.Storage = (*Storage)(nil)
)

// Dialect selects the SQL engine behind the storage.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func (d Dialect) driverName() string {
	if d == DialectSQLite {
		return "sqlite"
	}
	return "pgx"
}

func (d Dialect) gooseDialect() string {
	if d == DialectSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	DB      *sqlx.DB
	dialect Dialect
	now     func() time.Time
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// InitStorage opens the configured database, applies migrations and starts a listener closing
// the connection pool once ctx is cancelled.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config) (*Storage, error) {
	dialect := DialectPostgres
	if cfg.StorageBackend == config.BackendSQLite {
		dialect = DialectSQLite
	}
	db, err := sqlx.Open(dialect.driverName(), cfg.DatabaseDSN)
	if err != nil {
		return nil, &storageErrors.StatementSQLError{Err: err}
	}
	st, err := open(ctx, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := st.CloseDB(); err != nil {
			log.Println("Closing SQL DB:", err)
			return
		}
		log.Println("SQL DB connection closed successfully")
	}()
	return st, nil
}

// open prepares an already opened pool and migrates its schema.
func open(ctx context.Context, db *sqlx.DB, dialect Dialect) (*Storage, error) {
	if dialect == DialectSQLite {
		// one connection keeps ":memory:" databases alive and serialises writers
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			return nil, &storageErrors.ExecutionSQLError{Err: err}
		}
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, &storageErrors.ExecutionSQLError{Err: err}
	}
	st := NewWithDB(db, dialect)
	if err := st.migrate(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

// NewWithDB wraps an existing pool without touching its schema.
func NewWithDB(db *sqlx.DB, dialect Dialect) *Storage {
	return &Storage{DB: db, dialect: dialect, now: time.Now}
}

// PingDB checks the database connection.
func (s *Storage) PingDB() error {
	return s.DB.Ping()
}

// CloseDB closes the connection pool.
func (s *Storage) CloseDB() error {
	return s.DB.Close()
}

// migrate applies the embedded goose migrations for the storage dialect.
func (s *Storage) migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(s.dialect.gooseDialect()); err != nil {
		return &storageErrors.MigrationSQLError{Err: err}
	}
	if err := gooseUpContext(ctx, s.DB.DB, string(s.dialect)); err != nil {
		return &storageErrors.MigrationSQLError{Err: err}
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling back otherwise.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return classify(err, "transaction", "")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if err = tx.Commit(); err != nil {
			err = classify(err, "transaction", "")
		}
	}()
	return fn(tx)
}

// timestamp returns the current time in the precision stored by every dialect.
func (s *Storage) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// classify turns driver errors into storage errors.
func classify(err error, entity, key string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &storageErrors.ContextTimeoutExceededError{Err: err}
	case errors.Is(err, sql.ErrNoRows):
		return &storageErrors.NotFoundError{Entity: entity, Key: key, Err: err}
	case isUniqueViolation(err):
		return &storageErrors.AlreadyExistsError{Entity: entity, Key: key, Err: err}
	case isForeignKeyViolation(err):
		return &storageErrors.NotFoundError{Entity: "user", Key: key, Err: err}
	}
	return &storageErrors.ExecutionSQLError{Err: err}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}

func logResult(op string, err error) {
	if err != nil {
		log.Println(op+":", err)
		return
	}
	log.Println(op + ": done")
}

func idKey(id int64) string {
	return fmt.Sprintf("%d", id)
}

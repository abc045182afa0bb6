package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"troffee-auction-engine/internal/config"
	"troffee-auction-engine/internal/domain/shared"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Connection represents a database connection
type Connection struct {
	db          *sqlx.DB
	driver      string
	lockTimeout time.Duration
	logger      zerolog.Logger
}

// NewConnection opens the configured database and applies the schema
func NewConnection(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Connection, error) {
	driver := cfg.Database.Driver
	dsn := cfg.Database.GetConnectionString()
	if driver == config.DriverSQLite && !strings.Contains(dsn, "_time_format") {
		dsn = withParam(dsn, "_time_format=sqlite")
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(5)
	}

	conn := &Connection{
		db:          db,
		driver:      driver,
		lockTimeout: cfg.Bidding.LockTimeout,
		logger:      logger.With().Str("component", "db").Str("driver", driver).Logger(),
	}

	if err := conn.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return conn, nil
}

// GetDB returns the underlying sqlx.DB instance
func (client *Connection) GetDB() *sqlx.DB {
	return client.db
}

// Close closes the database connection
func (client *Connection) Close() error {
	return client.db.Close()
}

// Migrate creates the tables and indexes if they do not exist
func (client *Connection) Migrate(ctx context.Context) error {
	for _, stmt := range schemaFor(client.driver) {
		if _, err := client.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	client.logger.Debug().Msg("Schema applied")
	return nil
}

// BeginTransaction starts a new database transaction
func (client *Connection) BeginTransaction(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := client.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", storageError(err))
	}

	if client.driver == config.DriverPostgres && client.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", client.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to set lock timeout: %w", storageError(err))
		}
	}

	return tx, nil
}

// ExecuteTransaction executes a function within a transaction
func (client *Connection) ExecuteTransaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := client.BeginTransaction(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			client.logger.Error().Err(rbErr).Msg("Rollback failed")
			return fmt.Errorf("tx failed: %w, rollback failed: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", storageError(err))
	}

	return nil
}

// forUpdate returns the row locking clause supported by the driver
func (client *Connection) forUpdate() string {
	if client.driver == config.DriverPostgres {
		return " FOR UPDATE"
	}
	// SQLite serialises writers on its single connection
	return ""
}

func withParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}

// isUniqueViolation reports whether err is a unique constraint failure
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// storageError maps driver failures onto domain errors
func storageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "55P03": // lock_not_available
			return fmt.Errorf("%w: %w", shared.ErrBusy, err)
		case pqErr.Code.Class() == "40": // serialization failure, deadlock
			return fmt.Errorf("%w: %w", shared.ErrBusy, err)
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_BUSY {
		return fmt.Errorf("%w: %w", shared.ErrBusy, err)
	}

	return fmt.Errorf("%w: %w", shared.ErrStorageUnavailable, err)
}

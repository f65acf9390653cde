package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cargobot/internal/dbx"
	"github.com/dmitrijs2005/cargobot/internal/migrations"
	"github.com/dmitrijs2005/cargobot/internal/repositories/customers"
	"github.com/dmitrijs2005/cargobot/internal/repositories/feedbacks"
	"github.com/dmitrijs2005/cargobot/internal/repositories/shipments"
	"github.com/dmitrijs2005/cargobot/internal/repositories/verifications"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends repositories for one SQL dialect. Every DBTX
// handed out is wrapped by dbx.Bind so the same queries serve SQLite and
// PostgreSQL.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Customers(db dbx.DBTX) customers.Repository {
	return customers.NewSQLRepository(dbx.Bind(db, m.dialect))
}

func (m *SQLRepositoryManager) Shipments(db dbx.DBTX) shipments.Repository {
	return shipments.NewSQLRepository(dbx.Bind(db, m.dialect))
}

func (m *SQLRepositoryManager) Feedbacks(db dbx.DBTX) feedbacks.Repository {
	return feedbacks.NewSQLRepository(dbx.Bind(db, m.dialect))
}

func (m *SQLRepositoryManager) Verifications(db dbx.DBTX) verifications.Repository {
	return verifications.NewSQLRepository(dbx.Bind(db, m.dialect))
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func (m *SQLRepositoryManager) migrationsDir() string {
	if m.dialect == dbx.DialectPostgres {
		return migrations.PostgresDir
	}
	return migrations.SQLiteDir
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.migrationsDir()); err != nil {
		return err
	}
	return nil
}

// Open connects to the database, checks the connection and migrates the
// schema.
func Open(ctx context.Context, dialect dbx.Dialect, dsn string) (*sql.DB, *SQLRepositoryManager, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	m := NewSQLRepositoryManager(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, m, nil
}

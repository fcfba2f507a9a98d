package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DialectFor decide el driver por la URL: postgres:// va a pgx, el resto es un archivo sqlite.
func DialectFor(url string) Dialect {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return Postgres
	}
	return SQLite
}

var dollarArg = regexp.MustCompile(`\$(\d+)`)

// rebind pasa $N a ?N para sqlite.
func (d Dialect) rebind(q string) string {
	if d == SQLite {
		return dollarArg.ReplaceAllString(q, "?$1")
	}
	return q
}

// DB es la conexión junto con su dialecto.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open abre la conexión y verifica health.
func Open(ctx context.Context, url string) (*DB, error) {
	d := DialectFor(url)
	driver, dsn := "pgx", url
	if d == SQLite {
		driver = "sqlite"
		dsn = strings.TrimPrefix(url, "sqlite://")
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if d == SQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(1 * time.Hour)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return &DB{DB: db, Dialect: d}, nil
}

// Migrate aplica todas las migraciones embebidas.
func Migrate(db *DB) error {
	goose.SetBaseFS(migrations)
	dialect := "postgres"
	if db.Dialect == SQLite {
		dialect = "sqlite3"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.Up(db.DB, "migrations")
}

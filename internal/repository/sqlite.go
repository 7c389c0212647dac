package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/minhvu/sothuchi/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite keeps records in a single append-only table. Useful for running the
// bot without a Google service account.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("repository.SQLite couldn't create db directory: %v", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository.SQLite couldn't open database: %v", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("repository.SQLite couldn't ping database: %v", err)
	}
	if err = runMigrations(db); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Add(ctx context.Context, record *model.Record) error {
	query := `INSERT INTO records (date, user, amount, category) VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		record.Date.Format(model.DateLayout), record.User, record.Amount, record.Category)
	if err != nil {
		return fmt.Errorf("repository.SQLite couldn't insert record: %v", err)
	}
	return nil
}

func (s *SQLite) GetAll(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, user, amount, category FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository.SQLite couldn't select records: %v", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var (
			record  model.Record
			rawDate string
		)
		if err = rows.Scan(&rawDate, &record.User, &record.Amount, &record.Category); err != nil {
			return nil, fmt.Errorf("repository.SQLite couldn't scan record: %v", err)
		}
		record.Date, err = time.Parse(model.DateLayout, rawDate)
		if err != nil {
			logrus.Infof("sqlite repository skipped record with bad date %q", rawDate)
			continue
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.SQLite rows error: %v", err)
	}
	return records, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("repository.SQLite couldn't create migrate driver: %v", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("repository.SQLite couldn't create migrations source: %v", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("repository.SQLite couldn't create migrate instance: %v", err)
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("repository.SQLite couldn't run migrations: %v", err)
	}
	return nil
}

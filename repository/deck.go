package repository

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"go-tycoon/dto"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

const cardsSchema = `
CREATE TABLE IF NOT EXISTS cards (
	id INTEGER PRIMARY KEY,
	color INTEGER NOT NULL,
	points INTEGER NOT NULL,
	bonus INTEGER NOT NULL,
	coupons INTEGER NOT NULL,
	cost0 INTEGER NOT NULL,
	cost1 INTEGER NOT NULL,
	cost2 INTEGER NOT NULL,
	cost3 INTEGER NOT NULL,
	cost4 INTEGER NOT NULL,
	cost5 INTEGER NOT NULL,
	name VARCHAR(128) NOT NULL
)`

// OpenDeckDB opens the deck database. MySQL DSNs are normalised through the
// driver's parser; SQLite is pinned to a single connection so an in-memory
// database is shared by every query.
func OpenDeckDB(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		dsn = cfg.FormatDSN()
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported deck database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// DeckExporter writes the deck table to SQL.
type DeckExporter struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewDeckExporter(ctx context.Context, db *sqlx.DB, log *zap.Logger) (*DeckExporter, error) {
	if _, err := db.ExecContext(ctx, cardsSchema); err != nil {
		return nil, fmt.Errorf("migrate cards: %w", err)
	}
	return &DeckExporter{db: db, log: log}, nil
}

// Export replaces the cards table with rows in one transaction.
func (e *DeckExporter) Export(ctx context.Context, rows []dto.DeckRow) error {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return fmt.Errorf("clear cards: %w", err)
	}
	const insert = `INSERT INTO cards
		(id, color, points, bonus, coupons, cost0, cost1, cost2, cost3, cost4, cost5, name)
		VALUES (:id, :color, :points, :bonus, :coupons, :cost0, :cost1, :cost2, :cost3, :cost4, :cost5, :name)`
	for _, row := range rows {
		if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
			return fmt.Errorf("insert card %d: %w", row.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	e.log.Info("✅ deck exported", zap.Int("cards", len(rows)))
	return nil
}

func (e *DeckExporter) Load(ctx context.Context) ([]dto.DeckRow, error) {
	var rows []dto.DeckRow
	if err := e.db.SelectContext(ctx, &rows, "SELECT * FROM cards ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	return rows, nil
}

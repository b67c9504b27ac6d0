package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/conorfennell/flashcards/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB stores the collection in a SQLite database.
type DB struct {
	conn *sql.DB
}

// OpenDB creates a new database connection and ensures the schema is up to date.
func OpenDB(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Load returns every card in insertion order.
func (db *DB) Load(ctx context.Context) ([]domain.Card, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT front, back, interval, due, repetitions, ease, last_rating
		FROM cards ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		var c domain.Card
		var lastRating sql.NullInt64
		if err := rows.Scan(
			&c.Front,
			&c.Back,
			&c.Interval,
			&c.Due,
			&c.Repetitions,
			&c.Ease,
			&lastRating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		if lastRating.Valid {
			r := int(lastRating.Int64)
			c.LastRating = &r
		}
		c.NormalizeRatings()
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read card rows: %w", err)
	}
	return cards, nil
}

// Save replaces all rows with cards inside a single transaction.
func (db *DB) Save(ctx context.Context, cards []domain.Card) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("failed to clear cards: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cards (position, front, back, interval, due, repetitions, ease, last_rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range cards {
		var lastRating sql.NullInt64
		if c.LastRating != nil {
			lastRating = sql.NullInt64{Int64: int64(*c.LastRating), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			i,
			c.Front,
			c.Back,
			c.Interval,
			c.Due,
			c.Repetitions,
			c.Ease,
			lastRating,
		); err != nil {
			return fmt.Errorf("failed to insert card %q: %w", c.Front, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cards: %w", err)
	}
	return nil
}

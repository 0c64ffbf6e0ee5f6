package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"renza-entrega/internal/config"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Storage) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an already opened pool.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.mysql.EnsureSchema"

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS renza_contracts (
			id              VARCHAR(64)  NOT NULL PRIMARY KEY,
			numero_contrato VARCHAR(64)  NOT NULL DEFAULT '',
			inicio_montagem VARCHAR(64)  NOT NULL DEFAULT '',
			payload         JSON         NOT NULL,
			updated_at      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("%s: create renza_contracts: %w", op, err)
	}

	return nil
}

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"renza-entrega/internal/storage"
)

func (s *Storage) Contracts(ctx context.Context) ([]storage.Contract, error) {
	const op = "storage.mysql.Contracts"

	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM renza_contracts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var contracts []storage.Contract
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		var c storage.Contract
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, fmt.Errorf("%s: decode payload: %w", op, err)
		}
		contracts = append(contracts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contracts, nil
}

func (s *Storage) Contract(ctx context.Context, id string) (storage.Contract, error) {
	const op = "storage.mysql.Contract"

	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM renza_contracts WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Contract{}, fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrContractNotFound)
		}
		return storage.Contract{}, fmt.Errorf("%s: %w", op, err)
	}

	var c storage.Contract
	if err := json.Unmarshal(payload, &c); err != nil {
		return storage.Contract{}, fmt.Errorf("%s: decode payload: %w", op, err)
	}

	return c, nil
}

// UpdateContract locks the row, applies fn and writes the result back in the
// same transaction.
func (s *Storage) UpdateContract(ctx context.Context, id string, fn func(*storage.Contract) error) (storage.Contract, error) {
	const op = "storage.mysql.UpdateContract"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Contract{}, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var payload []byte
	err = tx.QueryRowContext(ctx, `SELECT payload FROM renza_contracts WHERE id = ? FOR UPDATE`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Contract{}, fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrContractNotFound)
		}
		return storage.Contract{}, fmt.Errorf("%s: select: %w", op, err)
	}

	var c storage.Contract
	if err := json.Unmarshal(payload, &c); err != nil {
		return storage.Contract{}, fmt.Errorf("%s: decode payload: %w", op, err)
	}

	if err := fn(&c); err != nil {
		return storage.Contract{}, err
	}
	if err := c.Validate(); err != nil {
		return storage.Contract{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := json.Marshal(c)
	if err != nil {
		return storage.Contract{}, fmt.Errorf("%s: encode payload: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE renza_contracts SET numero_contrato = ?, inicio_montagem = ?, payload = ? WHERE id = ?`,
		c.Number, c.AssemblyStart, updated, id)
	if err != nil {
		return storage.Contract{}, fmt.Errorf("%s: update id=%s: %w", op, id, err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Contract{}, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return c, nil
}

// SeedContracts inserts the given contracts when the table is empty.
func (s *Storage) SeedContracts(ctx context.Context, contracts []storage.Contract) (int, error) {
	const op = "storage.mysql.SeedContracts"

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM renza_contracts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: count: %w", op, err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO renza_contracts (id, numero_contrato, inicio_montagem, payload)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for _, c := range contracts {
		payload, err := json.Marshal(c)
		if err != nil {
			return 0, fmt.Errorf("%s: encode %s: %w", op, c.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.Number, c.AssemblyStart, payload); err != nil {
			return 0, fmt.Errorf("%s: insert %s: %w", op, c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return len(contracts), nil
}

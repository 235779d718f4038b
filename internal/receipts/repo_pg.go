package receipts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts the extraction, or overwrites the fields and timestamp of an
// existing row for the same object key. The original row ID is kept.
func (r *PGRepo) Upsert(ctx context.Context, ex Extraction) error {
	const query = `
INSERT INTO receipt_extractions (id, bucket, object_key, fields, processed_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (object_key) DO UPDATE
SET fields = EXCLUDED.fields, processed_at = EXCLUDED.processed_at`

	fields, err := json.Marshal(ex.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query, ex.ID, ex.Bucket, ex.ObjectKey, fields, ex.ProcessedAt)
	return err
}

// GetByID fetches an extraction by row ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Extraction, error) {
	const query = `
SELECT id, bucket, object_key, fields, processed_at
FROM receipt_extractions
WHERE id = $1`
	return r.scanRow(r.DB.QueryRowContext(ctx, query, id))
}

// GetByObjectKey fetches an extraction by decoded object key.
func (r *PGRepo) GetByObjectKey(ctx context.Context, objectKey string) (Extraction, error) {
	const query = `
SELECT id, bucket, object_key, fields, processed_at
FROM receipt_extractions
WHERE object_key = $1`
	return r.scanRow(r.DB.QueryRowContext(ctx, query, objectKey))
}

// List returns extractions newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Extraction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, bucket, object_key, fields, processed_at
FROM receipt_extractions
ORDER BY processed_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Extraction
	for rows.Next() {
		var ex Extraction
		var fields []byte
		if err := rows.Scan(&ex.ID, &ex.Bucket, &ex.ObjectKey, &fields, &ex.ProcessedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(fields, &ex.Fields); err != nil {
			return nil, fmt.Errorf("unmarshal fields for %s: %w", ex.ID, err)
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanRow(row *sql.Row) (Extraction, error) {
	var ex Extraction
	var fields []byte
	err := row.Scan(&ex.ID, &ex.Bucket, &ex.ObjectKey, &fields, &ex.ProcessedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Extraction{}, ErrNotFound
		}
		return Extraction{}, err
	}
	if err := json.Unmarshal(fields, &ex.Fields); err != nil {
		return Extraction{}, fmt.Errorf("unmarshal fields for %s: %w", ex.ID, err)
	}
	return ex, nil
}

var _ Repo = (*PGRepo)(nil)

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/xavierca1/lead-intake/internal/entity"
)

const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		data       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (collection, id)
	)
`

// DocumentRepository implements entity.DocumentStore on a single Postgres
// table. Set is an INSERT ... ON CONFLICT, so it is atomic per key.
type DocumentRepository struct {
	DB    *sql.DB
	NewID func() string
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{
		DB:    db,
		NewID: func() string { return uuid.New().String() },
	}
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Set(ctx context.Context, collection, key string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return &entity.StoreError{Store: "postgres", Op: "encode " + collection, Err: err}
	}

	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW(), NOW())
		ON CONFLICT (collection, id)
		DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`
	if _, err := r.DB.ExecContext(ctx, query, collection, key, string(data)); err != nil {
		return &entity.StoreError{Store: "postgres", Op: "set " + collection + "/" + key, Err: err}
	}
	return nil
}

func (r *DocumentRepository) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", &entity.StoreError{Store: "postgres", Op: "encode " + collection, Err: err}
	}

	id := r.NewID()
	query := `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`
	if _, err := r.DB.ExecContext(ctx, query, collection, id, string(data)); err != nil {
		return "", &entity.StoreError{Store: "postgres", Op: "add " + collection, Err: err}
	}
	return id, nil
}

// Get returns the stored fields of one document, or nil if it does not exist.
func (r *DocumentRepository) Get(ctx context.Context, collection, key string) (map[string]any, error) {
	var raw []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &entity.StoreError{Store: "postgres", Op: "get " + collection + "/" + key, Err: err}
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &entity.StoreError{Store: "postgres", Op: "decode " + collection + "/" + key, Err: err}
	}
	return fields, nil
}

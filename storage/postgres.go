package storage

import (
	"context"
	"database/sql"

	"career-guide/errors"
)

// CollectionsTable stores one JSONB document per collection.
const CollectionsTable = `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

// PostgresAdapter keeps collections as rows of the collections table.
type PostgresAdapter struct {
	db *sql.DB
}

func NewPostgresAdapter(db *sql.DB) *PostgresAdapter {
	return &PostgresAdapter{db: db}
}

func (p *PostgresAdapter) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	var data []byte
	err := p.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = $1`, collection).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errors.E(errors.NotFound, collection+" not found", err)
	}
	if err != nil {
		return nil, errors.E(errors.Internal, "read "+collection, err)
	}
	return data, nil
}

func (p *PostgresAdapter) Save(ctx context.Context, collection string, data []byte) error {
	if err := checkName(collection); err != nil {
		return err
	}
	// jsonb needs text input; a []byte argument would be sent as bytea
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO collections (name, data, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = CURRENT_TIMESTAMP`,
		collection, string(data))
	if err != nil {
		return errors.E(errors.Internal, "write "+collection, err)
	}
	return nil
}

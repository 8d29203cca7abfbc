package postgres

import (
	"context"
	"database/sql"
)

// Postgres is the storage layer. Methods that take a *sql.Tx are steps of a
// caller-owned transaction; the rest run on the pool directly.
type Postgres struct {
	DB *sql.DB
}

func New(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

func (p *Postgres) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return p.DB.BeginTx(ctx, nil)
}

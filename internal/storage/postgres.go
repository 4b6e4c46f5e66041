package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDriver struct {
	db   *pgxpool.Pool
	slot string
}

// NewPostgresDriver создает драйвер, хранящий снимок в строке таблицы app_snapshots.
func NewPostgresDriver(ctx context.Context, db *pgxpool.Pool, slot string) (*PostgresDriver, error) {
	_, err := db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS app_snapshots (
			slot TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		 )`,
	)
	if err != nil {
		return nil, err
	}

	return &PostgresDriver{db: db, slot: slot}, nil
}

func (d *PostgresDriver) Name() string {
	return "postgres"
}

func (d *PostgresDriver) Read(ctx context.Context) ([]byte, error) {
	var payload []byte

	err := d.db.QueryRow(ctx,
		`SELECT payload::text
		 FROM app_snapshots
		 WHERE slot = $1`,
		d.slot,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}

	return payload, nil
}

func (d *PostgresDriver) Write(ctx context.Context, payload []byte) error {
	_, err := d.db.Exec(ctx,
		`INSERT INTO app_snapshots (slot, payload, updated_at)
		 VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (slot) DO UPDATE
		 SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		d.slot, string(payload),
	)
	return err
}

func (d *PostgresDriver) Delete(ctx context.Context) error {
	_, err := d.db.Exec(ctx, `DELETE FROM app_snapshots WHERE slot = $1`, d.slot)
	return err
}

func (d *PostgresDriver) Close() error {
	d.db.Close()
	return nil
}

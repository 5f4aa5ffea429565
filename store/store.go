package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"plant-catalog/metrics"

	_ "github.com/lib/pq"
)

// PlantRow is a row of the plants table. Image and price are nullable in the
// schema; only the API path requires them.
type PlantRow struct {
	ID    int64
	Name  string
	Image sql.NullString
	Price sql.NullFloat64
}

// PostgresStore is a Store backed by Postgres.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	DB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := DB.PingContext(ctx); err != nil {
		_ = DB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{DB: DB}, nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

func (s *PostgresStore) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

// observe records how long a store operation took.
func observe(op string, start time.Time) {
	metrics.ObserveStoreQuery(op, time.Since(start))
}

// ListPlants returns every plant in insertion order.
func (s *PostgresStore) ListPlants(ctx context.Context) ([]PlantRow, error) {
	defer observe("list", time.Now())

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, image, price FROM plants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()
	out := []PlantRow{}
	for rows.Next() {
		var p PlantRow
		if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Price); err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return out, nil
}

// CreatePlant inserts a plant and returns the persisted row
func (s *PostgresStore) CreatePlant(ctx context.Context, name, image string, price float64) (PlantRow, error) {
	defer observe("create", time.Now())

	var p PlantRow
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO plants (name, image, price) VALUES ($1, $2, $3) RETURNING id, name, image, price`,
		name, image, price,
	).Scan(&p.ID, &p.Name, &p.Image, &p.Price)
	if err != nil {
		return PlantRow{}, fmt.Errorf("create plant: %w", err)
	}
	return p, nil
}

// GetPlant looks a plant up by id. A missing id is reported through the bool,
// not as an error.
func (s *PostgresStore) GetPlant(ctx context.Context, id int64) (PlantRow, bool, error) {
	defer observe("get", time.Now())

	var p PlantRow
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, image, price FROM plants WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Image, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return PlantRow{}, false, nil
	}
	if err != nil {
		return PlantRow{}, false, fmt.Errorf("get plant %d: %w", id, err)
	}
	return p, true, nil
}

// DeleteAllPlants empties the table and reports how many rows were removed.
func (s *PostgresStore) DeleteAllPlants(ctx context.Context) (int64, error) {
	defer observe("delete_all", time.Now())

	res, err := s.DB.ExecContext(ctx, `DELETE FROM plants`)
	if err != nil {
		return 0, fmt.Errorf("delete plants: %w", err)
	}
	ra, _ := res.RowsAffected()
	return ra, nil
}

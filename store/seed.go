package store

import (
	"context"
	"fmt"
	"time"
)

type seedPlant struct {
	name  string
	image string
	price float64
}

var seedPlants = []seedPlant{
	{name: "Aloe", image: "./images/aloe.jpg", price: 11.50},
	{name: "ZZ Plant", image: "./images/zz-plant.jpg", price: 25.98},
}

// Seed replaces the contents of the plants table with the demo catalog.
// Clearing and inserting happen in one transaction.
func (s *PostgresStore) Seed(ctx context.Context) ([]PlantRow, error) {
	defer observe("seed", time.Now())

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("seed: begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plants`); err != nil {
		return nil, fmt.Errorf("seed: clear plants: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO plants (name, image, price) VALUES ($1, $2, $3) RETURNING id, name, image, price`)
	if err != nil {
		return nil, fmt.Errorf("seed: prepare insert: %w", err)
	}
	defer stmt.Close()

	out := make([]PlantRow, 0, len(seedPlants))
	for _, sp := range seedPlants {
		var p PlantRow
		if err := stmt.QueryRowContext(ctx, sp.name, sp.image, sp.price).Scan(&p.ID, &p.Name, &p.Image, &p.Price); err != nil {
			return nil, fmt.Errorf("seed: insert %q: %w", sp.name, err)
		}
		out = append(out, p)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("seed: commit: %w", err)
	}
	committed = true
	return out, nil
}

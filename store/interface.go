package store

import "context"

// GET /plants - list every plant
// POST /plants - create a plant
// GET /plants/{id} - fetch one plant

type Store interface {
	ListPlants(ctx context.Context) ([]PlantRow, error)
	CreatePlant(ctx context.Context, name, image string, price float64) (PlantRow, error)
	GetPlant(ctx context.Context, id int64) (PlantRow, bool, error)

	DeleteAllPlants(ctx context.Context) (int64, error)
	Seed(ctx context.Context) ([]PlantRow, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

package service

import (
	"context"

	models "plant-catalog/model"
)

type ServiceInterface interface {
	ListPlants(ctx context.Context) ([]models.Plant, error)
	CreatePlant(ctx context.Context, name, image string, price float64) (models.Plant, error)
	GetPlant(ctx context.Context, id int64) (models.Plant, error)
	Ping(ctx context.Context) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	models "plant-catalog/model"
	"plant-catalog/store"
)

var (
	// ErrInvalidPlant is returned when create input breaks a domain rule.
	ErrInvalidPlant = errors.New("invalid plant")
	// ErrPlantNotFound is returned when no plant has the requested id.
	ErrPlantNotFound = errors.New("plant not found")
)

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

func (s *Service) ListPlants(ctx context.Context) ([]models.Plant, error) {
	rows, err := s.store.ListPlants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Plant, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDTO(r))
	}
	return out, nil
}

func (s *Service) CreatePlant(ctx context.Context, name, image string, price float64) (models.Plant, error) {
	if strings.TrimSpace(name) == "" {
		return models.Plant{}, fmt.Errorf("%w: name required", ErrInvalidPlant)
	}
	if strings.TrimSpace(image) == "" {
		return models.Plant{}, fmt.Errorf("%w: image required", ErrInvalidPlant)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return models.Plant{}, fmt.Errorf("%w: price must be a finite number", ErrInvalidPlant)
	}
	row, err := s.store.CreatePlant(ctx, name, image, price)
	if err != nil {
		return models.Plant{}, err
	}
	return toDTO(row), nil
}

func (s *Service) GetPlant(ctx context.Context, id int64) (models.Plant, error) {
	row, found, err := s.store.GetPlant(ctx, id)
	if err != nil {
		return models.Plant{}, err
	}
	if !found {
		return models.Plant{}, ErrPlantNotFound
	}
	return toDTO(row), nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// toDTO is the single row -> wire mapping used by every read path.
func toDTO(r store.PlantRow) models.Plant {
	p := models.Plant{ID: r.ID, Name: r.Name}
	if r.Image.Valid {
		img := r.Image.String
		p.Image = &img
	}
	if r.Price.Valid {
		price := r.Price.Float64
		p.Price = &price
	}
	return p
}

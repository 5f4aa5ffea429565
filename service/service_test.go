package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"reflect"
	"testing"

	models "plant-catalog/model"
	"plant-catalog/store"
)

// ---- fakeStore implementing store.Store for tests ----
type fakeStore struct {
	ListPlantsFn  func(ctx context.Context) ([]store.PlantRow, error)
	CreatePlantFn func(ctx context.Context, name, image string, price float64) (store.PlantRow, error)
	GetPlantFn    func(ctx context.Context, id int64) (store.PlantRow, bool, error)
	PingFn        func(ctx context.Context) error
}

func (f *fakeStore) ListPlants(ctx context.Context) ([]store.PlantRow, error) {
	return f.ListPlantsFn(ctx)
}
func (f *fakeStore) CreatePlant(ctx context.Context, name, image string, price float64) (store.PlantRow, error) {
	return f.CreatePlantFn(ctx, name, image, price)
}
func (f *fakeStore) GetPlant(ctx context.Context, id int64) (store.PlantRow, bool, error) {
	return f.GetPlantFn(ctx, id)
}
func (f *fakeStore) DeleteAllPlants(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeStore) Seed(ctx context.Context) ([]store.PlantRow, error) { return nil, nil }
func (f *fakeStore) Migrate(ctx context.Context) error                  { return nil }
func (f *fakeStore) Ping(ctx context.Context) error                     { return f.PingFn(ctx) }
func (f *fakeStore) Close() error                                       { return nil }

func row(id int64, name, image string, price float64) store.PlantRow {
	return store.PlantRow{
		ID:    id,
		Name:  name,
		Image: sql.NullString{String: image, Valid: true},
		Price: sql.NullFloat64{Float64: price, Valid: true},
	}
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// ---- Tests ----

func TestCreatePlantValidationAndForwarding(t *testing.T) {
	called := false
	svc := NewService(&fakeStore{
		CreatePlantFn: func(ctx context.Context, name, image string, price float64) (store.PlantRow, error) {
			called = true
			return row(42, name, image, price), nil
		},
	})
	ctx := context.Background()

	if _, err := svc.CreatePlant(ctx, "", "img", 1); !errors.Is(err, ErrInvalidPlant) {
		t.Fatalf("expected ErrInvalidPlant for empty name, got %v", err)
	}
	if _, err := svc.CreatePlant(ctx, "n", "  ", 1); !errors.Is(err, ErrInvalidPlant) {
		t.Fatalf("expected ErrInvalidPlant for blank image, got %v", err)
	}
	if _, err := svc.CreatePlant(ctx, "n", "img", math.NaN()); !errors.Is(err, ErrInvalidPlant) {
		t.Fatalf("expected ErrInvalidPlant for NaN price, got %v", err)
	}
	if called {
		t.Fatalf("store must not be called for invalid input")
	}

	p, err := svc.CreatePlant(ctx, "Live Oak", "http://x/oak.jpg", 250.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.Plant{ID: 42, Name: "Live Oak", Image: strPtr("http://x/oak.jpg"), Price: floatPtr(250.0)}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("unexpected plant. got %+v, want %+v", p, want)
	}
}

func TestCreatePlantStoreError(t *testing.T) {
	svc := NewService(&fakeStore{
		CreatePlantFn: func(ctx context.Context, name, image string, price float64) (store.PlantRow, error) {
			return store.PlantRow{}, errors.New("db down")
		},
	})
	if _, err := svc.CreatePlant(context.Background(), "n", "i", 1); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestListPlantsMapping(t *testing.T) {
	rows := []store.PlantRow{
		row(1, "Aloe", "./images/aloe.jpg", 11.50),
		{ID: 2, Name: "Douglas Fir"},
	}
	svc := NewService(&fakeStore{
		ListPlantsFn: func(ctx context.Context) ([]store.PlantRow, error) { return rows, nil },
	})

	out, err := svc.ListPlants(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []models.Plant{
		{ID: 1, Name: "Aloe", Image: strPtr("./images/aloe.jpg"), Price: floatPtr(11.50)},
		{ID: 2, Name: "Douglas Fir"},
	}
	if !reflect.DeepEqual(out, expected) {
		t.Fatalf("unexpected mapping. got %+v, want %+v", out, expected)
	}
}

func TestListPlantsEmptyIsNotNil(t *testing.T) {
	svc := NewService(&fakeStore{
		ListPlantsFn: func(ctx context.Context) ([]store.PlantRow, error) { return []store.PlantRow{}, nil },
	})
	out, err := svc.ListPlants(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestListPlantsStoreError(t *testing.T) {
	svc := NewService(&fakeStore{
		ListPlantsFn: func(ctx context.Context) ([]store.PlantRow, error) { return nil, errors.New("db down") },
	})
	if _, err := svc.ListPlants(context.Background()); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestGetPlantFoundMissingAndError(t *testing.T) {
	dbErr := errors.New("db fail")
	svc := NewService(&fakeStore{
		GetPlantFn: func(ctx context.Context, id int64) (store.PlantRow, bool, error) {
			switch id {
			case 1:
				return row(1, "Test Plant", "test_image", 10.0), true, nil
			case 2:
				return store.PlantRow{}, false, dbErr
			default:
				return store.PlantRow{}, false, nil
			}
		},
	})
	ctx := context.Background()

	p, err := svc.GetPlant(ctx, 1)
	if err != nil || p.ID != 1 || p.Name != "Test Plant" {
		t.Fatalf("unexpected result: %+v, %v", p, err)
	}
	if _, err := svc.GetPlant(ctx, 99); !errors.Is(err, ErrPlantNotFound) {
		t.Fatalf("expected ErrPlantNotFound, got %v", err)
	}
	if _, err := svc.GetPlant(ctx, 2); !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got %v", err)
	}
}

func TestPingForwards(t *testing.T) {
	svc := NewService(&fakeStore{PingFn: func(ctx context.Context) error { return errors.New("down") }})
	if err := svc.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error to propagate")
	}
}

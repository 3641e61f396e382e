package sensors_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "cattle-scoring/internal/adapters/storage/memory"
	"cattle-scoring/internal/domain/animals"
	"cattle-scoring/internal/domain/breeds"
	"cattle-scoring/internal/domain/sensors"
)

func newFixture(t *testing.T) (*sensors.Service, string) {
	t.Helper()
	ctx := context.Background()

	animalRepo := mem.NewAnimalRepo()
	breedsSvc := breeds.NewService(mem.NewBreedRepo())
	animalsSvc := animals.NewService(animalRepo, breedsSvc)
	svc := sensors.NewService(mem.NewSensorRepo(), animalsSvc)

	breed, err := breedsSvc.Create(ctx, breeds.CreateInput{Name: "JERSEY"})
	if err != nil {
		t.Fatalf("create breed: %v", err)
	}
	animal, err := animalsSvc.Create(ctx, animals.CreateInput{
		Tag:       "JR-7",
		BreedID:   breed.ID,
		BirthDate: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create animal: %v", err)
	}
	return svc, animal.ID
}

func appendAt(t *testing.T, svc *sensors.Service, animalID string, ts time.Time, temp float64) {
	t.Helper()
	_, err := svc.Append(context.Background(), animalID, sensors.AppendInput{
		Timestamp:   &ts,
		Temperature: &temp,
	})
	if err != nil {
		t.Fatalf("append at %v: %v", ts, err)
	}
}

func TestWindow_DefaultExcludesOldReadings(t *testing.T) {
	svc, animalID := newFixture(t)
	now := time.Now()

	appendAt(t, svc, animalID, now.Add(-25*time.Hour), 38.2) // fuera
	appendAt(t, svc, animalID, now.Add(-23*time.Hour), 38.5) // dentro
	appendAt(t, svc, animalID, now.Add(-1*time.Hour), 39.0)  // dentro

	items, err := svc.Window(context.Background(), animalID, 0)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 readings in the default window, got %d", len(items))
	}
	// Ascendente por tiempo.
	if !items[0].Timestamp.Before(items[1].Timestamp) {
		t.Fatalf("readings out of order: %v then %v", items[0].Timestamp, items[1].Timestamp)
	}
	if items[0].Temperature == nil || *items[0].Temperature != 38.5 {
		t.Fatalf("unexpected first reading: %+v", items[0])
	}
}

func TestWindow_CustomAndCapped(t *testing.T) {
	svc, animalID := newFixture(t)
	now := time.Now()

	appendAt(t, svc, animalID, now.Add(-30*time.Hour), 38.1)
	appendAt(t, svc, animalID, now.Add(-2*time.Hour), 38.9)

	items, err := svc.Window(context.Background(), animalID, 48*time.Hour)
	if err != nil {
		t.Fatalf("window 48h: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected both readings in 48h window, got %d", len(items))
	}

	// Pedir más del máximo recorta a 7 días, no falla.
	if _, err := svc.Window(context.Background(), animalID, 30*24*time.Hour); err != nil {
		t.Fatalf("window above max: %v", err)
	}
}

func TestAppend_UnknownAnimal(t *testing.T) {
	svc, _ := newFixture(t)

	temp := 38.0
	_, err := svc.Append(context.Background(), "ghost", sensors.AppendInput{Temperature: &temp})
	if !errors.Is(err, sensors.ErrAnimalNotFound) {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}

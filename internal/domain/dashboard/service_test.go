package dashboard_test

import (
	"context"
	"math"
	"testing"
	"time"

	mem "cattle-scoring/internal/adapters/storage/memory"
	"cattle-scoring/internal/domain/animals"
	"cattle-scoring/internal/domain/breeds"
	"cattle-scoring/internal/domain/dashboard"
)

const eps = 1e-9

type fixture struct {
	dashboard *dashboard.Service
	animals   *animals.Service
	breeds    *breeds.Service
	grades    *mem.GradeRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	animalRepo := mem.NewAnimalRepo()
	gradeRepo := mem.NewGradeRepo(animalRepo)

	breedsSvc := breeds.NewService(mem.NewBreedRepo())
	animalsSvc := animals.NewService(animalRepo, breedsSvc)

	return fixture{
		dashboard: dashboard.NewService(animalsSvc, breedsSvc),
		animals:   animalsSvc,
		breeds:    breedsSvc,
		grades:    gradeRepo,
	}
}

func (fx fixture) addScoredAnimal(t *testing.T, breedID, tag string, score float64, scoredOn time.Time) animals.Animal {
	t.Helper()
	ctx := context.Background()

	a, err := fx.animals.Create(ctx, animals.CreateInput{
		Tag:       tag,
		Name:      "vaca " + tag,
		BreedID:   breedID,
		BirthDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create animal %s: %v", tag, err)
	}
	if err := fx.grades.SaveBatch(ctx, a.ID, nil, score, scoredOn); err != nil {
		t.Fatalf("apply score to %s: %v", tag, err)
	}
	return a
}

func TestDashboard_EmptyRegistry(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	avgs, err := fx.dashboard.AverageByBreed(ctx)
	if err != nil {
		t.Fatalf("average by breed: %v", err)
	}
	if len(avgs) != 0 {
		t.Fatalf("expected empty averages, got %d", len(avgs))
	}

	recent, err := fx.dashboard.RecentScores(ctx)
	if err != nil {
		t.Fatalf("recent scores: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected empty recents, got %d", len(recent))
	}
}

func TestDashboard_AveragesGroupedByBreed(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	holstein, err := fx.breeds.Create(ctx, breeds.CreateInput{Name: "HOLSTEIN"})
	if err != nil {
		t.Fatalf("create breed: %v", err)
	}
	jersey, err := fx.breeds.Create(ctx, breeds.CreateInput{Name: "JERSEY"})
	if err != nil {
		t.Fatalf("create breed: %v", err)
	}

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	fx.addScoredAnimal(t, holstein.ID, "H-1", 80, day)
	fx.addScoredAnimal(t, holstein.ID, "H-2", 90, day)
	fx.addScoredAnimal(t, jersey.ID, "J-1", 60, day)

	// Un ejemplar sin calificar no aporta al promedio.
	if _, err := fx.animals.Create(ctx, animals.CreateInput{
		Tag:       "H-3",
		BreedID:   holstein.ID,
		BirthDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create unscored animal: %v", err)
	}

	avgs, err := fx.dashboard.AverageByBreed(ctx)
	if err != nil {
		t.Fatalf("average by breed: %v", err)
	}
	if len(avgs) != 2 {
		t.Fatalf("expected 2 breeds, got %d", len(avgs))
	}
	// Ordenado por nombre de raza.
	if avgs[0].BreedName != "HOLSTEIN" || avgs[1].BreedName != "JERSEY" {
		t.Fatalf("unexpected order: %q, %q", avgs[0].BreedName, avgs[1].BreedName)
	}
	if math.Abs(avgs[0].AverageScore-85.0) > eps {
		t.Fatalf("expected HOLSTEIN average 85, got %v", avgs[0].AverageScore)
	}
	if math.Abs(avgs[1].AverageScore-60.0) > eps {
		t.Fatalf("expected JERSEY average 60, got %v", avgs[1].AverageScore)
	}
}

func TestDashboard_RecentScoresCapAndOrder(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	breed, err := fx.breeds.Create(ctx, breeds.CreateInput{Name: "BROWN SWISS"})
	if err != nil {
		t.Fatalf("create breed: %v", err)
	}

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var last animals.Animal
	for i := 0; i < 12; i++ {
		last = fx.addScoredAnimal(t, breed.ID, tagN(i), float64(50+i), base.AddDate(0, 0, i))
	}

	recent, err := fx.dashboard.RecentScores(ctx)
	if err != nil {
		t.Fatalf("recent scores: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(recent))
	}
	// Más reciente primero.
	if recent[0].ID != last.ID {
		t.Fatalf("expected most recently scored first, got %q", recent[0].Tag)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Date.After(recent[i-1].Date) {
			t.Fatalf("recents out of order at %d", i)
		}
	}
}

func tagN(i int) string {
	return "BS-" + string(rune('A'+i))
}

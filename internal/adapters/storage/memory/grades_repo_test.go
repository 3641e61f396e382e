package memory

import (
	"context"
	"testing"
	"time"

	"cattle-scoring/internal/domain/animals"
	"cattle-scoring/internal/domain/scoring"
)

func newAnimal(t *testing.T, repo *AnimalRepo, id string) {
	t.Helper()
	err := repo.Create(context.Background(), animals.Animal{
		ID:        id,
		Tag:       "T-" + id,
		BreedID:   "breed-1",
		BirthDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("create animal: %v", err)
	}
}

func TestSaveBatch_DeletedAnimalWritesNothing(t *testing.T) {
	animalRepo := NewAnimalRepo()
	gradeRepo := NewGradeRepo(animalRepo)
	animalRepo.OnDelete(gradeRepo.DeleteByAnimal)
	ctx := context.Background()

	newAnimal(t, animalRepo, "a-1")
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	if err := gradeRepo.SaveBatch(ctx, "a-1", []scoring.Grade{
		{ID: "g-1", AnimalID: "a-1", CharacteristicID: "c-1", Score: 9, ScoredOn: day},
	}, 100, day); err != nil {
		t.Fatalf("save batch: %v", err)
	}

	if err := animalRepo.Delete(ctx, "a-1"); err != nil {
		t.Fatalf("delete animal: %v", err)
	}

	// La cascada barrió las calificaciones del ejemplar.
	grades, err := gradeRepo.ListByAnimal(ctx, "a-1")
	if err != nil {
		t.Fatalf("list grades: %v", err)
	}
	if len(grades) != 0 {
		t.Fatalf("expected cascade to remove grades, got %d", len(grades))
	}

	// Un lote contra un ejemplar borrado falla sin dejar huérfanos.
	err = gradeRepo.SaveBatch(ctx, "a-1", []scoring.Grade{
		{ID: "g-2", AnimalID: "a-1", CharacteristicID: "c-1", Score: 7, ScoredOn: day},
	}, 77.8, day)
	if err == nil {
		t.Fatal("expected error saving batch for deleted animal")
	}
	grades, _ = gradeRepo.ListByAnimal(ctx, "a-1")
	if len(grades) != 0 {
		t.Fatalf("expected no orphan grades, got %d", len(grades))
	}
}

func TestSaveBatch_UpsertKeepsRowIdentity(t *testing.T) {
	animalRepo := NewAnimalRepo()
	gradeRepo := NewGradeRepo(animalRepo)
	ctx := context.Background()

	newAnimal(t, animalRepo, "a-1")
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	if err := gradeRepo.SaveBatch(ctx, "a-1", []scoring.Grade{
		{ID: "g-1", AnimalID: "a-1", CharacteristicID: "c-1", Score: 5, ScoredOn: day, CreatedAt: created},
	}, 55.6, day); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if err := gradeRepo.SaveBatch(ctx, "a-1", []scoring.Grade{
		{ID: "g-2", AnimalID: "a-1", CharacteristicID: "c-1", Score: 9, ScoredOn: day, CreatedAt: created.Add(time.Hour)},
	}, 100, day); err != nil {
		t.Fatalf("second batch: %v", err)
	}

	grades, err := gradeRepo.ListByAnimal(ctx, "a-1")
	if err != nil {
		t.Fatalf("list grades: %v", err)
	}
	if len(grades) != 1 {
		t.Fatalf("expected single row after upsert, got %d", len(grades))
	}
	if grades[0].ID != "g-1" || !grades[0].CreatedAt.Equal(created) {
		t.Fatalf("expected original identity preserved, got %+v", grades[0])
	}
	if grades[0].Score != 9 {
		t.Fatalf("expected new score to win, got %v", grades[0].Score)
	}
}

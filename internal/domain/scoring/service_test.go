package scoring_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	mem "cattle-scoring/internal/adapters/storage/memory"
	"cattle-scoring/internal/domain/animals"
	"cattle-scoring/internal/domain/breeds"
	"cattle-scoring/internal/domain/scoring"
	"cattle-scoring/internal/domain/templates"
)

const eps = 1e-9

type fixture struct {
	scoring   *scoring.Service
	animals   *animals.Service
	templates *templates.Service
	grades    *mem.GradeRepo

	animalID string
	// Característica de 9 puntos en categoría de ponderación 40.
	charMamario string
	// Característica de 9 puntos en categoría de ponderación 20.
	charFuerza string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	animalRepo := mem.NewAnimalRepo()
	gradeRepo := mem.NewGradeRepo(animalRepo)

	breedsSvc := breeds.NewService(mem.NewBreedRepo())
	templatesSvc := templates.NewService(mem.NewTemplateRepo())
	animalsSvc := animals.NewService(animalRepo, breedsSvc)
	svc := scoring.NewService(gradeRepo, animalsSvc, templatesSvc)

	breed, err := breedsSvc.Create(ctx, breeds.CreateInput{Name: "HOLSTEIN"})
	if err != nil {
		t.Fatalf("create breed: %v", err)
	}

	catMamario, err := templatesSvc.CreateCategory(ctx, templates.CreateCategoryInput{
		BreedID: breed.ID, Name: "Sistema Mamario", Weight: 40,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	catFuerza, err := templatesSvc.CreateCategory(ctx, templates.CreateCategoryInput{
		BreedID: breed.ID, Name: "Fuerza Lechera", Weight: 20,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	chMamario, err := templatesSvc.CreateCharacteristic(ctx, templates.CreateCharacteristicInput{
		CategoryID: catMamario.ID, Name: "Altura de la ubre posterior", IdealScore: 9, RangeMin: 7, RangeMax: 9,
	})
	if err != nil {
		t.Fatalf("create characteristic: %v", err)
	}
	chFuerza, err := templatesSvc.CreateCharacteristic(ctx, templates.CreateCharacteristicInput{
		CategoryID: catFuerza.ID, Name: "Angularidad", IdealScore: 9, RangeMin: 7, RangeMax: 9,
	})
	if err != nil {
		t.Fatalf("create characteristic: %v", err)
	}

	animal, err := animalsSvc.Create(ctx, animals.CreateInput{
		Tag:       "AR-001",
		Name:      "Margarita",
		BreedID:   breed.ID,
		BirthDate: time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create animal: %v", err)
	}

	return fixture{
		scoring:     svc,
		animals:     animalsSvc,
		templates:   templatesSvc,
		grades:      gradeRepo,
		animalID:    animal.ID,
		charMamario: chMamario.ID,
		charFuerza:  chFuerza.ID,
	}
}

func TestSubmit_PerfectScoresGiveHundred(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	total, err := fx.scoring.Submit(ctx, fx.animalID, "eval-1", []scoring.ScoreItem{
		{CharacteristicID: fx.charMamario, Score: 9},
		{CharacteristicID: fx.charFuerza, Score: 9},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if math.Abs(total-100.0) > eps {
		t.Fatalf("expected 100, got %v", total)
	}

	animal, err := fx.animals.GetByID(ctx, fx.animalID)
	if err != nil {
		t.Fatalf("get animal: %v", err)
	}
	if animal.ScoreTotal == nil || math.Abs(*animal.ScoreTotal-100.0) > eps {
		t.Fatalf("expected animal score 100, got %v", animal.ScoreTotal)
	}
	if animal.LastScoreDate == nil {
		t.Fatal("expected last score date to be set")
	}
}

func TestSubmit_WeightedAverage(t *testing.T) {
	fx := newFixture(t)

	// (6/9*40 + 6/9*20) / 60 * 100 = 66.666...
	total, err := fx.scoring.Submit(context.Background(), fx.animalID, "eval-1", []scoring.ScoreItem{
		{CharacteristicID: fx.charMamario, Score: 6},
		{CharacteristicID: fx.charFuerza, Score: 6},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := 6.0 / 9.0 * 100
	if math.Abs(total-want) > eps {
		t.Fatalf("expected %v, got %v", want, total)
	}
}

func TestSubmit_DistinctFractionsAreWeighted(t *testing.T) {
	fx := newFixture(t)

	// Mitad del ideal en la categoría de ponderación 40 y el ideal pleno
	// en la de 20. Una media simple de fracciones daría 75; la agregación
	// ponderada da (0.5*40 + 1.0*20) / 60 * 100 = 66.67.
	total, err := fx.scoring.Submit(context.Background(), fx.animalID, "eval-1", []scoring.ScoreItem{
		{CharacteristicID: fx.charMamario, Score: 4.5},
		{CharacteristicID: fx.charFuerza, Score: 9},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := (0.5*40 + 1.0*20) / 60.0 * 100
	if math.Abs(total-want) > eps {
		t.Fatalf("expected %v, got %v", want, total)
	}
}

func TestSubmit_PartialBatchRescalesDenominator(t *testing.T) {
	fx := newFixture(t)

	// Solo una categoría enviada: el denominador es 40, no 60.
	total, err := fx.scoring.Submit(context.Background(), fx.animalID, "eval-1", []scoring.ScoreItem{
		{CharacteristicID: fx.charMamario, Score: 9},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if math.Abs(total-100.0) > eps {
		t.Fatalf("expected 100 for partial perfect batch, got %v", total)
	}
}

func TestSubmit_SameDayResubmissionOverwrites(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if _, err := fx.scoring.Submit(ctx, fx.animalID, "eval-1", []scoring.ScoreItem{
		{CharacteristicID: fx.charMamario, Score: 5},
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	total, err := fx.scoring.Submit(ctx, fx.animalID, "eval-2", []scoring.ScoreItem{
		{CharacteristicID: fx.charMamario, Score: 9},
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if math.Abs(total-100.0) > eps {
		t.Fatalf("expected 100 after resubmission, got %v", total)
	}

	grades, err := fx.grades.ListByAnimal(ctx, fx.animalID)
	if err != nil {
		t.Fatalf("list grades: %v", err)
	}
	if len(grades) != 1 {
		t.Fatalf("expected a single grade row per characteristic and day, got %d", len(grades))
	}
	if math.Abs(grades[0].Score-9.0) > eps {
		t.Fatalf("expected the second value to win, got %v", grades[0].Score)
	}
	if grades[0].EvaluatorID != "eval-2" {
		t.Fatalf("expected evaluator of the resubmission, got %q", grades[0].EvaluatorID)
	}

	animal, _ := fx.animals.GetByID(ctx, fx.animalID)
	if animal.ScoreTotal == nil || math.Abs(*animal.ScoreTotal-100.0) > eps {
		t.Fatalf("expected animal score 100 after resubmission, got %v", animal.ScoreTotal)
	}
}

func TestSubmit_UnknownAnimal(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.scoring.Submit(context.Background(), "ghost", "eval-1", []scoring.ScoreItem{
		{CharacteristicID: fx.charMamario, Score: 9},
	})
	if !errors.Is(err, scoring.ErrAnimalNotFound) {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}

func TestSubmit_UnknownCharacteristicAbortsBatch(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.scoring.Submit(ctx, fx.animalID, "eval-1", []scoring.ScoreItem{
		{CharacteristicID: fx.charMamario, Score: 9},
		{CharacteristicID: "bogus", Score: 9},
	})
	if !errors.Is(err, scoring.ErrCharacteristicNotFound) {
		t.Fatalf("expected ErrCharacteristicNotFound, got %v", err)
	}

	// Todo o nada: la característica válida del lote tampoco se escribió.
	grades, err := fx.grades.ListByAnimal(ctx, fx.animalID)
	if err != nil {
		t.Fatalf("list grades: %v", err)
	}
	if len(grades) != 0 {
		t.Fatalf("expected no grades written, got %d", len(grades))
	}

	animal, _ := fx.animals.GetByID(ctx, fx.animalID)
	if animal.ScoreTotal != nil {
		t.Fatalf("expected animal score untouched, got %v", *animal.ScoreTotal)
	}
}

func TestSubmit_EmptyBatchScoresZero(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	total, err := fx.scoring.Submit(ctx, fx.animalID, "eval-1", []scoring.ScoreItem{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 for empty batch, got %v", total)
	}

	// El ejemplar igual se actualiza: score 0 y fecha del día.
	animal, _ := fx.animals.GetByID(ctx, fx.animalID)
	if animal.ScoreTotal == nil || *animal.ScoreTotal != 0 {
		t.Fatalf("expected animal score 0, got %v", animal.ScoreTotal)
	}
	if animal.LastScoreDate == nil {
		t.Fatal("expected last score date to be set")
	}
}

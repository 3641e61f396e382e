package dashboard

import (
	"context"
	"sort"
	"time"

	"cattle-scoring/internal/domain/animals"
	"cattle-scoring/internal/domain/breeds"
)

// recentLimit es el corte fijo de "calificados recientemente".
const recentLimit = 10

// BreedScore es el promedio de score de una raza.
type BreedScore struct {
	BreedName    string
	AverageScore float64
}

// RecentAnimal es un ejemplar calificado recientemente.
type RecentAnimal struct {
	ID       string
	Name     string
	Tag      string
	Score    float64
	Date     time.Time
	PhotoURL string
}

// Service calcula los agregados del dashboard bajo demanda. Solo lectura:
// dos consultas independientes sobre el registro de ejemplares, sin caché
// ni paginación.
type Service struct {
	animals *animals.Service
	breeds  *breeds.Service
}

func NewService(animalsSvc *animals.Service, breedsSvc *breeds.Service) *Service {
	return &Service{
		animals: animalsSvc,
		breeds:  breedsSvc,
	}
}

// AverageByBreed promedia el score_total no nulo agrupado por raza,
// ordenado por nombre de raza. Sin filas coincidentes devuelve una
// colección vacía, nunca un error.
func (s *Service) AverageByBreed(ctx context.Context) ([]BreedScore, error) {
	averages, err := s.animals.AverageScoreByBreed(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]BreedScore, 0, len(averages))
	for _, avg := range averages {
		name := avg.BreedID
		if b, err := s.breeds.GetByID(ctx, avg.BreedID); err == nil {
			name = b.Name
		}
		out = append(out, BreedScore{
			BreedName:    name,
			AverageScore: avg.Average,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].BreedName < out[j].BreedName })
	return out, nil
}

// RecentScores devuelve hasta diez ejemplares con last_score_date no nulo,
// más recientes primero.
func (s *Service) RecentScores(ctx context.Context) ([]RecentAnimal, error) {
	items, err := s.animals.RecentlyScored(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	out := make([]RecentAnimal, 0, len(items))
	for _, a := range items {
		if a.ScoreTotal == nil || a.LastScoreDate == nil {
			continue
		}
		out = append(out, RecentAnimal{
			ID:       a.ID,
			Name:     a.Name,
			Tag:      a.Tag,
			Score:    *a.ScoreTotal,
			Date:     *a.LastScoreDate,
			PhotoURL: a.PhotoURL,
		})
	}
	return out, nil
}

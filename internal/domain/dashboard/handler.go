package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cattle-scoring/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard/scores", scoresHandler(svc))
}

type breedScoreResponse struct {
	BreedName    string  `json:"breedName"`
	AverageScore float64 `json:"averageScore"`
}

type recentScoreResponse struct {
	ID               string  `json:"id"`
	AnimalName       string  `json:"animalName"`
	AnimalIdentifier string  `json:"animalIdentifier"`
	Score            float64 `json:"score"`
	Date             string  `json:"date"`
	AnimalPhotoURL   string  `json:"animalPhotoUrl"`
}

type dashboardResponse struct {
	AverageScoresByBreed []breedScoreResponse  `json:"averageScoresByBreed"`
	RecentScores         []recentScoreResponse `json:"recentScores"`
}

// scoresHandler godoc
// @Summary Agregados de calificación para el dashboard
// @Description Promedio de score por raza y los diez ejemplares calificados más recientemente.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dashboardResponse
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard/scores [get]
func scoresHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		averages, err := svc.AverageByBreed(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		recent, err := svc.RecentScores(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := dashboardResponse{
			AverageScoresByBreed: make([]breedScoreResponse, 0, len(averages)),
			RecentScores:         make([]recentScoreResponse, 0, len(recent)),
		}
		for _, avg := range averages {
			out.AverageScoresByBreed = append(out.AverageScoresByBreed, breedScoreResponse{
				BreedName:    avg.BreedName,
				AverageScore: avg.AverageScore,
			})
		}
		for _, a := range recent {
			out.RecentScores = append(out.RecentScores, recentScoreResponse{
				ID:               a.ID,
				AnimalName:       a.Name,
				AnimalIdentifier: a.Tag,
				Score:            a.Score,
				Date:             a.Date.Format("2006-01-02"),
				AnimalPhotoURL:   a.PhotoURL,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

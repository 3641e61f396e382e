package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-scoring/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Delete("/{animalID}", deleteAnimalHandler(svc))
	})
}

type createAnimalRequest struct {
	Tag       string   `json:"tag"`
	Name      string   `json:"name"`
	BreedID   string   `json:"breed_id"`
	BirthDate string   `json:"birth_date"` // YYYY-MM-DD
	Weight    *float64 `json:"weight"`
	Height    *float64 `json:"height"`
	PhotoURL  string   `json:"photo_url"`
}

type animalResponse struct {
	ID            string    `json:"id"`
	Tag           string    `json:"tag"`
	Name          string    `json:"name"`
	BreedID       string    `json:"breed_id"`
	BirthDate     string    `json:"birth_date"`
	Weight        *float64  `json:"weight,omitempty"`
	Height        *float64  `json:"height,omitempty"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	ScoreTotal    *float64  `json:"score_total"`
	LastScoreDate *string   `json:"last_score_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// createAnimalHandler godoc
// @Summary Registrar ejemplar
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del ejemplar; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / birth_date inválida / unknown breed"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "tag already registered"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Tag:       req.Tag,
			Name:      req.Name,
			BreedID:   req.BreedID,
			BirthDate: bd,
			Weight:    req.Weight,
			Height:    req.Height,
			PhotoURL:  req.PhotoURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicateTag):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrUnknownBreed), errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar ejemplares
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAnimalHandler godoc
// @Summary Obtener ejemplar
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del ejemplar"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// deleteAnimalHandler godoc
// @Summary Eliminar ejemplar
// @Description Arrastra calificaciones, lecturas de sensores y alertas del ejemplar.
// @Tags animals
// @Param animalID path string true "ID del ejemplar"
// @Success 204 {string} string "sin contenido"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [delete]
func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		if _, err := svc.GetByID(r.Context(), animalID); err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		if err := svc.Delete(r.Context(), animalID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toAnimalResponse(a Animal) animalResponse {
	var lastScore *string
	if a.LastScoreDate != nil {
		s := a.LastScoreDate.Format("2006-01-02")
		lastScore = &s
	}
	return animalResponse{
		ID:            a.ID,
		Tag:           a.Tag,
		Name:          a.Name,
		BreedID:       a.BreedID,
		BirthDate:     a.BirthDate.Format("2006-01-02"),
		Weight:        a.Weight,
		Height:        a.Height,
		PhotoURL:      a.PhotoURL,
		ScoreTotal:    a.ScoreTotal,
		LastScoreDate: lastScore,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package breeds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-scoring/internal/middleware"
)

// AnimalChecker expone si una raza está referenciada por algún ejemplar.
// Es una interfaz local para evitar ciclos de imports (breeds <-> animals).
type AnimalChecker interface {
	ExistsByBreed(ctx context.Context, breedID string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, animalsCheck AnimalChecker) {
	r.Route("/breeds", func(br chi.Router) {
		br.Post("/", createBreedHandler(svc))
		br.Get("/", listBreedsHandler(svc))
		br.Get("/{breedID}", getBreedHandler(svc))
		br.Delete("/{breedID}", deleteBreedHandler(svc, animalsCheck))
	})
}

type createBreedRequest struct {
	Name        string   `json:"name"`
	WeightMin   *float64 `json:"weight_min"`
	WeightMax   *float64 `json:"weight_max"`
	IdealHeight *float64 `json:"ideal_height"`
	CoatColors  []string `json:"coat_colors"`
}

type breedResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	WeightMin   *float64  `json:"weight_min,omitempty"`
	WeightMax   *float64  `json:"weight_max,omitempty"`
	IdealHeight *float64  `json:"ideal_height,omitempty"`
	CoatColors  []string  `json:"coat_colors"`
	CreatedAt   time.Time `json:"created_at"`
}

// createBreedHandler godoc
// @Summary Crear raza
// @Tags breeds
// @Accept json
// @Produce json
// @Param payload body createBreedRequest true "Datos de la raza"
// @Success 201 {object} breedResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "breed name already exists"
// @Router /breeds [post]
func createBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createBreedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			WeightMin:   req.WeightMin,
			WeightMax:   req.WeightMax,
			IdealHeight: req.IdealHeight,
			CoatColors:  req.CoatColors,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrDuplicateName):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toBreedResponse(b))
	}
}

// listBreedsHandler godoc
// @Summary Listar razas
// @Tags breeds
// @Produce json
// @Success 200 {array} breedResponse
// @Failure 401 {string} string "unauthorized"
// @Router /breeds [get]
func listBreedsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]breedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBreedResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getBreedHandler godoc
// @Summary Obtener raza
// @Tags breeds
// @Produce json
// @Param breedID path string true "ID de la raza"
// @Success 200 {object} breedResponse
// @Failure 404 {string} string "breed not found"
// @Router /breeds/{breedID} [get]
func getBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "breedID"))
		if err != nil {
			http.Error(w, "breed not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toBreedResponse(b))
	}
}

// deleteBreedHandler godoc
// @Summary Eliminar raza
// @Description Falla con 409 si la raza tiene ejemplares registrados.
// @Tags breeds
// @Param breedID path string true "ID de la raza"
// @Success 204 {string} string "sin contenido"
// @Failure 404 {string} string "breed not found"
// @Failure 409 {string} string "breed has animals"
// @Router /breeds/{breedID} [delete]
func deleteBreedHandler(svc *Service, animalsCheck AnimalChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		breedID := chi.URLParam(r, "breedID")
		if _, err := svc.GetByID(r.Context(), breedID); err != nil {
			http.Error(w, "breed not found", http.StatusNotFound)
			return
		}

		// Borrar una raza con ejemplares está bloqueado (la FK es RESTRICT;
		// este chequeo da un 409 legible en vez de un error de driver).
		inUse, err := animalsCheck.ExistsByBreed(r.Context(), breedID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if inUse {
			http.Error(w, "breed has animals", http.StatusConflict)
			return
		}

		if err := svc.Delete(r.Context(), breedID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toBreedResponse(b Breed) breedResponse {
	colors := b.CoatColors
	if colors == nil {
		colors = []string{}
	}
	return breedResponse{
		ID:          b.ID,
		Name:        b.Name,
		WeightMin:   b.WeightMin,
		WeightMax:   b.WeightMax,
		IdealHeight: b.IdealHeight,
		CoatColors:  colors,
		CreatedAt:   b.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package templates

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-scoring/internal/domain/breeds"
	"cattle-scoring/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, breedsSvc *breeds.Service) {
	r.Route("/categories", func(cr chi.Router) {
		cr.Post("/", createCategoryHandler(svc, breedsSvc))
		cr.Post("/{categoryID}/characteristics", createCharacteristicHandler(svc))
	})

	// Plantilla completa de una raza (categorías + características anidadas).
	r.Get("/breeds/{breedID}/template", breedTemplateHandler(svc, breedsSvc))
}

type createCategoryRequest struct {
	BreedID    string `json:"breed_id"`
	Name       string `json:"name"`
	Weight     int    `json:"weight"`
	IdealTotal int    `json:"ideal_total"`
}

type categoryResponse struct {
	ID         string    `json:"id"`
	BreedID    string    `json:"breed_id"`
	Name       string    `json:"name"`
	Weight     int       `json:"weight"`
	IdealTotal int       `json:"ideal_total"`
	CreatedAt  time.Time `json:"created_at"`
}

type createCharacteristicRequest struct {
	Name       string  `json:"name"`
	IdealScore int     `json:"ideal_score"`
	RangeMin   float64 `json:"range_min"`
	RangeMax   float64 `json:"range_max"`
}

type characteristicResponse struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	IdealScore int     `json:"ideal_score"`
	RangeMin   float64 `json:"range_min"`
	RangeMax   float64 `json:"range_max"`
}

type templateCategoryResponse struct {
	categoryResponse
	Characteristics []characteristicResponse `json:"characteristics"`
}

type templateResponse struct {
	BreedID    string                     `json:"breed_id"`
	BreedName  string                     `json:"breed_name"`
	Categories []templateCategoryResponse `json:"categories"`
}

// createCategoryHandler godoc
// @Summary Crear categoría de puntuación
// @Description La categoría nace ligada a una raza existente. weight es el porcentaje (1-100).
// @Tags templates
// @Accept json
// @Produce json
// @Param payload body createCategoryRequest true "Datos de la categoría"
// @Success 201 {object} categoryResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "breed not found"
// @Router /categories [post]
func createCategoryHandler(svc *Service, breedsSvc *breeds.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if _, err := breedsSvc.GetByID(r.Context(), req.BreedID); err != nil {
			http.Error(w, "breed not found", http.StatusNotFound)
			return
		}

		c, err := svc.CreateCategory(r.Context(), CreateCategoryInput{
			BreedID:    req.BreedID,
			Name:       req.Name,
			Weight:     req.Weight,
			IdealTotal: req.IdealTotal,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toCategoryResponse(c))
	}
}

// createCharacteristicHandler godoc
// @Summary Crear característica
// @Description ideal_score debe ser positivo; range_min <= range_max. El rango es guía de captura, no se valida al calificar.
// @Tags templates
// @Accept json
// @Produce json
// @Param categoryID path string true "ID de la categoría"
// @Param payload body createCharacteristicRequest true "Datos de la característica"
// @Success 201 {object} characteristicResponse
// @Failure 400 {string} string "invalid json / ideal_score debe ser positivo"
// @Failure 404 {string} string "category not found"
// @Router /categories/{categoryID}/characteristics [post]
func createCharacteristicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		categoryID := chi.URLParam(r, "categoryID")
		if _, err := svc.GetCategory(r.Context(), categoryID); err != nil {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}

		var req createCharacteristicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ch, err := svc.CreateCharacteristic(r.Context(), CreateCharacteristicInput{
			CategoryID: categoryID,
			Name:       req.Name,
			IdealScore: req.IdealScore,
			RangeMin:   req.RangeMin,
			RangeMax:   req.RangeMax,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toCharacteristicResponse(ch))
	}
}

// breedTemplateHandler godoc
// @Summary Plantilla de calificación de una raza
// @Tags templates
// @Produce json
// @Param breedID path string true "ID de la raza"
// @Success 200 {object} templateResponse
// @Failure 404 {string} string "breed not found"
// @Router /breeds/{breedID}/template [get]
func breedTemplateHandler(svc *Service, breedsSvc *breeds.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		breedID := chi.URLParam(r, "breedID")
		b, err := breedsSvc.GetByID(r.Context(), breedID)
		if err != nil {
			http.Error(w, "breed not found", http.StatusNotFound)
			return
		}

		tpl, err := svc.TemplateForBreed(r.Context(), b.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := templateResponse{
			BreedID:    b.ID,
			BreedName:  b.Name,
			Categories: make([]templateCategoryResponse, 0, len(tpl)),
		}
		for _, item := range tpl {
			chars := make([]characteristicResponse, 0, len(item.Characteristics))
			for _, ch := range item.Characteristics {
				chars = append(chars, toCharacteristicResponse(ch))
			}
			out.Categories = append(out.Categories, templateCategoryResponse{
				categoryResponse: toCategoryResponse(item.Category),
				Characteristics:  chars,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toCategoryResponse(c Category) categoryResponse {
	return categoryResponse{
		ID:         c.ID,
		BreedID:    c.BreedID,
		Name:       c.Name,
		Weight:     c.Weight,
		IdealTotal: c.IdealTotal,
		CreatedAt:  c.CreatedAt,
	}
}

func toCharacteristicResponse(ch Characteristic) characteristicResponse {
	return characteristicResponse{
		ID:         ch.ID,
		CategoryID: ch.CategoryID,
		Name:       ch.Name,
		IdealScore: ch.IdealScore,
		RangeMin:   ch.RangeMin,
		RangeMax:   ch.RangeMax,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

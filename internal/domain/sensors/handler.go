package sensors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-scoring/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals/{animalID}/sensor-data", func(sr chi.Router) {
		sr.Post("/", appendReadingHandler(svc))
		sr.Get("/", listReadingsHandler(svc))
	})
}

type appendReadingRequest struct {
	Timestamp   string   `json:"timestamp"` // RFC3339 opcional; vacío = ahora
	Temperature *float64 `json:"temperatura"`
	Activity    *float64 `json:"actividad"`
}

type readingResponse struct {
	ID          string    `json:"id"`
	AnimalID    string    `json:"animal_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperatura"`
	Activity    *float64  `json:"actividad"`
}

// appendReadingHandler godoc
// @Summary Registrar lectura de sensores
// @Tags sensors
// @Accept json
// @Produce json
// @Param animalID path string true "ID del ejemplar"
// @Param payload body appendReadingRequest true "Lectura; timestamp RFC3339 opcional"
// @Success 201 {object} readingResponse
// @Failure 400 {string} string "invalid json / timestamp inválido"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/sensor-data [post]
func appendReadingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req appendReadingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var ts *time.Time
		if req.Timestamp != "" {
			t, err := time.Parse(time.RFC3339, req.Timestamp)
			if err != nil {
				http.Error(w, "timestamp must be RFC3339", http.StatusBadRequest)
				return
			}
			ts = &t
		}

		rd, err := svc.Append(r.Context(), chi.URLParam(r, "animalID"), AppendInput{
			Timestamp:   ts,
			Temperature: req.Temperature,
			Activity:    req.Activity,
		})
		if err != nil {
			if errors.Is(err, ErrAnimalNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toReadingResponse(rd))
	}
}

// listReadingsHandler godoc
// @Summary Lecturas de sensores en ventana móvil
// @Description Devuelve las lecturas de las últimas N horas (por defecto 24, máximo 168), ascendentes por tiempo.
// @Tags sensors
// @Produce json
// @Param animalID path string true "ID del ejemplar"
// @Param hours query int false "Tamaño de la ventana en horas (1-168). Por defecto 24"
// @Success 200 {array} readingResponse
// @Failure 400 {string} string "hours inválido"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/sensor-data [get]
func listReadingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		window := DefaultWindow
		if v := r.URL.Query().Get("hours"); v != "" {
			h, err := strconv.Atoi(v)
			if err != nil || h < 1 {
				http.Error(w, "hours must be a positive integer", http.StatusBadRequest)
				return
			}
			window = time.Duration(h) * time.Hour
		}

		items, err := svc.Window(r.Context(), chi.URLParam(r, "animalID"), window)
		if err != nil {
			if errors.Is(err, ErrAnimalNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]readingResponse, 0, len(items))
		for _, rd := range items {
			out = append(out, toReadingResponse(rd))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toReadingResponse(rd Reading) readingResponse {
	return readingResponse{
		ID:          rd.ID,
		AnimalID:    rd.AnimalID,
		Timestamp:   rd.Timestamp,
		Temperature: rd.Temperature,
		Activity:    rd.Activity,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package alerts

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-scoring/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals/{animalID}/alerts", func(ar chi.Router) {
		ar.Post("/", createAlertHandler(svc))
		ar.Get("/", listAlertsHandler(svc))
	})

	// Marcar leída (misma forma que el void de eventos: POST a sub-recurso).
	r.Post("/alerts/{alertID}/read", markReadHandler(svc))
}

type createAlertRequest struct {
	Type    Type   `json:"alert_type" enums:"FIEBRE,CELO,INACTIVIDAD"`
	Message string `json:"message"`
}

type alertResponse struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animal_id"`
	Type      Type      `json:"alert_type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}

// createAlertHandler godoc
// @Summary Registrar alerta
// @Description Las alertas se generan fuera del sistema (este backend no detecta fiebre/celo/inactividad, solo las registra).
// @Tags alerts
// @Accept json
// @Produce json
// @Param animalID path string true "ID del ejemplar"
// @Param payload body createAlertRequest true "Tipo y mensaje"
// @Success 201 {object} alertResponse
// @Failure 400 {string} string "invalid json / tipo desconocido"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/alerts [post]
func createAlertHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAlertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), chi.URLParam(r, "animalID"), CreateInput{
			Type:    req.Type,
			Message: req.Message,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrAnimalNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAlertResponse(a))
	}
}

// listAlertsHandler godoc
// @Summary Listar alertas de un ejemplar
// @Tags alerts
// @Produce json
// @Param animalID path string true "ID del ejemplar"
// @Success 200 {array} alertResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/alerts [get]
func listAlertsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			if errors.Is(err, ErrAnimalNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]alertResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAlertResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// markReadHandler godoc
// @Summary Marcar alerta como leída
// @Tags alerts
// @Produce json
// @Param alertID path string true "ID de la alerta"
// @Success 200 {object} alertResponse
// @Failure 404 {string} string "alert not found"
// @Router /alerts/{alertID}/read [post]
func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.MarkRead(r.Context(), chi.URLParam(r, "alertID"))
		if err != nil {
			http.Error(w, "alert not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAlertResponse(a))
	}
}

func toAlertResponse(a Alert) alertResponse {
	return alertResponse{
		ID:        a.ID,
		AnimalID:  a.AnimalID,
		Type:      a.Type,
		Message:   a.Message,
		Timestamp: a.Timestamp,
		IsRead:    a.IsRead,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package scoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cattle-scoring/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/animals/{animalID}/scores", submitScoresHandler(svc))
	r.Get("/animals/{animalID}/grades", listGradesHandler(svc))
}

type scoreItemRequest struct {
	CharacteristicID string  `json:"caracteristica_id"`
	Score            float64 `json:"puntuacion_obtenida"`
}

type submitScoresRequest struct {
	Scores []scoreItemRequest `json:"scores"`
}

type submitScoresResponse struct {
	Message    string  `json:"message"`
	ScoreTotal float64 `json:"score_total"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type gradeResponse struct {
	ID               string    `json:"id"`
	AnimalID         string    `json:"animal_id"`
	CharacteristicID string    `json:"caracteristica_id"`
	Score            float64   `json:"puntuacion_obtenida"`
	ScoredOn         string    `json:"fecha_calificacion"`
	EvaluatorID      string    `json:"evaluador,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// submitScoresHandler godoc
// @Summary Enviar calificaciones de un ejemplar
// @Description Guarda el lote de puntuaciones del día (upsert por característica y fecha) y recalcula el score total 0-100 del ejemplar. Todo o nada: una característica desconocida aborta el lote completo.
// @Tags scoring
// @Accept json
// @Produce json
// @Param animalID path string true "ID del ejemplar"
// @Param payload body submitScoresRequest true "Lote de puntuaciones"
// @Success 201 {object} submitScoresResponse
// @Failure 400 {object} detailResponse "característica desconocida o lote inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {object} detailResponse "ejemplar no encontrado"
// @Router /animals/{animalID}/scores [post]
func submitScoresHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitScoresRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "invalid json"})
			return
		}
		if req.Scores == nil {
			writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "scores is required"})
			return
		}

		items := make([]ScoreItem, 0, len(req.Scores))
		for _, sc := range req.Scores {
			items = append(items, ScoreItem{
				CharacteristicID: sc.CharacteristicID,
				Score:            sc.Score,
			})
		}

		total, err := svc.Submit(r.Context(), chi.URLParam(r, "animalID"), claims.UserID, items)
		if err != nil {
			switch {
			case errors.Is(err, ErrAnimalNotFound):
				writeJSON(w, http.StatusNotFound, detailResponse{Detail: "Ejemplar no encontrado."})
			case errors.Is(err, ErrCharacteristicNotFound), errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, detailResponse{Detail: err.Error()})
			default:
				writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "internal error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, submitScoresResponse{
			Message:    "Calificaciones guardadas y score actualizado con éxito.",
			ScoreTotal: total,
		})
	}
}

// listGradesHandler godoc
// @Summary Historial de calificaciones de un ejemplar
// @Tags scoring
// @Produce json
// @Param animalID path string true "ID del ejemplar"
// @Success 200 {array} gradeResponse
// @Failure 404 {object} detailResponse "ejemplar no encontrado"
// @Router /animals/{animalID}/grades [get]
func listGradesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		grades, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			if errors.Is(err, ErrAnimalNotFound) {
				writeJSON(w, http.StatusNotFound, detailResponse{Detail: "Ejemplar no encontrado."})
				return
			}
			writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "internal error"})
			return
		}

		out := make([]gradeResponse, 0, len(grades))
		for _, g := range grades {
			out = append(out, gradeResponse{
				ID:               g.ID,
				AnimalID:         g.AnimalID,
				CharacteristicID: g.CharacteristicID,
				Score:            g.Score,
				ScoredOn:         g.ScoredOn.Format("2006-01-02"),
				EvaluatorID:      g.EvaluatorID,
				CreatedAt:        g.CreatedAt,
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

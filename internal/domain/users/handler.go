package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cattle-scoring/internal/adapters/auth/jwtauth"
)

func RegisterRoutes(r chi.Router, svc *Service, issuer *jwtauth.Issuer) {
	r.Post("/register", registerHandler(svc))
	r.Post("/token", tokenHandler(svc, issuer))
	r.Post("/token/refresh", refreshHandler(issuer))
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea una cuenta nueva. password y password2 deben coincidir.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de registro"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "invalid json / contraseñas no coinciden"
// @Failure 409 {string} string "username taken"
// @Router /register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Username:  req.Username,
			Email:     req.Email,
			Password:  req.Password,
			Password2: req.Password2,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrUsernameTaken):
				http.Error(w, "username taken", http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid input", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, userResponse{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		})
	}
}

// tokenHandler godoc
// @Summary Obtener par de tokens
// @Description Valida credenciales y devuelve access + refresh JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body tokenRequest true "Credenciales"
// @Success 200 {object} tokenResponse
// @Failure 401 {string} string "invalid credentials"
// @Router /token [post]
func tokenHandler(svc *Service, issuer *jwtauth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		access, refresh, err := issuer.IssuePair(u.ID, u.Username)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Access: access, Refresh: refresh})
	}
}

// refreshHandler godoc
// @Summary Refrescar access token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body refreshRequest true "Refresh token"
// @Success 200 {object} tokenResponse
// @Failure 401 {string} string "invalid token"
// @Router /token/refresh [post]
func refreshHandler(issuer *jwtauth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		access, err := issuer.Refresh(req.Refresh)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Access: access})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cattle-scoring/internal/adapters/auth/jwtauth"
	"cattle-scoring/internal/router"
)

const eps = 1e-9

func TestHTTP_EndToEnd_ScoringFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	evaluatorID := "eval-1"

	// 1) Crear raza
	breedID := createBreed(t, ts.URL, evaluatorID, "HOLSTEIN")

	// 2) Crear categorías de la plantilla
	catMamario := createCategory(t, ts.URL, evaluatorID, breedID, "Sistema Mamario", 40)
	catFuerza := createCategory(t, ts.URL, evaluatorID, breedID, "Fuerza Lechera", 20)

	// 3) Crear características
	charUbre := createCharacteristic(t, ts.URL, evaluatorID, catMamario, "Altura de la ubre posterior", 9)
	charAng := createCharacteristic(t, ts.URL, evaluatorID, catFuerza, "Angularidad", 9)

	// 4) La plantilla de la raza refleja lo creado
	{
		st, body := doReq(t, ts.URL, "GET", "/breeds/"+breedID+"/template", evaluatorID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 template, got %d body=%s", st, string(body))
		}
		var resp struct {
			Categories []struct {
				Name            string `json:"name"`
				Characteristics []struct {
					Name string `json:"name"`
				} `json:"characteristics"`
			} `json:"categories"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Categories) != 2 {
			t.Fatalf("expected 2 categories in template, body=%s", string(body))
		}
	}

	// 5) Registrar ejemplar
	animalID := createAnimal(t, ts.URL, evaluatorID, breedID, "AR-100", "Margarita")

	// 6) Calificar: puntajes ideales => score 100
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/scores", evaluatorID, map[string]any{
			"scores": []map[string]any{
				{"caracteristica_id": charUbre, "puntuacion_obtenida": 9},
				{"caracteristica_id": charAng, "puntuacion_obtenida": 9},
			},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 submit scores, got %d body=%s", st, string(body))
		}
		var resp struct {
			ScoreTotal float64 `json:"score_total"`
		}
		_ = json.Unmarshal(body, &resp)
		if math.Abs(resp.ScoreTotal-100.0) > eps {
			t.Fatalf("expected score_total 100, got %v", resp.ScoreTotal)
		}
	}

	// 7) Característica desconocida => 400 con detail, sin efectos
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/scores", evaluatorID, map[string]any{
			"scores": []map[string]any{
				{"caracteristica_id": "bogus", "puntuacion_obtenida": 9},
			},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown characteristic, got %d body=%s", st, string(body))
		}
		var resp struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Detail == "" {
			t.Fatalf("expected detail message, body=%s", string(body))
		}
	}

	// 8) Ejemplar desconocido => 404 con el detail esperado
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/ghost/scores", evaluatorID, map[string]any{
			"scores": []map[string]any{},
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown animal, got %d body=%s", st, string(body))
		}
		var resp struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Detail != "Ejemplar no encontrado." {
			t.Fatalf("unexpected detail: %q", resp.Detail)
		}
	}

	// 9) Dashboard: promedio por raza y recientes
	{
		st, body := doReq(t, ts.URL, "GET", "/dashboard/scores", evaluatorID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var resp struct {
			AverageScoresByBreed []struct {
				BreedName    string  `json:"breedName"`
				AverageScore float64 `json:"averageScore"`
			} `json:"averageScoresByBreed"`
			RecentScores []struct {
				ID               string  `json:"id"`
				AnimalIdentifier string  `json:"animalIdentifier"`
				Score            float64 `json:"score"`
			} `json:"recentScores"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.AverageScoresByBreed) != 1 || resp.AverageScoresByBreed[0].BreedName != "HOLSTEIN" {
			t.Fatalf("unexpected averages, body=%s", string(body))
		}
		if math.Abs(resp.AverageScoresByBreed[0].AverageScore-100.0) > eps {
			t.Fatalf("expected average 100, got %v", resp.AverageScoresByBreed[0].AverageScore)
		}
		if len(resp.RecentScores) != 1 || resp.RecentScores[0].ID != animalID {
			t.Fatalf("unexpected recents, body=%s", string(body))
		}
	}

	// 10) Sensores: una lectura vieja queda fuera de la ventana por defecto
	{
		old := time.Now().Add(-25 * time.Hour).Format(time.RFC3339)
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/sensor-data", evaluatorID, map[string]any{
			"timestamp":   old,
			"temperatura": 38.2,
			"actividad":   250,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 old reading, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/animals/"+animalID+"/sensor-data", evaluatorID, map[string]any{
			"temperatura": 39.1,
			"actividad":   600,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 fresh reading, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/sensor-data", evaluatorID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 sensor window, got %d body=%s", st, string(body))
		}
		var readings []struct {
			Temperature *float64 `json:"temperatura"`
		}
		_ = json.Unmarshal(body, &readings)
		if len(readings) != 1 {
			t.Fatalf("expected 1 reading in default window, got %d body=%s", len(readings), string(body))
		}

		// Con hours=48 entran las dos.
		st, body = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/sensor-data?hours=48", evaluatorID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 sensor window 48h, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &readings)
		if len(readings) != 2 {
			t.Fatalf("expected 2 readings in 48h window, got %d", len(readings))
		}
	}

	// 11) Alertas: crear, listar y marcar leída
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/alerts", evaluatorID, map[string]any{
			"alert_type": "FIEBRE",
			"message":    "Temperatura sostenida sobre 39.5",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create alert, got %d body=%s", st, string(body))
		}
		var created struct {
			ID     string `json:"id"`
			IsRead bool   `json:"is_read"`
		}
		_ = json.Unmarshal(body, &created)
		if created.ID == "" || created.IsRead {
			t.Fatalf("unexpected alert, body=%s", string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/alerts/"+created.ID+"/read", evaluatorID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 mark read, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/alerts", evaluatorID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list alerts, got %d body=%s", st, string(body))
		}
		var alertsList []struct {
			IsRead bool `json:"is_read"`
		}
		_ = json.Unmarshal(body, &alertsList)
		if len(alertsList) != 1 || !alertsList[0].IsRead {
			t.Fatalf("expected one read alert, body=%s", string(body))
		}
	}

	// 12) Tipo de alerta desconocido => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/alerts", evaluatorID, map[string]any{
			"alert_type": "TORMENTA",
			"message":    "no aplica",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown alert type, got %d", st)
		}
	}

	// 13) Raza con ejemplares no se puede borrar
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/breeds/"+breedID, evaluatorID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 deleting breed with animals, got %d", st)
		}
	}
}

func TestHTTP_TokenFlow(t *testing.T) {
	issuer := jwtauth.NewIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: issuer,
		Issuer:       issuer,
	}))
	defer ts.Close()

	// Registro
	{
		st, body := doReq(t, ts.URL, "POST", "/register", "", map[string]any{
			"username":  "evaluadora",
			"email":     "eva@example.com",
			"password":  "secreta123",
			"password2": "secreta123",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
		}
	}

	// Login
	var access, refresh string
	{
		st, body := doReq(t, ts.URL, "POST", "/token", "", map[string]any{
			"username": "evaluadora",
			"password": "secreta123",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 token, got %d body=%s", st, string(body))
		}
		var resp struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		}
		_ = json.Unmarshal(body, &resp)
		access, refresh = resp.Access, resp.Refresh
		if access == "" || refresh == "" {
			t.Fatalf("missing tokens, body=%s", string(body))
		}
	}

	// Sin token => 401 en rutas protegidas de escritura
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/ghost/scores", "", map[string]any{"scores": []any{}})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}

	// Con Bearer el request se autentica (el 404 es del ejemplar, no del auth)
	{
		st, _ := doBearerReq(t, ts.URL, "POST", "/animals/ghost/scores", access, map[string]any{"scores": []any{}})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 with valid token, got %d", st)
		}
	}

	// Refresh emite un access nuevo y utilizable
	{
		st, body := doReq(t, ts.URL, "POST", "/token/refresh", "", map[string]any{"refresh": refresh})
		if st != http.StatusOK {
			t.Fatalf("expected 200 refresh, got %d body=%s", st, string(body))
		}
		var resp struct {
			Access string `json:"access"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Access == "" {
			t.Fatalf("missing refreshed access, body=%s", string(body))
		}
		st, _ = doBearerReq(t, ts.URL, "GET", "/animals", resp.Access, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 with refreshed access, got %d", st)
		}
	}
}

func createBreed(t *testing.T, baseURL, userID, name string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/breeds", userID, map[string]any{
		"name": name,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create breed, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create breed: missing id body=%s", string(body))
	}
	return resp.ID
}

func createCategory(t *testing.T, baseURL, userID, breedID, name string, weight int) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/categories", userID, map[string]any{
		"breed_id": breedID,
		"name":     name,
		"weight":   weight,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create category, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create category: missing id body=%s", string(body))
	}
	return resp.ID
}

func createCharacteristic(t *testing.T, baseURL, userID, categoryID, name string, ideal int) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/categories/"+categoryID+"/characteristics", userID, map[string]any{
		"name":        name,
		"ideal_score": ideal,
		"range_min":   float64(ideal) - 2,
		"range_max":   float64(ideal),
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create characteristic, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create characteristic: missing id body=%s", string(body))
	}
	return resp.ID
}

func createAnimal(t *testing.T, baseURL, userID, breedID, tag, name string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", userID, map[string]any{
		"tag":        tag,
		"name":       name,
		"breed_id":   breedID,
		"birth_date": "2022-03-15",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	req := newRequest(t, baseURL, method, path, body)
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	return execute(t, req)
}

func doBearerReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	req := newRequest(t, baseURL, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return execute(t, req)
}

func newRequest(t *testing.T, baseURL, method, path string, body any) *http.Request {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func execute(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

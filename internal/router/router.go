package router

import (
	"database/sql"
	"net/http"
	"os"

	"cattle-scoring/internal/adapters/auth/jwtauth"
	mem "cattle-scoring/internal/adapters/storage/memory"
	pg "cattle-scoring/internal/adapters/storage/postgres"
	"cattle-scoring/internal/domain/alerts"
	"cattle-scoring/internal/domain/animals"
	"cattle-scoring/internal/domain/breeds"
	"cattle-scoring/internal/domain/dashboard"
	"cattle-scoring/internal/domain/scoring"
	"cattle-scoring/internal/domain/sensors"
	"cattle-scoring/internal/domain/templates"
	"cattle-scoring/internal/domain/users"
	"cattle-scoring/internal/middleware"
	"cattle-scoring/internal/ports/auth"

	_ "cattle-scoring/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, se exponen /register, /token y /token/refresh.
	Issuer *jwtauth.Issuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		userRepo     users.Repository
		breedRepo    breeds.Repository
		templateRepo templates.Repository
		animalRepo   animals.Repository
		gradeRepo    scoring.Repository
		sensorRepo   sensors.Repository
		alertRepo    alerts.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		breedRepo = pg.NewBreedsRepo(db)
		templateRepo = pg.NewTemplatesRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
		gradeRepo = pg.NewGradesRepo(db)
		sensorRepo = pg.NewSensorsRepo(db)
		alertRepo = pg.NewAlertsRepo(db)
	} else {
		memAnimals := mem.NewAnimalRepo()
		memGrades := mem.NewGradeRepo(memAnimals)
		memSensors := mem.NewSensorRepo()
		memAlerts := mem.NewAlertRepo()
		// Mismo efecto que el ON DELETE CASCADE del esquema Postgres.
		memAnimals.OnDelete(memGrades.DeleteByAnimal, memSensors.DeleteByAnimal, memAlerts.DeleteByAnimal)

		userRepo = mem.NewUserRepo()
		breedRepo = mem.NewBreedRepo()
		templateRepo = mem.NewTemplateRepo()
		animalRepo = memAnimals
		gradeRepo = memGrades
		sensorRepo = memSensors
		alertRepo = memAlerts
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo)
	breedsSvc := breeds.NewService(breedRepo)
	templatesSvc := templates.NewService(templateRepo)
	animalsSvc := animals.NewService(animalRepo, breedsSvc)
	scoringSvc := scoring.NewService(gradeRepo, animalsSvc, templatesSvc)
	sensorsSvc := sensors.NewService(sensorRepo, animalsSvc)
	alertsSvc := alerts.NewService(alertRepo, animalsSvc)
	dashboardSvc := dashboard.NewService(animalsSvc, breedsSvc)

	// Rutas por módulo
	if opts.Issuer != nil {
		users.RegisterRoutes(r, usersSvc, opts.Issuer)
	}
	breeds.RegisterRoutes(r, breedsSvc, animalsSvc)
	templates.RegisterRoutes(r, templatesSvc, breedsSvc)
	animals.RegisterRoutes(r, animalsSvc)
	scoring.RegisterRoutes(r, scoringSvc)
	sensors.RegisterRoutes(r, sensorsSvc)
	alerts.RegisterRoutes(r, alertsSvc)
	dashboard.RegisterRoutes(r, dashboardSvc)

	return r
}

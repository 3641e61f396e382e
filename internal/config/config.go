package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config representa toda la configuración de la aplicación.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
}

// ServerConfig agrupa las opciones del servidor HTTP.
type ServerConfig struct {
	Port string
}

// DBConfig agrupa las opciones de Postgres. DSN vacío => repos in-memory (modo dev).
type DBConfig struct {
	DSN string
}

// AuthConfig agrupa las opciones de emisión/verificación de JWT.
type AuthConfig struct {
	// Secret vacío => modo dev (sin verifier, auth vía X-Debug-User-ID).
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Load lee variables de entorno (opcionalmente desde el archivo indicado)
// y materializa un Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Un .env ausente es aceptable: la config puede venir del entorno directo.
		_ = godotenv.Load()
	}

	accessTTL, err := getenvDuration("JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := getenvDuration("JWT_REFRESH_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("PORT", "8080"),
		},
		DB: DBConfig{
			DSN: os.Getenv("DB_DSN"),
		},
		Auth: AuthConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			AccessTTL:  accessTTL,
			RefreshTTL: refreshTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate asegura que los campos obligatorios estén presentes y sean coherentes.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return errors.New("JWT TTLs must be positive")
	}
	if c.Auth.RefreshTTL < c.Auth.AccessTTL {
		return errors.New("JWT_REFRESH_TTL must be >= JWT_ACCESS_TTL")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (ej: 15m, 24h): %w", key, err)
	}
	return d, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store drivers selectable via STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds all configuration parameters of the application.
type Config struct {
	ServerPort        int
	JWTSecretKey      string
	AdminPasswordHash string
	RosterPath        string
	TournamentID      string
	StoreDriver       string
	SQLitePath        string
	DatabaseURL       string
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if passwordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		driver = StoreMemory
	}

	cfg := &Config{
		ServerPort:        port,
		JWTSecretKey:      jwtKey,
		AdminPasswordHash: passwordHash,
		RosterPath:        os.Getenv("ROSTER_PATH"),
		TournamentID:      os.Getenv("TOURNAMENT_ID"),
		StoreDriver:       driver,
		SQLitePath:        os.Getenv("SQLITE_PATH"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
	}
	if cfg.TournamentID == "" {
		cfg.TournamentID = "default"
	}
	if cfg.RosterPath == "" {
		cfg.RosterPath = "roster.csv"
	}

	switch cfg.StoreDriver {
	case StoreMemory:
	case StoreSQLite:
		if cfg.SQLitePath == "" {
			cfg.SQLitePath = "shuttlecup.db"
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when STORE_DRIVER is postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want memory, sqlite or postgres)", cfg.StoreDriver)
	}

	return cfg, nil
}

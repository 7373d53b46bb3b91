package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Store         string // "postgres" or "memory"
	DatabaseURL   string
	SessionSecret string
	GeminiAPIKey  string
	WalletRPCURL  string
	Treasury      string
}

func Load() (*Config, error) {
	// loads .env in dev; ignored when absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		Store:         os.Getenv("STORE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		WalletRPCURL:  os.Getenv("WALLET_RPC_URL"),
		Treasury:      os.Getenv("TREASURY_ADDRESS"),
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.Store == "" {
		cfg.Store = "postgres"
	}
	if cfg.Store == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required with STORE=postgres")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "default-secret-key-change-in-production"
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	DataEncryptionKey string
	Environment       string
	StatementDir      string
	RunMigrations     bool
	RunSeed           bool
	SeedTenantName    string
	SeedAdminEmail    string
	SeedAdminPassword string
	MaxBodyBytes      int64

	AguinaldoDays          float64
	VacationDays           float64
	VacationPremiumPercent float64
	DaysPerMonth           float64
	MinimumWage            float64
	MinimumWageBorder      float64
	SeniorityPremiumCap    float64
}

func Load() Config {
	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		DataEncryptionKey: getEnv("DATA_ENCRYPTION_KEY", ""),
		Environment:       getEnv("APP_ENV", "development"),
		StatementDir:      getEnv("STATEMENT_DIR", "storage/statements"),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:           getEnvBool("RUN_SEED", true),
		SeedTenantName:    getEnv("SEED_TENANT_NAME", "Default Tenant"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),

		AguinaldoDays:          getEnvFloat("AGUINALDO_DAYS", 15),
		VacationDays:           getEnvFloat("VACATION_DAYS", 12),
		VacationPremiumPercent: getEnvFloat("VACATION_PREMIUM_PERCENT", 25),
		DaysPerMonth:           getEnvFloat("DAYS_PER_MONTH", 30.4),
		MinimumWage:            getEnvFloat("MINIMUM_WAGE", 278.80),
		MinimumWageBorder:      getEnvFloat("MINIMUM_WAGE_BORDER", 419.88),
		SeniorityPremiumCap:    getEnvFloat("SENIORITY_PREMIUM_CAP_MULTIPLE", 2),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.AguinaldoDays <= 0 || c.VacationDays < 0 || c.VacationPremiumPercent < 0 {
		return fmt.Errorf("settlement defaults must not be negative")
	}
	if c.DaysPerMonth <= 0 {
		return fmt.Errorf("DAYS_PER_MONTH must be positive")
	}
	if c.MinimumWage <= 0 || c.MinimumWageBorder <= 0 {
		return fmt.Errorf("minimum wage values must be positive")
	}
	if c.SeniorityPremiumCap <= 0 {
		return fmt.Errorf("SENIORITY_PREMIUM_CAP_MULTIPLE must be positive")
	}
	return nil
}

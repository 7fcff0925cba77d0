package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DeploymentMode selects environment-conditioned behavior such as the
// premium sync gate. It is resolved once at startup and threaded into the
// services at construction time so tests can inject it deterministically.
type DeploymentMode string

const (
	ModeProduction  DeploymentMode = "production"
	ModeDevelopment DeploymentMode = "development"
	ModeTest        DeploymentMode = "test"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	DeploymentMode DeploymentMode

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Sync policy
	SyncFreshnessWindow time.Duration
	SyncQuotaPerDay     int

	// Bank-aggregation provider
	PlaidBaseURL  string
	PlaidClientID string
	PlaidSecret   string

	// Crypto gateways
	AlchemyAPIKey   string
	CoinGeckoAPIURL string

	FrontendBaseURL string
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.DeploymentMode == ModeProduction
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEPLOYMENT_MODE", string(ModeDevelopment))
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "finlens-backend")
	viper.SetDefault("SYNC_FRESHNESS_WINDOW", "24h")
	viper.SetDefault("SYNC_QUOTA_PER_DAY", 10)
	viper.SetDefault("PLAID_BASE_URL", "https://sandbox.plaid.com")
	viper.SetDefault("PLAID_CLIENT_ID", "")
	viper.SetDefault("PLAID_SECRET", "")
	viper.SetDefault("ALCHEMY_API_KEY", "")
	viper.SetDefault("COINGECKO_API_URL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")

	mode := DeploymentMode(viper.GetString("DEPLOYMENT_MODE"))
	switch mode {
	case ModeProduction, ModeDevelopment, ModeTest:
		cfg.DeploymentMode = mode
	default:
		log.Printf("Warning: Invalid DEPLOYMENT_MODE (%q). Defaulting to %s.\n", mode, ModeDevelopment)
		cfg.DeploymentMode = ModeDevelopment
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction() {
		log.Println("Warning: JWT_SECRET is the default insecure key in production.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	freshnessStr := viper.GetString("SYNC_FRESHNESS_WINDOW")
	freshness, err := time.ParseDuration(freshnessStr)
	if err != nil || freshness <= 0 {
		freshness = 24 * time.Hour
		log.Printf("Warning: Invalid value for SYNC_FRESHNESS_WINDOW ('%s'). Defaulting to %s.\n", freshnessStr, freshness.String())
	}
	cfg.SyncFreshnessWindow = freshness

	cfg.SyncQuotaPerDay = viper.GetInt("SYNC_QUOTA_PER_DAY")
	if cfg.SyncQuotaPerDay <= 0 {
		cfg.SyncQuotaPerDay = 10
		log.Printf("Warning: Invalid value for SYNC_QUOTA_PER_DAY. Defaulting to %d.\n", cfg.SyncQuotaPerDay)
	}

	cfg.PlaidBaseURL = viper.GetString("PLAID_BASE_URL")
	cfg.PlaidClientID = viper.GetString("PLAID_CLIENT_ID")
	cfg.PlaidSecret = viper.GetString("PLAID_SECRET")
	cfg.AlchemyAPIKey = viper.GetString("ALCHEMY_API_KEY")
	cfg.CoinGeckoAPIURL = viper.GetString("COINGECKO_API_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}

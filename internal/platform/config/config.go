package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	AppOrigin    string

	// CPF calculation
	WageCeiling string // decimal string, parsed by the payroll service

	// Worker / queue
	WorkerPollInterval time.Duration
	PayrollRunTimeout  time.Duration
	JobRetentionDays   int

	// Rate limit applied to the payroll submission endpoint, in ulule/limiter
	// format (e.g. "10-M" = 10 requests per minute per IP).
	SubmitRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("APP_ORIGIN", "http://localhost:3000")
	viper.SetDefault("CPF_WAGE_CEILING", "6000")
	viper.SetDefault("WORKER_POLL_INTERVAL", "1s")
	viper.SetDefault("PAYROLL_RUN_TIMEOUT", "10m")
	viper.SetDefault("JOB_RETENTION_DAYS", 30)
	viper.SetDefault("SUBMIT_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.AppOrigin = viper.GetString("APP_ORIGIN")
	cfg.WageCeiling = viper.GetString("CPF_WAGE_CEILING")

	pollIntervalStr := viper.GetString("WORKER_POLL_INTERVAL")
	pollInterval, err := time.ParseDuration(pollIntervalStr)
	if err != nil || pollInterval <= 0 {
		pollInterval = time.Second
		if pollIntervalStr != "" {
			log.Printf("Warning: Invalid value for WORKER_POLL_INTERVAL ('%s'). Defaulting to %s.\n", pollIntervalStr, pollInterval)
		}
	}
	cfg.WorkerPollInterval = pollInterval

	runTimeoutStr := viper.GetString("PAYROLL_RUN_TIMEOUT")
	runTimeout, err := time.ParseDuration(runTimeoutStr)
	if err != nil || runTimeout <= 0 {
		runTimeout = 10 * time.Minute
		if runTimeoutStr != "" {
			log.Printf("Warning: Invalid value for PAYROLL_RUN_TIMEOUT ('%s'). Defaulting to %s.\n", runTimeoutStr, runTimeout)
		}
	}
	cfg.PayrollRunTimeout = runTimeout

	cfg.JobRetentionDays = viper.GetInt("JOB_RETENTION_DAYS")
	if cfg.JobRetentionDays <= 0 {
		cfg.JobRetentionDays = 30
	}

	cfg.SubmitRateLimit = viper.GetString("SUBMIT_RATE_LIMIT")

	return cfg, nil
}

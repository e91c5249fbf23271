package app

import (
	"time"

	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
	"github.com/yungbote/admitpath-backend/internal/utils"
)

type Config struct {
	JWTSecretKey string

	// DefaultCooldownHours applies when the oracle rejects without naming
	// its own cooldown.
	DefaultCooldownHours int
	OracleTimeout        time.Duration

	ServiceName string
	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	cooldownHours := utils.GetEnvAsInt("VERIFY_COOLDOWN_HOURS", 24, log)
	oracleTimeoutSec := utils.GetEnvAsInt("VERIFY_TIMEOUT_SECONDS", 60, log)
	return Config{
		JWTSecretKey:         jwtSecretKey,
		DefaultCooldownHours: cooldownHours,
		OracleTimeout:        time.Duration(oracleTimeoutSec) * time.Second,
		ServiceName:          utils.GetEnv("SERVICE_NAME", "admitpath", log),
		Environment:          utils.GetEnv("ENVIRONMENT", "development", log),
		Version:              utils.GetEnv("SERVICE_VERSION", "", log),
	}
}

package app

import (
	"time"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/utils"
)

type Config struct {
	HTTPAddr            string
	JWTSecretKey        string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	RedisAddr           string
	APIBaseURL          string
	APITimeout          time.Duration
	FunctionCatalogPath string
	AllowOrigins        []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	httpAddr := utils.GetEnv("HTTP_ADDR", ":8080", log)
	return Config{
		HTTPAddr:            httpAddr,
		JWTSecretKey:        jwtSecretKey,
		AccessTokenTTL:      time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:     time.Duration(refreshTokenTTLSeconds) * time.Second,
		RedisAddr:           utils.GetEnv("REDIS_ADDR", "localhost:6379", log),
		APIBaseURL:          utils.GetEnv("API_BASE_URL", "http://localhost"+normalizeAddr(httpAddr), log),
		APITimeout:          utils.GetEnvAsDuration("API_TIMEOUT", 15*time.Second, log),
		FunctionCatalogPath: utils.GetEnv("FUNCTION_CATALOG_PATH", "configs/functions.yaml", log),
		AllowOrigins:        nil,
	}
}

// normalizeAddr turns a listen address like ":8080" into the suffix a local
// base URL needs.
func normalizeAddr(addr string) string {
	if addr == "" {
		return ":8080"
	}
	if addr[0] == ':' {
		return addr
	}
	for i := 0; i < len(addr); i++ {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ":" + addr
}

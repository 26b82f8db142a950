package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// 注文ステータス遷移のポリシー名
const (
	TransitionPolicyPermissive = "permissive"
	TransitionPolicyStrict     = "strict"
)

// Configはアプリ全体の設定
type Config struct {
	Port   string `envconfig:"PORT" default:"8080"`
	AppEnv string `envconfig:"APP_ENV" default:"dev"` // dev/prod

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"10"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"` // JWT署名シークレット
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"24h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	StatsRefreshInterval time.Duration `envconfig:"STATS_REFRESH_INTERVAL" default:"5m"`

	// permissive（既存クライアント互換）/ strict
	OrderTransitionPolicy string `envconfig:"ORDER_TRANSITION_POLICY" default:"permissive"`

	CORSAllowOrigins []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Loadは.env（あれば）と環境変数から読む
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validateはenvconfigで表現できないチェック
func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	switch c.OrderTransitionPolicy {
	case TransitionPolicyPermissive, TransitionPolicyStrict:
	default:
		return fmt.Errorf("ORDER_TRANSITION_POLICY must be %q or %q", TransitionPolicyPermissive, TransitionPolicyStrict)
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}

// Addrは":8080"形式で返す
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

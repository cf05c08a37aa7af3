package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string        `env:"PORT,      default=8080"`
	Env      string        `env:"ENV,       default=development"`
	LogLevel string        `env:"LOG_LEVEL, default=info"`
	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Sources  SourcesConfig
	CacheTTL time.Duration `env:"SPECIALITY_CACHE_TTL, default=5m"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// SourcesConfig holds the three upstream hospital speciality endpoints the
// aggregator fans out to.
type SourcesConfig struct {
	HospitalA string `env:"HOSPITAL_A_URL, default=http://localhost:5001/api/hospitalA/specialities"`
	HospitalB string `env:"HOSPITAL_B_URL, default=http://localhost:5001/api/hospitalB/specialities"`
	HospitalC string `env:"HOSPITAL_C_URL, default=http://localhost:5001/api/hospitalC/specialities"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP    HTTP
	Logger  Logger
	Backend Backend
	Redis   Redis

	// DemoFallback substitutes fixed sample records when the backend
	// returns nothing usable. Off means empty lists stay empty.
	DemoFallback bool `env:"DEMO_FALLBACK" envDefault:"true"`
}

type HTTP struct {
	Port int `env:"HTTP_PORT" envDefault:"8080"`
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Backend struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"https://sr-mendes-dashboard.vercel.app"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"event_booking_go/analytics"
)

type Config struct {
	Port           string              `env:"PORT" envDefault:"8000"`
	MongoURI       string              `env:"MONGO_URI"`
	Database       string              `env:"MONGO_DATABASE" envDefault:"events-react-dev"`
	JWTSecret      string              `env:"JWT_SECRET,required"`
	TokenTTL       time.Duration       `env:"TOKEN_TTL" envDefault:"1h"`
	RequestTimeout time.Duration       `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	LogLevel       string              `env:"LOG_LEVEL" envDefault:"info"`
	Env            string              `env:"ENV" envDefault:"production"`
	CORSOrigin     string              `env:"CORS_ORIGIN" envDefault:"*"`
	PriceBuckets   analytics.BucketSet `env:"PRICE_BUCKETS" envDefault:"Cheap:0:100,Normal:100:200,Expensive:200:1000000"`
}

// Load reads an optional .env file, then the environment. Variables
// already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Development() bool {
	return c.Env == "development"
}

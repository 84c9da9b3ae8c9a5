package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Remote     `yaml:"remote"`
	Planning   `yaml:"planning"`

	DBUser     string `yaml:"db_user" env:"DB_USER" env-required:"true"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"DB_NAME" env-required:"true"`

	AdminLogin     string   `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass      string   `yaml:"admin_pass" env:"ADMIN_PASS"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"150s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Remote: бэкенд ZKO (Express + функции PostgreSQL).
type Remote struct {
	BaseURL        string        `yaml:"base_url" env:"ZKO_API_URL" env-required:"true"`
	Timeout        time.Duration `yaml:"timeout" env-default:"30s"`
	RetryAttempts  int           `yaml:"retry_attempts" env-default:"3"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay" env-default:"1s"`
	RetryFactor    float64       `yaml:"retry_factor" env-default:"2"`
}

type Planning struct {
	MaxHeightMM        int           `yaml:"max_height_mm" env-default:"1440"`
	MaxPiecesPerPallet int           `yaml:"max_pieces_per_pallet" env-default:"80"`
	MaxWeightKG        float64       `yaml:"max_weight_kg" env-default:"700"`
	ConfirmationTTL    time.Duration `yaml:"confirmation_ttl" env-default:"10m"`
	PreviewLimit       int           `yaml:"preview_limit" env-default:"4"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}

package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Storage    Storage `yaml:"storage"`
	Media      Media   `yaml:"media"`
	Auth       Auth    `yaml:"auth"`
	Logo       Logo    `yaml:"logo"`
	Company    Company `yaml:"company"`

	AdminLogin  string   `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass   string   `yaml:"admin_pass" env:"ADMIN_PASS"`
	CorsOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`
	FrontendDir string   `yaml:"frontend_dir" env:"FRONTEND_DIR"`
	ErrorLog    string   `yaml:"error_log" env:"ERROR_LOG" env-default:"errors.log"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	// UploadTimeout replaces Timeout on routes receiving photos and videos.
	UploadTimeout time.Duration `yaml:"upload_timeout" env:"HTTP_UPLOAD_TIMEOUT" env-default:"2m"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	SeedPath   string `yaml:"seed_path" env:"STORAGE_SEED_PATH"`
	DBUser     string `yaml:"db_user" env:"DB_USER"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"DB_NAME"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`
}

type Media struct {
	Driver      string `yaml:"driver" env:"MEDIA_DRIVER" env-default:"memory"`
	LocalPrefix string `yaml:"local_prefix" env-default:"simulated_local_path"`
	Endpoint    string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKey   string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey   string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket      string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"renza-media"`
	UseSSL      bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"change-me"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"12h"`
}

type Logo struct {
	URL     string        `yaml:"url" env:"LOGO_URL" env-default:"https://i.ibb.co/mr2LbjFK/RENZA-PLANEJADOS.png"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
	TTL     time.Duration `yaml:"ttl" env-default:"1h"`
	// RetryAfter spaces out download attempts after a failure.
	RetryAfter time.Duration `yaml:"retry_after" env-default:"5m"`
}

// Company is the letterhead printed on every report page.
type Company struct {
	Name     string `yaml:"name" env-default:"GONÇALVES & GROFF LTDA"`
	CNPJ     string `yaml:"cnpj" env-default:"28.942.011/0001-00"`
	Phone    string `yaml:"phone" env-default:"51 3922-2001"`
	Address1 string `yaml:"address_1" env-default:"Av. Farroupilha, 4398"`
	Address2 string `yaml:"address_2" env-default:"Bairro Marechal Rondon"`
	Address3 string `yaml:"address_3" env-default:"Canoas - RS"`
}

// DSN builds the MySQL connection string.
func (s Storage) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=%v",
		s.DBUser,
		s.DBPassword,
		s.DBHost,
		s.DBPort,
		s.DBName,
		s.ParseTime,
	)
}

// Load reads the config file at path, letting environment variables override
// it. A missing file falls back to env only.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "mysql":
		if c.Storage.DBUser == "" || c.Storage.DBName == "" {
			return fmt.Errorf("storage: mysql driver requires db_user and db_name")
		}
	default:
		return fmt.Errorf("storage: unknown driver %q", c.Storage.Driver)
	}

	switch c.Media.Driver {
	case "memory":
	case "minio":
		if c.Media.Endpoint == "" {
			return fmt.Errorf("media: minio driver requires endpoint")
		}
	default:
		return fmt.Errorf("media: unknown driver %q", c.Media.Driver)
	}

	return nil
}

// Path is CONFIG_PATH, or the local config when unset.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultConfigPath
}

func MustConfig() *Config {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := Load(Path())
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

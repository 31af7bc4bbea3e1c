package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all server configuration, loaded from config.yaml with
// environment-variable overrides (NSS_ prefix)
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Attendance AttendanceConfig `mapstructure:"attendance"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Razorpay   RazorpayConfig   `mapstructure:"razorpay"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpiryHours int           `mapstructure:"expiry_hours"`
	Issuer      string        `mapstructure:"issuer"`
	Expiry      time.Duration `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AttendanceConfig tunes the token issuer and the redemption path
type AttendanceConfig struct {
	RefreshSeconds  int `mapstructure:"refresh_seconds"`   // token rotation cadence
	TokenTTLSeconds int `mapstructure:"token_ttl_seconds"` // freshness window at redemption
}

// StorageConfig points at the R2/S3 bucket holding gallery media
type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
}

type RazorpayConfig struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
}

// Load reads config.yaml and applies .env / environment overrides.
// Missing config file is not fatal; defaults plus env vars are enough
// for development.
func Load() *Config {
	// .env is optional, used in local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("NSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Failed to read config file: %v", err)
		}
		log.Println("No config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}

	cfg.JWT.Expiry = time.Duration(cfg.JWT.ExpiryHours) * time.Hour

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT secret is not set (NSS_JWT_SECRET)")
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "nss_user")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "nss_db")
	v.SetDefault("database.sslmode", "disable")

	// Empty defaults register the keys with viper; AutomaticEnv only
	// overrides keys it knows about, so without these the env-only
	// deployment path (no config.yaml) would never see the values.
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("jwt.issuer", "nss-backend")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("attendance.refresh_seconds", 5)
	v.SetDefault("attendance.token_ttl_seconds", 30)

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "auto")

	v.SetDefault("razorpay.key_id", "")
	v.SetDefault("razorpay.key_secret", "")
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Gemini   Gemini
	Resolver Resolver
	Storage  Storage
	Log      Log
	Limits   Limits
}

type Server struct {
	Port string
	Mode string // "debug" or "release"
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Gemini configures the extraction model.
type Gemini struct {
	ApiKey          string
	ExtractionModel string
}

// Resolver configures the model that infers missing answer keys. Provider is
// "gemini" (reuses the Gemini key unless ApiKey is set) or "openai" for any
// OpenAI-compatible endpoint.
type Resolver struct {
	Provider string
	ApiKey   string
	BaseURL  string
	Model    string
}

type Storage struct {
	Type           string // "local" or "minio"
	LocalPath      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type Log struct {
	Level string
	File  string
}

type Limits struct {
	ExtractPerMinute int
}

var envKeys = []string{
	"SERVER_PORT", "SERVER_MODE",
	"DATABASE_HOST", "DATABASE_PORT", "DATABASE_USER", "DATABASE_PASSWORD", "DATABASE_NAME", "DATABASE_SSLMODE",
	"GEMINI_API_KEY", "GEMINI_EXTRACTION_MODEL",
	"RESOLVER_PROVIDER", "RESOLVER_API_KEY", "RESOLVER_BASE_URL", "RESOLVER_MODEL",
	"STORAGE_TYPE", "STORAGE_LOCAL_PATH",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
	"LOG_LEVEL", "LOG_FILE",
	"LIMITS_EXTRACT_PER_MINUTE",
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("GEMINI_EXTRACTION_MODEL", "gemini-1.5-flash")
	viper.SetDefault("RESOLVER_PROVIDER", "gemini")
	viper.SetDefault("RESOLVER_MODEL", "gemini-1.5-flash")
	viper.SetDefault("STORAGE_TYPE", "local")
	viper.SetDefault("STORAGE_LOCAL_PATH", "uploads")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LIMITS_EXTRACT_PER_MINUTE", 6)
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("EXAMLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	// Every key is also accepted without the prefix; the prefixed name wins.
	for _, key := range envKeys {
		_ = viper.BindEnv(key, "EXAMLENS_"+key, key)
	}

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Mode = viper.GetString("SERVER_MODE")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.ExtractionModel = viper.GetString("GEMINI_EXTRACTION_MODEL")

	config.Resolver.Provider = strings.ToLower(viper.GetString("RESOLVER_PROVIDER"))
	config.Resolver.ApiKey = viper.GetString("RESOLVER_API_KEY")
	config.Resolver.BaseURL = viper.GetString("RESOLVER_BASE_URL")
	config.Resolver.Model = viper.GetString("RESOLVER_MODEL")

	config.Storage.Type = strings.ToLower(viper.GetString("STORAGE_TYPE"))
	config.Storage.LocalPath = viper.GetString("STORAGE_LOCAL_PATH")
	config.Storage.MinioEndpoint = viper.GetString("MINIO_ENDPOINT")
	config.Storage.MinioAccessKey = viper.GetString("MINIO_ACCESS_KEY")
	config.Storage.MinioSecretKey = viper.GetString("MINIO_SECRET_KEY")
	config.Storage.MinioBucket = viper.GetString("MINIO_BUCKET")
	config.Storage.MinioUseSSL = viper.GetBool("MINIO_USE_SSL")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.File = viper.GetString("LOG_FILE")

	config.Limits.ExtractPerMinute = viper.GetInt("LIMITS_EXTRACT_PER_MINUTE")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("db_host", config.Database.Host).
		Str("storage", config.Storage.Type).
		Str("resolver", config.Resolver.Provider).
		Bool("resolver_enabled", config.ResolverEnabled()).
		Msg("Config loaded")
	return &config, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
		errs = append(errs, errors.New("DATABASE_HOST, DATABASE_USER and DATABASE_NAME are required"))
	}
	if c.Gemini.ApiKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required for question extraction"))
	}
	switch c.Resolver.Provider {
	case "gemini", "openai":
	default:
		errs = append(errs, fmt.Errorf("RESOLVER_PROVIDER must be gemini or openai, got %q", c.Resolver.Provider))
	}
	switch c.Storage.Type {
	case "local":
		if c.Storage.LocalPath == "" {
			errs = append(errs, errors.New("STORAGE_LOCAL_PATH is required for local storage"))
		}
	case "minio":
		if c.Storage.MinioEndpoint == "" || c.Storage.MinioBucket == "" ||
			c.Storage.MinioAccessKey == "" || c.Storage.MinioSecretKey == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT, MINIO_BUCKET, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for minio storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE must be local or minio, got %q", c.Storage.Type))
	}
	if c.Limits.ExtractPerMinute <= 0 {
		errs = append(errs, errors.New("LIMITS_EXTRACT_PER_MINUTE must be positive"))
	}
	return errors.Join(errs...)
}

// ResolverAPIKey returns the key used for answer resolution. The Gemini
// provider falls back to the extraction key.
func (c *Config) ResolverAPIKey() string {
	if c.Resolver.ApiKey != "" {
		return c.Resolver.ApiKey
	}
	if c.Resolver.Provider == "gemini" {
		return c.Gemini.ApiKey
	}
	return ""
}

func (c *Config) ResolverEnabled() bool {
	return c.ResolverAPIKey() != ""
}

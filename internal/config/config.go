package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ArchiveConfig holds credentials for the optional raw-payload
// archive bucket (any S3-compatible endpoint). Archival is enabled
// only when every field is set.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

type Config struct {
	Port           int
	DatabaseURL    string
	LogLevel       string
	AllowedOrigins []string
	IngestSecret   string
	Archive        ArchiveConfig
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Port: %d | LogLevel: %s | ArchiveEnabled: %t | AuthEnabled: %t",
		c.Port,
		c.LogLevel,
		c.Archive.Enabled(),
		c.IngestSecret != "",
	)
}

func (a ArchiveConfig) Enabled() bool {
	return a.Endpoint != "" && a.AccessKey != "" && a.SecretKey != "" && a.Bucket != ""
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("allowed.origins", "http://localhost:3000")

	v.BindEnv("port", "PORT")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("allowed.origins", "ALLOWED_ORIGINS")
	v.BindEnv("ingest.jwt.secret", "INGEST_JWT_SECRET")
	v.BindEnv("archive.endpoint", "ARCHIVE_ENDPOINT")
	v.BindEnv("archive.access.key", "ARCHIVE_ACCESS_KEY")
	v.BindEnv("archive.secret.key", "ARCHIVE_SECRET_KEY")
	v.BindEnv("archive.bucket", "ARCHIVE_BUCKET")

	cfg := &Config{
		Port:           v.GetInt("port"),
		DatabaseURL:    v.GetString("database.url"),
		LogLevel:       v.GetString("log.level"),
		AllowedOrigins: splitOrigins(v.GetString("allowed.origins")),
		IngestSecret:   v.GetString("ingest.jwt.secret"),
		Archive: ArchiveConfig{
			Endpoint:  v.GetString("archive.endpoint"),
			AccessKey: v.GetString("archive.access.key"),
			SecretKey: v.GetString("archive.secret.key"),
			Bucket:    v.GetString("archive.bucket"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

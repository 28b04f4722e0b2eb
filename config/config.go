package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	HTTPPort       string `envconfig:"HTTP_PORT" default:"5000"`
	TrustedProxies string `envconfig:"TRUSTED_PROXIES"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`

	// Security-Header; FORCE_HTTPS erst hinter TLS-Terminierung einschalten
	ForceHTTPS  bool  `envconfig:"FORCE_HTTPS" default:"false"`
	HSTSSeconds int64 `envconfig:"HSTS_SECONDS" default:"31536000"`

	// Rate Limits pro Client-IP
	CheckRatePerMinute   int    `envconfig:"CHECK_RATE_PER_MINUTE" default:"10"`
	RatePerHour          int    `envconfig:"RATE_PER_HOUR" default:"50"`
	RatePerDay           int    `envconfig:"RATE_PER_DAY" default:"200"`
	LimiterPruneSchedule string `envconfig:"LIMITER_PRUNE_SCHEDULE" default:"@every 10m"`

	// Katalogquelle: S3 > Datei > eingebetteter Standardkatalog
	CatalogFile        string `envconfig:"CATALOG_FILE"`
	CatalogS3Bucket    string `envconfig:"CATALOG_S3_BUCKET"`
	CatalogS3Key       string `envconfig:"CATALOG_S3_KEY" default:"catalog.yaml"`
	CatalogS3URL       string `envconfig:"CATALOG_S3_URL"`
	CatalogS3Region    string `envconfig:"CATALOG_S3_REGION" default:"us-east-1"`
	CatalogS3AccessKey string `envconfig:"CATALOG_S3_ACCESS_KEY"`
	CatalogS3SecretKey string `envconfig:"CATALOG_S3_SECRET_KEY"`
}

// CatalogFromS3 gibt an, ob der Katalog aus einem S3-Bucket geladen werden soll.
func (c *Config) CatalogFromS3() bool {
	return c.CatalogS3Bucket != "" && c.CatalogS3Key != ""
}

// TrustedProxyList zerlegt TRUSTED_PROXIES in einzelne Einträge. Leer heißt: keinem Proxy vertrauen.
func (c *Config) TrustedProxyList() []string {
	var proxies []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}

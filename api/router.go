package api

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"boycott-check/config"
	"boycott-check/ratelimit"
	"boycott-check/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Limiters bündelt die Rate Limiter der API.
// Check gilt nur für die Produktprüfung, Global für alle Routen außer Health und Metrics.
type Limiters struct {
	Check  *ratelimit.IPRateLimiter
	Global *ratelimit.IPRateLimiter
}

// NewLimiters erstellt die Limiter aus der Konfiguration.
func NewLimiters(cfg *config.Config) Limiters {
	return Limiters{
		Check: ratelimit.NewIPRateLimiter("check",
			ratelimit.NewSlidingWindowLimiter(cfg.CheckRatePerMinute, time.Minute)),
		Global: ratelimit.NewIPRateLimiter("global", ratelimit.NewCompositeRateLimiter(
			ratelimit.NewSlidingWindowLimiter(cfg.RatePerHour, time.Hour),
			ratelimit.NewSlidingWindowLimiter(cfg.RatePerDay, 24*time.Hour),
		)),
	}
}

// Prune entfernt inaktive Schlüssel aus allen Limitern.
func (l Limiters) Prune() int {
	return l.Check.Prune() + l.Global.Prune()
}

// NewRouter baut den gin-Router mit Middleware und allen Routen.
func NewRouter(cfg *config.Config, matcher *services.Matcher, limiters Limiters, log *zap.Logger) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(log))
	router.Use(recoveryMiddleware(log))
	router.Use(securityHeadersMiddleware(cfg))

	// Probes und Metrics sind von den Limits ausgenommen
	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	global := rateLimitMiddleware(limiters.Global, log)
	router.GET("/", global, indexHandler)
	router.POST("/check-product",
		rateLimitMiddleware(limiters.Check, log),
		global,
		checkProductHandler(matcher, log),
	)

	return router, nil
}

package api

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"boycott-check/apierrors"
	"boycott-check/config"
	"boycott-check/metrics"
	"boycott-check/ratelimit"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// contentSecurityPolicy erlaubt Inline-Styles und -Skripte der Startseite sowie Bilder von Wikimedia.
const contentSecurityPolicy = "default-src 'self'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"img-src 'self' https://upload.wikimedia.org data:"

// requestIDMiddleware übernimmt eine vorhandene X-Request-ID oder erzeugt eine neue.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLogMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("Request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", c.GetString(requestIDKey)),
			zap.String("clientIP", c.ClientIP()),
			zap.String("userAgent", c.Request.UserAgent()),
		)
	}
}

// recoveryMiddleware fängt Panics ab und antwortet mit der generischen Fehlermeldung.
func recoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error("Recovered from panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("requestID", c.GetString(requestIDKey)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apierrors.MsgInternal})
	})
}

func securityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	return secure.New(secure.Config{
		SSLRedirect:           cfg.ForceHTTPS,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            cfg.HSTSSeconds,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: contentSecurityPolicy,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	})
}

// rateLimitMiddleware lehnt Anfragen über dem Limit mit 429 ab.
// Fehler des Limiters führen nicht zur Ablehnung (fail open).
func rateLimitMiddleware(limiter *ratelimit.IPRateLimiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			log.Warn("Rate limiter error, failing open", zap.String("scope", limiter.Scope()), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			metrics.RateLimited.WithLabelValues(limiter.Scope()).Inc()
			log.Info("Rate limit exceeded",
				zap.String("scope", limiter.Scope()),
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
			)
			if wait := limiter.RetryAfter(ip); wait > 0 {
				c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(wait.Seconds()))))
			}
			status, msg := apierrors.Classify(apierrors.NewRateLimited())
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"boycott-check/apierrors"
	"boycott-check/metrics"
	"boycott-check/models"
	"boycott-check/services"
)

// checkProductHandler prüft, ob ein Produkt auf der Boykottliste steht.
func checkProductHandler(matcher *services.Matcher, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.CheckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			metrics.RecordCheck(metrics.OutcomeError, time.Since(start))
			respondError(c, log, apierrors.NewInternal(fmt.Errorf("bind check request: %w", err)))
			return
		}

		res, err := matcher.Check(req.ProductName)
		if err != nil {
			outcome := metrics.OutcomeError
			if apierrors.IsInvalidInput(err) {
				outcome = metrics.OutcomeInvalid
			}
			metrics.RecordCheck(outcome, time.Since(start))
			respondError(c, log, err)
			return
		}

		outcome := metrics.OutcomeClean
		if res.Matched {
			outcome = metrics.OutcomeBoycott
		}
		metrics.RecordCheck(outcome, time.Since(start))
		c.JSON(http.StatusOK, services.NewCheckResponse(res))
	}
}

// healthHandler ist die Liveness-Probe und hängt von nichts ab.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func indexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "Boycott Check",
	})
}

// respondError schreibt die öffentliche Fehlermeldung; Details gehen nur ins Log.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status, msg := apierrors.Classify(err)
	if status >= http.StatusInternalServerError {
		log.Error("Error checking product",
			zap.Error(err),
			zap.String("requestID", c.GetString(requestIDKey)),
		)
	}
	c.JSON(status, gin.H{"error": msg})
}

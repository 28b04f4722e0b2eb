package services

import (
	"fmt"

	"boycott-check/models"
)

// NewCheckResponse übersetzt ein MatchResult in die Antwort von POST /check-product.
func NewCheckResponse(res MatchResult) models.CheckResponse {
	if res.Matched {
		return models.CheckResponse{
			IsBoycott:    true,
			Product:      res.Entry,
			Message:      fmt.Sprintf("⚠️ %s is on the boycott list!", res.Entry.Name),
			Alternatives: res.Alternatives,
		}
	}
	return models.CheckResponse{
		IsBoycott:    false,
		Message:      fmt.Sprintf("✓ '%s' is not on the boycott list.", res.Query),
		Alternatives: res.Alternatives,
	}
}

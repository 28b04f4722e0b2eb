package services

import (
	"strings"

	"go.uber.org/zap"

	"boycott-check/apierrors"
	"boycott-check/catalog"
	"boycott-check/models"
)

// MatchResult ist das Ergebnis einer Prüfung.
// Bei Matched == false ist Entry nil und Alternatives leer.
type MatchResult struct {
	Query        string
	Matched      bool
	Entry        *models.BoycottEntry
	Alternatives []models.Alternative
}

// Matcher prüft Produktnamen gegen den Boykottkatalog.
type Matcher struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewMatcher(c *catalog.Catalog, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{catalog: c, logger: logger}
}

// Check sucht query (getrimmt, kleingeschrieben) als Teilstring in Name oder Marke.
// Der erste Treffer in Katalogreihenfolge gewinnt.
func (m *Matcher) Check(query string) (MatchResult, error) {
	folded := catalog.Fold(strings.TrimSpace(query))
	if folded == "" {
		return MatchResult{}, apierrors.NewInvalidInput(apierrors.MsgProductNameRequired)
	}

	for _, e := range m.catalog.Entries() {
		if !e.Matches(folded) {
			continue
		}
		entry := e.BoycottEntry
		m.logger.Debug("Produkt auf Boykottliste gefunden", zap.String("query", folded), zap.String("product", entry.Name))
		return MatchResult{
			Query:        folded,
			Matched:      true,
			Entry:        &entry,
			Alternatives: m.catalog.Alternatives(entry.Category),
		}, nil
	}

	return MatchResult{
		Query:        folded,
		Matched:      false,
		Alternatives: []models.Alternative{},
	}, nil
}

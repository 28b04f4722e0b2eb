package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"boycott-check/models"
)

//go:embed default.yaml
var defaultDocument []byte

// document ist das YAML-Format einer Katalogdatei.
type document struct {
	Entries      []models.BoycottEntry           `yaml:"entries"`
	Alternatives map[string][]models.Alternative `yaml:"alternatives"`
}

// Entry ist ein Katalogeintrag mit vorberechneten, gefalteten Suchschlüsseln.
type Entry struct {
	models.BoycottEntry
	foldedName  string
	foldedBrand string
}

// Matches prüft, ob die bereits gefaltete Anfrage in Name oder Marke enthalten ist.
func (e Entry) Matches(foldedQuery string) bool {
	return strings.Contains(e.foldedName, foldedQuery) || strings.Contains(e.foldedBrand, foldedQuery)
}

// Catalog hält Boykottliste und Alternativen. Nach dem Laden wird nichts mehr verändert,
// daher ist gleichzeitiges Lesen ohne Locks sicher.
type Catalog struct {
	entries      []Entry
	alternatives map[string][]models.Alternative
}

// Fold normalisiert Text für den Vergleich: NFC, dann Kleinschreibung.
// Ein cases.Caser ist nicht goroutine-sicher, deshalb pro Aufruf ein neuer.
func Fold(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// Parse liest einen Katalog im YAML-Format.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog document is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Entries) == 0 {
		return nil, errors.New("catalog has no entries")
	}

	c := &Catalog{
		entries:      make([]Entry, 0, len(doc.Entries)),
		alternatives: make(map[string][]models.Alternative, len(doc.Alternatives)),
	}
	for i, e := range doc.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		c.entries = append(c.entries, Entry{
			BoycottEntry: e,
			foldedName:   Fold(e.Name),
			foldedBrand:  Fold(e.Brand),
		})
	}
	for category, alts := range doc.Alternatives {
		c.alternatives[category] = append([]models.Alternative(nil), alts...)
	}
	return c, nil
}

// LoadFile liest einen Katalog von der Festplatte.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Default gibt den eingebetteten Standardkatalog zurück.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// Entries gibt die Einträge in Deklarationsreihenfolge zurück (Kopie).
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len gibt die Anzahl der Boykott-Einträge zurück.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Alternatives gibt die Alternativen einer Kategorie zurück. Für unbekannte Kategorien
// ist das Ergebnis leer, aber nie nil, damit es als [] serialisiert wird.
func (c *Catalog) Alternatives(category string) []models.Alternative {
	alts := c.alternatives[category]
	out := make([]models.Alternative, len(alts))
	copy(out, alts)
	return out
}

// Categories gibt alle Kategorien mit Alternativen sortiert zurück.
func (c *Catalog) Categories() []string {
	categories := make([]string, 0, len(c.alternatives))
	for category := range c.alternatives {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// UnmappedCategories listet Kategorien, die von Einträgen referenziert werden,
// für die aber keine Alternativen hinterlegt sind.
func (c *Catalog) UnmappedCategories() []string {
	seen := make(map[string]bool)
	var unmapped []string
	for _, e := range c.entries {
		if _, ok := c.alternatives[e.Category]; ok || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		unmapped = append(unmapped, e.Category)
	}
	return unmapped
}

package models

// BoycottEntry repräsentiert ein Produkt auf der Boykottliste.
// Name und Marke dienen als Suchschlüssel, die Kategorie verweist auf die Alternativen.
type BoycottEntry struct {
	Name     string `json:"name" yaml:"name"`
	Brand    string `json:"brand" yaml:"brand"`
	Category string `json:"category" yaml:"category"`
}

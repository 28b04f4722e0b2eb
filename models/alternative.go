package models

// Alternative ist ein lokal hergestelltes Ersatzprodukt für eine Kategorie.
type Alternative struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

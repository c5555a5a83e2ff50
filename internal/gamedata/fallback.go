package gamedata

import (
	_ "embed"
	"log"

	json "github.com/goccy/go-json"
)

// FallbackVersion tags the embedded tables
const FallbackVersion = "16.2.1"

//go:embed fallback.json
var fallbackJSON []byte

// fallbackCatalog returns a fresh copy of the embedded champion and spell
// tables. It has no items, so every item resolves to no asset.
func fallbackCatalog() *Catalog {
	var c Catalog
	if err := json.Unmarshal(fallbackJSON, &c); err != nil {
		log.Printf("[GameData] Embedded fallback catalog is invalid: %v", err)
		c = Catalog{Champions: map[int]string{}, Spells: map[int]string{}}
	}
	if c.Version == "" {
		c.Version = FallbackVersion
	}
	c.Items = map[int]string{}
	c.Fallback = true
	return &c
}

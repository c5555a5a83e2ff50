// Package gamedata resolves champion, summoner spell and item ids to their
// Data Dragon names, with an embedded fallback when Data Dragon is down.
package gamedata

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	DefaultBaseURL = "https://ddragon.leagueoflegends.com"
	DefaultSpell   = "SummonerFlash"
	locale         = "en_US"
)

// Catalog is one immutable snapshot of the id lookups
type Catalog struct {
	Version   string         `json:"version"`
	Champions map[int]string `json:"champions"`
	Spells    map[int]string `json:"spells"`
	Items     map[int]string `json:"items"` // id -> image file, e.g. "3006.png"
	Fallback  bool           `json:"fallback"`
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithBaseURL points the resolver at a different Data Dragon host
func WithBaseURL(url string) ResolverOption {
	return func(r *Resolver) {
		r.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for catalog requests
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) {
		r.httpClient = c
	}
}

// Resolver serves id lookups from the current catalog
type Resolver struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	catalog *Catalog
}

// NewResolver creates a resolver serving the fallback catalog until Load
// succeeds
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		catalog:    fallbackCatalog(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load fetches the latest catalog from Data Dragon and swaps it in. On any
// failure the fallback catalog is installed and the error is returned.
func (r *Resolver) Load(ctx context.Context) error {
	catalog, err := r.fetchCatalog(ctx)
	if err != nil {
		r.swap(fallbackCatalog())
		return err
	}

	r.swap(catalog)
	log.Printf("[GameData] Loaded %d champions, %d spells, %d items (v%s)",
		len(catalog.Champions), len(catalog.Spells), len(catalog.Items), catalog.Version)
	return nil
}

func (r *Resolver) swap(c *Catalog) {
	r.mu.Lock()
	r.catalog = c
	r.mu.Unlock()
}

// Catalog returns the current snapshot. Callers must not modify it.
func (r *Resolver) Catalog() *Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.catalog
}

// Version returns the catalog version in use
func (r *Resolver) Version() string {
	return r.Catalog().Version
}

// IsFallback reports whether the embedded catalog is being served
func (r *Resolver) IsFallback() bool {
	return r.Catalog().Fallback
}

// ResolveChampion returns the champion's internal name, or "Champion<id>"
// when unknown
func (r *Resolver) ResolveChampion(id int) string {
	if name, ok := r.Catalog().Champions[id]; ok {
		return name
	}
	return "Champion" + strconv.Itoa(id)
}

// ResolveSpell returns the summoner spell's internal name, defaulting to
// Flash when unknown
func (r *Resolver) ResolveSpell(id int) string {
	if name, ok := r.Catalog().Spells[id]; ok {
		return name
	}
	return DefaultSpell
}

// ResolveItemAsset returns the item's image file, or "" for an empty slot or
// an unknown item
func (r *Resolver) ResolveItemAsset(id int) string {
	if id <= 0 {
		return ""
	}
	return r.Catalog().Items[id]
}

// ChampionIconURL returns the square icon URL for a champion id
func (r *Resolver) ChampionIconURL(id int) string {
	return r.cdnURL("img/champion/" + r.ResolveChampion(id) + ".png")
}

// SpellIconURL returns the icon URL for a summoner spell id
func (r *Resolver) SpellIconURL(id int) string {
	return r.cdnURL("img/spell/" + r.ResolveSpell(id) + ".png")
}

// ItemIconURL returns the icon URL for an item id, or "" when the item has
// no asset
func (r *Resolver) ItemIconURL(id int) string {
	asset := r.ResolveItemAsset(id)
	if asset == "" {
		return ""
	}
	return r.cdnURL("img/item/" + asset)
}

// ProfileIconURL returns the URL of a summoner profile icon
func (r *Resolver) ProfileIconURL(iconID int) string {
	return r.cdnURL(fmt.Sprintf("img/profileicon/%d.png", iconID))
}

func (r *Resolver) cdnURL(path string) string {
	return fmt.Sprintf("%s/cdn/%s/%s", r.baseURL, r.Version(), path)
}

type keyedEntry struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

type itemEntry struct {
	Image struct {
		Full string `json:"full"`
	} `json:"image"`
}

// fetchCatalog runs the versions -> champion -> summoner -> item chain
func (r *Resolver) fetchCatalog(ctx context.Context) (*Catalog, error) {
	var versions []string
	if err := r.getJSON(ctx, "/api/versions.json", &versions); err != nil {
		return nil, fmt.Errorf("failed to fetch versions: %w", err)
	}
	if len(versions) == 0 || versions[0] == "" {
		return nil, fmt.Errorf("no versions available")
	}
	version := versions[0]

	var champData struct {
		Data map[string]keyedEntry `json:"data"`
	}
	if err := r.getJSON(ctx, dataPath(version, "champion.json"), &champData); err != nil {
		return nil, fmt.Errorf("failed to fetch champions: %w", err)
	}
	champions, err := byKey(champData.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse champions: %w", err)
	}

	var spellData struct {
		Data map[string]keyedEntry `json:"data"`
	}
	if err := r.getJSON(ctx, dataPath(version, "summoner.json"), &spellData); err != nil {
		return nil, fmt.Errorf("failed to fetch summoner spells: %w", err)
	}
	spells, err := byKey(spellData.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summoner spells: %w", err)
	}

	var itemData struct {
		Data map[string]itemEntry `json:"data"`
	}
	if err := r.getJSON(ctx, dataPath(version, "item.json"), &itemData); err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	items := make(map[int]string, len(itemData.Data))
	for key, item := range itemData.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse items: bad id %q", key)
		}
		items[id] = item.Image.Full
	}

	return &Catalog{
		Version:   version,
		Champions: champions,
		Spells:    spells,
		Items:     items,
	}, nil
}

// byKey indexes Data Dragon entries by their numeric key
func byKey(data map[string]keyedEntry) (map[int]string, error) {
	out := make(map[int]string, len(data))
	for _, e := range data {
		id, err := strconv.Atoi(e.Key)
		if err != nil {
			return nil, fmt.Errorf("bad key %q for %s", e.Key, e.ID)
		}
		out[id] = e.ID
	}
	return out, nil
}

func dataPath(version, file string) string {
	return fmt.Sprintf("/cdn/%s/data/%s/%s", version, locale, file)
}

func (r *Resolver) getJSON(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

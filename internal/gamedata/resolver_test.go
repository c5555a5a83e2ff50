package gamedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const (
	testVersion   = "25.1.1"
	championsJSON = `{"data":{"Ahri":{"id":"Ahri","key":"103"},"MonkeyKing":{"id":"MonkeyKing","key":"62"}}}`
	spellsJSON    = `{"data":{"SummonerFlash":{"id":"SummonerFlash","key":"4"},"SummonerDot":{"id":"SummonerDot","key":"14"}}}`
	itemsJSON     = `{"data":{"3006":{"image":{"full":"3006.png"}},"1001":{"image":{"full":"1001.png"}}}}`
)

// newDataDragon serves a minimal Data Dragon; a path listed in broken
// answers 500 and a path listed in garbage answers invalid JSON
func newDataDragon(t *testing.T, broken, garbage string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if broken != "" && strings.HasSuffix(path, broken) {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if garbage != "" && strings.HasSuffix(path, garbage) {
			w.Write([]byte(`{not json`))
			return
		}
		switch path {
		case "/api/versions.json":
			w.Write([]byte(`["` + testVersion + `","24.24.1"]`))
		case "/cdn/" + testVersion + "/data/en_US/champion.json":
			w.Write([]byte(championsJSON))
		case "/cdn/" + testVersion + "/data/en_US/summoner.json":
			w.Write([]byte(spellsJSON))
		case "/cdn/" + testVersion + "/data/en_US/item.json":
			w.Write([]byte(itemsJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoad_Success(t *testing.T) {
	server := newDataDragon(t, "", "")
	r := NewResolver(WithBaseURL(server.URL))

	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if r.IsFallback() {
		t.Error("expected live catalog")
	}
	if r.Version() != testVersion {
		t.Errorf("Version() = %q, want %q", r.Version(), testVersion)
	}
	if got := r.ResolveChampion(62); got != "MonkeyKing" {
		t.Errorf("ResolveChampion(62) = %q, want MonkeyKing", got)
	}
	if got := r.ResolveSpell(14); got != "SummonerDot" {
		t.Errorf("ResolveSpell(14) = %q, want SummonerDot", got)
	}
	if got := r.ResolveItemAsset(3006); got != "3006.png" {
		t.Errorf("ResolveItemAsset(3006) = %q, want 3006.png", got)
	}
	// champion 1 is not in the live test catalog
	if got := r.ResolveChampion(1); got != "Champion1" {
		t.Errorf("ResolveChampion(1) = %q, want Champion1", got)
	}
}

func TestLoad_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		broken  string
		garbage string
	}{
		{"versions fetch fails", "versions.json", ""},
		{"champions fetch fails", "champion.json", ""},
		{"spells fetch fails", "summoner.json", ""},
		{"items fetch fails", "item.json", ""},
		{"versions undecodable", "", "versions.json"},
		{"items undecodable", "", "item.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newDataDragon(t, tt.broken, tt.garbage)
			r := NewResolver(WithBaseURL(server.URL))

			if err := r.Load(context.Background()); err == nil {
				t.Fatal("expected Load() error")
			}

			if !r.IsFallback() {
				t.Error("expected fallback catalog")
			}
			if got := r.ResolveChampion(1); got != "Annie" {
				t.Errorf("ResolveChampion(1) = %q, want Annie", got)
			}
			// nothing from a partially fetched live catalog leaks through
			if r.Version() != FallbackVersion {
				t.Errorf("Version() = %q, want %q", r.Version(), FallbackVersion)
			}
			if got := r.ResolveItemAsset(3006); got != "" {
				t.Errorf("ResolveItemAsset(3006) = %q, want empty", got)
			}
		})
	}
}

func TestLoad_UnreachableHost(t *testing.T) {
	server := newDataDragon(t, "", "")
	url := server.URL
	server.Close()

	r := NewResolver(WithBaseURL(url))
	if err := r.Load(context.Background()); err == nil {
		t.Fatal("expected Load() error")
	}
	if got := r.ResolveChampion(1); got != "Annie" {
		t.Errorf("ResolveChampion(1) = %q, want Annie", got)
	}
}

func TestLoad_FailureReplacesLiveCatalog(t *testing.T) {
	server := newDataDragon(t, "", "")
	r := NewResolver(WithBaseURL(server.URL))
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	broken := newDataDragon(t, "versions.json", "")
	r.baseURL = broken.URL
	if err := r.Load(context.Background()); err == nil {
		t.Fatal("expected Load() error")
	}
	if !r.IsFallback() {
		t.Error("failed reload should install the fallback catalog")
	}
}

func TestResolver_BeforeLoad(t *testing.T) {
	r := NewResolver()

	if !r.IsFallback() {
		t.Error("new resolver should serve the fallback catalog")
	}
	tests := []struct {
		id   int
		want string
	}{
		{1, "Annie"},
		{62, "Wukong"},
		{103, "Ahri"},
		{99999, "Champion99999"},
	}
	for _, tt := range tests {
		if got := r.ResolveChampion(tt.id); got != tt.want {
			t.Errorf("ResolveChampion(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestResolveSpell(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		id   int
		want string
	}{
		{4, "SummonerFlash"},
		{11, "SummonerSmite"},
		{32, "SummonerSnowball"},
		{0, DefaultSpell},
		{555, DefaultSpell},
	}
	for _, tt := range tests {
		if got := r.ResolveSpell(tt.id); got != tt.want {
			t.Errorf("ResolveSpell(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestResolveItemAsset_EmptySlots(t *testing.T) {
	server := newDataDragon(t, "", "")
	r := NewResolver(WithBaseURL(server.URL))
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, id := range []int{0, -1, 424242} {
		if got := r.ResolveItemAsset(id); got != "" {
			t.Errorf("ResolveItemAsset(%d) = %q, want empty", id, got)
		}
		if got := r.ItemIconURL(id); got != "" {
			t.Errorf("ItemIconURL(%d) = %q, want empty", id, got)
		}
	}
}

func TestIconURLs(t *testing.T) {
	server := newDataDragon(t, "", "")
	r := NewResolver(WithBaseURL(server.URL))
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	base := server.URL + "/cdn/" + testVersion
	tests := []struct {
		got, want string
	}{
		{r.ChampionIconURL(103), base + "/img/champion/Ahri.png"},
		{r.SpellIconURL(4), base + "/img/spell/SummonerFlash.png"},
		{r.ItemIconURL(1001), base + "/img/item/1001.png"},
		{r.ProfileIconURL(29), base + "/img/profileicon/29.png"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestFallbackCatalog_IsFreshCopy(t *testing.T) {
	a := fallbackCatalog()
	a.Champions[1] = "Changed"

	if got := fallbackCatalog().Champions[1]; got != "Annie" {
		t.Errorf("fallback catalog shared state: got %q", got)
	}
}

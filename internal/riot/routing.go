package riot

import (
	"fmt"
	"strings"
)

// Routing selects which upstream cluster a query targets. Account and match
// endpoints live on the regional host, summoner/league/mastery on the platform host.
type Routing struct {
	Region   string `json:"region"`
	Platform string `json:"platform"`
}

// Server is a selectable game server
type Server struct {
	Label   string  `json:"label"`
	Routing Routing `json:"routing"`
}

// Servers lists the supported game servers in display order
var Servers = []Server{
	{Label: "NA", Routing: Routing{Region: "americas", Platform: "na1"}},
	{Label: "EUW", Routing: Routing{Region: "europe", Platform: "euw1"}},
	{Label: "KR", Routing: Routing{Region: "asia", Platform: "kr"}},
	{Label: "BR", Routing: Routing{Region: "americas", Platform: "br1"}},
	{Label: "EUNE", Routing: Routing{Region: "europe", Platform: "eun1"}},
	{Label: "LAN", Routing: Routing{Region: "americas", Platform: "la1"}},
	{Label: "LAS", Routing: Routing{Region: "americas", Platform: "la2"}},
	{Label: "OCE", Routing: Routing{Region: "sea", Platform: "oc1"}},
	{Label: "JP", Routing: Routing{Region: "asia", Platform: "jp1"}},
	{Label: "TR", Routing: Routing{Region: "europe", Platform: "tr1"}},
	{Label: "RU", Routing: Routing{Region: "europe", Platform: "ru"}},
}

// DefaultRouting is used when a caller does not pick a server
var DefaultRouting = Routing{Region: "americas", Platform: "br1"}

// DefaultTagLine is assumed when a Riot ID is given without a tag
const DefaultTagLine = "BR1"

// ServerByLabel finds a server by its label (case-insensitive)
func ServerByLabel(label string) (Server, bool) {
	for _, s := range Servers {
		if strings.EqualFold(s.Label, label) {
			return s, true
		}
	}
	return Server{}, false
}

// RegionForPlatform maps a platform id (e.g. "euw1") to its regional cluster
func RegionForPlatform(platform string) (string, bool) {
	platform = strings.ToLower(platform)
	for _, s := range Servers {
		if s.Routing.Platform == platform {
			return s.Routing.Region, true
		}
	}
	return "", false
}

// IsRegion reports whether region is a known regional cluster
func IsRegion(region string) bool {
	for _, s := range Servers {
		if s.Routing.Region == region {
			return true
		}
	}
	return false
}

// ResolveRouting builds a Routing from either a server label or an explicit
// region/platform pair. A platform alone is enough to derive the region.
func ResolveRouting(server, region, platform string) (Routing, error) {
	if server != "" {
		s, ok := ServerByLabel(server)
		if !ok {
			return Routing{}, fmt.Errorf("unknown server %q", server)
		}
		return s.Routing, nil
	}

	region = strings.ToLower(region)
	platform = strings.ToLower(platform)

	if region == "" && platform == "" {
		return DefaultRouting, nil
	}
	if platform != "" {
		r, ok := RegionForPlatform(platform)
		if !ok {
			return Routing{}, fmt.Errorf("unknown platform %q", platform)
		}
		if region != "" && region != r {
			return Routing{}, fmt.Errorf("platform %q does not belong to region %q", platform, region)
		}
		return Routing{Region: r, Platform: platform}, nil
	}
	if !IsRegion(region) {
		return Routing{}, fmt.Errorf("unknown region %q", region)
	}
	for _, s := range Servers {
		if s.Routing.Region == region {
			return s.Routing, nil
		}
	}
	return Routing{}, fmt.Errorf("unknown region %q", region)
}

// ParseRiotID splits "GameName#TagLine". A missing tag falls back to DefaultTagLine.
func ParseRiotID(riotID string) (gameName, tagLine string) {
	riotID = strings.TrimSpace(riotID)
	name, tag, found := strings.Cut(riotID, "#")
	name = strings.TrimSpace(name)
	tag = strings.TrimSpace(tag)
	if !found || tag == "" {
		tag = DefaultTagLine
	}
	return name, tag
}

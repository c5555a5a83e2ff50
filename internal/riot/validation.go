package riot

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxGameNameLength = 50
	MaxTagLineLength  = 20
	MaxMatchIDLength  = 50
	MaxPUUIDLength    = 100
)

// ValidationError describes a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

var (
	tagLineRegex = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
	matchIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
	puuidRegex   = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
)

// ValidateGameName checks a Riot ID game name. Names may contain letters
// from any script, digits, spaces and a few punctuation marks.
func ValidateGameName(gameName string) error {
	if gameName == "" {
		return ValidationError{Field: "gameName", Message: "game name cannot be empty"}
	}
	if utf8.RuneCountInString(gameName) > MaxGameNameLength {
		return ValidationError{Field: "gameName", Message: fmt.Sprintf("game name cannot exceed %d characters", MaxGameNameLength)}
	}
	if strings.TrimSpace(gameName) != gameName {
		return ValidationError{Field: "gameName", Message: "game name cannot start or end with whitespace"}
	}
	for _, r := range gameName {
		if unicode.IsControl(r) || r == '#' || r == '/' || r == '?' {
			return ValidationError{Field: "gameName", Message: "game name contains invalid characters"}
		}
	}
	return nil
}

// ValidateTagLine checks a Riot ID tag line
func ValidateTagLine(tagLine string) error {
	if tagLine == "" {
		return ValidationError{Field: "tagLine", Message: "tag line cannot be empty"}
	}
	if utf8.RuneCountInString(tagLine) > MaxTagLineLength {
		return ValidationError{Field: "tagLine", Message: fmt.Sprintf("tag line cannot exceed %d characters", MaxTagLineLength)}
	}
	if !tagLineRegex.MatchString(tagLine) {
		return ValidationError{Field: "tagLine", Message: "tag line contains invalid characters"}
	}
	return nil
}

// ValidateMatchID checks a match id such as "BR1_2931234567"
func ValidateMatchID(matchID string) error {
	if matchID == "" {
		return ValidationError{Field: "matchId", Message: "match id cannot be empty"}
	}
	if len(matchID) > MaxMatchIDLength {
		return ValidationError{Field: "matchId", Message: fmt.Sprintf("match id cannot exceed %d characters", MaxMatchIDLength)}
	}
	if !matchIDRegex.MatchString(matchID) {
		return ValidationError{Field: "matchId", Message: "match id contains invalid characters"}
	}
	return nil
}

// ValidatePUUID checks an encrypted PUUID
func ValidatePUUID(puuid string) error {
	if puuid == "" {
		return ValidationError{Field: "puuid", Message: "puuid cannot be empty"}
	}
	if len(puuid) > MaxPUUIDLength {
		return ValidationError{Field: "puuid", Message: fmt.Sprintf("puuid cannot exceed %d characters", MaxPUUIDLength)}
	}
	if !puuidRegex.MatchString(puuid) {
		return ValidationError{Field: "puuid", Message: "puuid contains invalid characters"}
	}
	return nil
}

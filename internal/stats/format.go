package stats

import "fmt"

var queueNames = map[int]string{
	QueueRankedSolo:  "Ranked Solo/Duo",
	QueueRankedFlex:  "Ranked Flex",
	QueueNormalDraft: "Normal",
	QueueNormalBlind: "Normal",
	QueueARAM:        "ARAM",
	QueueArena:       "Arena",
}

var modeNames = map[string]string{
	"CLASSIC":      "Normal",
	"ARAM":         "ARAM",
	"URF":          "URF",
	"ULTBOOK":      "Ultimate Spellbook",
	"CHERRY":       "Arena",
	"TUTORIAL":     "Tutorial",
	"PRACTICETOOL": "Practice Tool",
}

// QueueName returns a display label for a match, preferring the queue id and
// falling back to the game mode
func QueueName(queueID int, gameMode string) string {
	if name, ok := queueNames[queueID]; ok {
		return name
	}
	if name, ok := modeNames[gameMode]; ok {
		return name
	}
	if gameMode != "" {
		return gameMode
	}
	return "Custom"
}

// FormatDuration renders a game length in seconds as m:ss
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

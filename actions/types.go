package actions

import (
	"context"
	"strings"
	"time"
	"unicode"
)

type Tab string

const (
	TabQuick       Tab = "quick"
	TabPolls       Tab = "polls"
	TabPredictions Tab = "predictions"
	TabTournament  Tab = "tournament"
	TabChallenges  Tab = "challenges"
	TabOverlays    Tab = "overlays"
	TabStream      Tab = "stream"
	TabReplays     Tab = "replays"
	TabVOD         Tab = "vod"
	TabScrims      Tab = "scrims"
)

var tabTitles = map[Tab]string{
	TabQuick:       "Quick Actions",
	TabPolls:       "Polls",
	TabPredictions: "Predictions",
	TabTournament:  "Tournament",
	TabChallenges:  "Challenges",
	TabOverlays:    "Overlays",
	TabStream:      "Stream",
	TabReplays:     "Replays",
	TabVOD:         "VOD Review",
	TabScrims:      "Scrims",
}

func (t Tab) Title() string {
	if title, ok := tabTitles[t]; ok {
		return title
	}
	return string(t)
}

// Notice is what an action hands back for the presentation layer to show.
// Choices are offered as buttons; a non-zero Duration closes the notice
// automatically.
type Notice struct {
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Choices  []string      `json:"choices,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Action is one button of the companion window. Input carries free text for
// the actions that take it (custom prediction, VOD path, timestamp note) and
// is ignored by the rest.
type Action interface {
	Name() string
	Category() string
	Run(ctx context.Context, input string) (Notice, error)
}

// Now returns the current time. Tests replace it.
var Now = time.Now

// Slug turns a button label into a URL-friendly key: "10+ Eliminations?"
// becomes "10-eliminations".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

var yesNo = []string{"Yes", "No"}

// How long auto-closing notices stay up.
const (
	VictoryPopup   = 3 * time.Second
	Top10Popup     = 2 * time.Second
	ChallengePopup = 3 * time.Second
)

func VictoryNotice() Notice {
	return Notice{Title: "Victory", Message: "VICTORY ROYALE!", Duration: VictoryPopup}
}

func Top10Notice() Notice {
	return Notice{Title: "Top 10", Message: "TOP 10!", Duration: Top10Popup}
}

// Prompter is implemented by actions that read free text before running.
type Prompter interface {
	Prompt() string
}

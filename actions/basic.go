package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrEmptyPrediction = errors.New("prediction text is empty")

// question opens a Yes/No poll or prediction.
type question struct {
	category string
	text     string
	title    string
}

func (q question) Name() string     { return q.text }
func (q question) Category() string { return q.category }

func (q question) Run(ctx context.Context, _ string) (Notice, error) {
	return Notice{Title: q.title, Message: q.text, Choices: append([]string(nil), yesNo...)}, nil
}

type customPrediction struct{}

func (customPrediction) Name() string     { return "Start Custom Prediction" }
func (customPrediction) Category() string { return "Custom Prediction" }

func (customPrediction) Run(ctx context.Context, input string) (Notice, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return Notice{}, ErrEmptyPrediction
	}
	return question{category: "Custom Prediction", text: text, title: "Prediction"}.Run(ctx, "")
}

// banner reports a fixed message, optionally formatted with the action name.
type banner struct {
	name     string
	category string
	title    string
	format   string
	duration time.Duration
}

func (b banner) Name() string     { return b.name }
func (b banner) Category() string { return b.category }

func (b banner) Run(ctx context.Context, _ string) (Notice, error) {
	msg := b.format
	if strings.Contains(msg, "%s") {
		msg = fmt.Sprintf(b.format, b.name)
	}
	return Notice{Title: b.title, Message: msg, Duration: b.duration}, nil
}

func challenge(category, name string) Action {
	return banner{
		name:     name,
		category: category,
		title:    "Challenge",
		format:   "Challenge Started:\n%s",
		duration: ChallengePopup,
	}
}

func scrim(category, name string) Action {
	return banner{name: name, category: category, title: "Scrim Started", format: "Starting %s scrim mode"}
}

func tournament(name string) Action {
	return banner{name: name, category: "Tournament Controls", title: "Tournament", format: "Starting %s"}
}

func (customPrediction) Prompt() string { return "Enter your prediction: " }

package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNoVOD          = errors.New("no VOD loaded")
	ErrNoNotes        = errors.New("no VOD notes to export")
	ErrUnsupportedVOD = errors.New("unsupported VOD file type")
)

var vodExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mkv": true,
}

type VODNote struct {
	Offset time.Duration `json:"offset"`
	Text   string        `json:"text"`
}

// VODReview holds the VOD under review and the notes taken against it.
// Offsets are measured from the moment the VOD was loaded.
type VODReview struct {
	mu       sync.Mutex
	path     string
	loadedAt time.Time
	notes    []VODNote
}

func (v *VODReview) Current() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.path
}

func (v *VODReview) Notes() []VODNote {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]VODNote(nil), v.notes...)
}

// Load selects path as the current VOD and clears the notes of the previous one.
func (v *VODReview) Load(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.Wrap(ErrUnsupportedVOD, "empty path")
	}
	if !vodExtensions[strings.ToLower(filepath.Ext(path))] {
		return errors.Wrapf(ErrUnsupportedVOD, "%s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "opening VOD %s", path)
	}
	if info.IsDir() {
		return errors.Errorf("VOD %s is a directory", path)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.path = path
	v.loadedAt = Now()
	v.notes = nil
	return nil
}

func (v *VODReview) AddTimestamp(text string) (VODNote, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.path == "" {
		return VODNote{}, ErrNoVOD
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = "Timestamp"
	}
	note := VODNote{Offset: Now().Sub(v.loadedAt).Truncate(time.Second), Text: text}
	v.notes = append(v.notes, note)
	return note, nil
}

// Export writes the notes next to the VOD as <name>.notes.txt and returns the
// file path.
func (v *VODReview) Export() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.path == "" {
		return "", ErrNoVOD
	}
	if len(v.notes) == 0 {
		return "", ErrNoNotes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "VOD: %s\n", filepath.Base(v.path))
	for _, note := range v.notes {
		fmt.Fprintf(&b, "%s  %s\n", formatOffset(note.Offset), note.Text)
	}

	out := strings.TrimSuffix(v.path, filepath.Ext(v.path)) + ".notes.txt"
	if err := os.WriteFile(out, []byte(b.String()), 0o644); err != nil {
		return "", errors.Wrap(err, "writing VOD notes")
	}
	return out, nil
}

func formatOffset(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

type loadVOD struct{ vod *VODReview }

func (loadVOD) Name() string     { return "Load VOD" }
func (loadVOD) Category() string { return "VOD Review" }

func (a loadVOD) Run(ctx context.Context, input string) (Notice, error) {
	if err := a.vod.Load(input); err != nil {
		return Notice{}, err
	}
	return Notice{Title: "VOD Loaded", Message: "VOD file loaded successfully"}, nil
}

type addTimestamp struct{ vod *VODReview }

func (addTimestamp) Name() string     { return "Add Timestamp" }
func (addTimestamp) Category() string { return "VOD Review" }

func (a addTimestamp) Run(ctx context.Context, input string) (Notice, error) {
	note, err := a.vod.AddTimestamp(input)
	if err != nil {
		return Notice{}, err
	}
	return Notice{Title: "Timestamp Added", Message: formatOffset(note.Offset) + "  " + note.Text}, nil
}

type exportNotes struct{ vod *VODReview }

func (exportNotes) Name() string     { return "Export Notes" }
func (exportNotes) Category() string { return "VOD Review" }

func (a exportNotes) Run(ctx context.Context, _ string) (Notice, error) {
	path, err := a.vod.Export()
	if err != nil {
		return Notice{}, err
	}
	return Notice{Title: "Notes Exported", Message: "VOD notes written to " + path}, nil
}

func (loadVOD) Prompt() string      { return "Video file path (.mp4, .avi, .mkv): " }
func (addTimestamp) Prompt() string { return "Note for this timestamp (optional): " }

package actions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "Tilted Towers", expected: "tilted-towers"},
		{name: "10+ Eliminations?", expected: "10-eliminations"},
		{name: "Squad Up with Viewers?", expected: "squad-up-with-viewers"},
		{name: "  Realistic 1v1 ", expected: "realistic-1v1"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Slug(tc.name))
	}
}

func TestCatalogTabsInOrder(t *testing.T) {
	c := NewCatalog()
	assert.Equal(t, []Tab{
		TabQuick, TabPolls, TabPredictions, TabTournament, TabChallenges,
		TabOverlays, TabStream, TabReplays, TabVOD, TabScrims,
	}, c.Tabs())
	assert.Len(t, c.Actions(TabPolls), 15)
	assert.Len(t, c.Actions(TabPredictions), 9)
	assert.Len(t, c.Actions(TabChallenges), 15)
	assert.Len(t, c.Actions(TabScrims), 7)
}

func TestPollOffersYesNo(t *testing.T) {
	c := NewCatalog()

	notice, err := c.Run(context.Background(), TabPolls, "tilted-towers", "")
	require.NoError(t, err)
	assert.Equal(t, "Poll", notice.Title)
	assert.Equal(t, "Tilted Towers", notice.Message)
	assert.Equal(t, []string{"Yes", "No"}, notice.Choices)
}

func TestCustomPrediction(t *testing.T) {
	c := NewCatalog()

	_, err := c.Run(context.Background(), TabPredictions, "Start Custom Prediction", "   ")
	assert.True(t, errors.Is(err, ErrEmptyPrediction))

	notice, err := c.Run(context.Background(), TabPredictions, "start-custom-prediction", "  Win with a pickaxe? ")
	require.NoError(t, err)
	assert.Equal(t, "Prediction", notice.Title)
	assert.Equal(t, "Win with a pickaxe?", notice.Message)
}

func TestChallengeAndScrimNotices(t *testing.T) {
	c := NewCatalog()

	notice, err := c.Run(context.Background(), TabChallenges, "Edge of Storm", "")
	require.NoError(t, err)
	assert.Equal(t, "Challenge Started:\nEdge of Storm", notice.Message)
	assert.Equal(t, ChallengePopup, notice.Duration)

	notice, err = c.Run(context.Background(), TabScrims, "zone-wars", "")
	require.NoError(t, err)
	assert.Equal(t, "Scrim Started", notice.Title)
	assert.Equal(t, "Starting Zone Wars scrim mode", notice.Message)
}

func TestPlaceholderBanners(t *testing.T) {
	c := NewCatalog()
	testCases := []struct {
		tab      Tab
		name     string
		expected string
	}{
		{tab: TabQuick, name: "Save Clip", expected: "Saving clip..."},
		{tab: TabReplays, name: "Start Recording", expected: "Starting replay recording..."},
		{tab: TabReplays, name: "Save Last Match", expected: "Saving replay..."},
		{tab: TabReplays, name: "View Replays", expected: "Opening replay viewer..."},
		{tab: TabReplays, name: "export-highlight", expected: "Exporting highlight..."},
	}

	for _, tc := range testCases {
		notice, err := c.Run(context.Background(), tc.tab, tc.name, "")
		require.NoError(t, err)
		assert.Equal(t, tc.expected, notice.Message, tc.name)
	}
}

func TestUnknownAction(t *testing.T) {
	c := NewCatalog()
	_, err := c.Run(context.Background(), TabPolls, "Moon Base", "")
	assert.True(t, errors.Is(err, ErrUnknownAction))

	_, err = c.Run(context.Background(), Tab("nope"), "Tilted Towers", "")
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCatalog().Run(ctx, TabPolls, "Tilted Towers", "")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStreamConnectToggles(t *testing.T) {
	c := NewCatalog()

	notice, err := c.Run(context.Background(), TabStream, "Connect to Twitch", "")
	require.NoError(t, err)
	assert.Equal(t, "Stream Connected", notice.Message)
	assert.True(t, c.Stream.Connected())

	notice, err = c.Run(context.Background(), TabStream, "Connect to Twitch", "")
	require.NoError(t, err)
	assert.Equal(t, "Stream Disconnected", notice.Message)
	assert.False(t, c.Stream.Connected())
}

func TestOverlayToggles(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	_, err := c.Run(ctx, TabOverlays, "Victory Counter", "")
	require.NoError(t, err)
	_, err = c.Run(ctx, TabOverlays, "Stats Display", "")
	require.NoError(t, err)
	notice, err := c.Run(ctx, TabOverlays, "Victory Counter", "")
	require.NoError(t, err)
	assert.Equal(t, "Victory Counter hidden", notice.Message)
	assert.Equal(t, []string{"Stats Display"}, c.Overlays.Visible())

	assert.True(t, c.Overlays.Enabled())
	notice, err = c.Run(ctx, TabQuick, "Toggle Overlay", "")
	require.NoError(t, err)
	assert.Equal(t, "Overlay hidden", notice.Message)
	assert.False(t, c.Overlays.Enabled())
}

func TestOnRunCalledForSuccessOnly(t *testing.T) {
	c := NewCatalog()
	var ran []Tab
	c.OnRun = func(tab Tab) { ran = append(ran, tab) }

	_, _ = c.Run(context.Background(), TabPolls, "Lazy Lake", "")
	_, _ = c.Run(context.Background(), TabPredictions, "Start Custom Prediction", "")
	assert.Equal(t, []Tab{TabPolls}, ran)
}

func TestVODReview(t *testing.T) {
	start := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	clock := start
	Now = func() time.Time { return clock }
	defer func() { Now = time.Now }()

	c := NewCatalog()
	ctx := context.Background()

	_, err := c.Run(ctx, TabVOD, "Add Timestamp", "fight")
	assert.True(t, errors.Is(err, ErrNoVOD))

	dir := t.TempDir()
	vodPath := filepath.Join(dir, "match.MP4")
	require.NoError(t, os.WriteFile(vodPath, []byte("not really a video"), 0o644))

	_, err = c.Run(ctx, TabVOD, "Load VOD", filepath.Join(dir, "notes.txt"))
	assert.True(t, errors.Is(err, ErrUnsupportedVOD))
	_, err = c.Run(ctx, TabVOD, "Load VOD", filepath.Join(dir, "missing.mkv"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	notice, err := c.Run(ctx, TabVOD, "Load VOD", vodPath)
	require.NoError(t, err)
	assert.Equal(t, "VOD Loaded", notice.Title)
	assert.Equal(t, vodPath, c.VOD.Current())

	_, err = c.Run(ctx, TabVOD, "Export Notes", "")
	assert.True(t, errors.Is(err, ErrNoNotes))

	clock = start.Add(1*time.Hour + 2*time.Minute + 3*time.Second + 400*time.Millisecond)
	notice, err = c.Run(ctx, TabVOD, "Add Timestamp", "third party")
	require.NoError(t, err)
	assert.Equal(t, "01:02:03  third party", notice.Message)

	clock = start.Add(90 * time.Minute)
	_, err = c.Run(ctx, TabVOD, "add-timestamp", "")
	require.NoError(t, err)

	notice, err = c.Run(ctx, TabVOD, "Export Notes", "")
	require.NoError(t, err)
	outPath := filepath.Join(dir, "match.notes.txt")
	assert.Contains(t, notice.Message, outPath)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "VOD: match.MP4\n01:02:03  third party\n01:30:00  Timestamp\n", string(raw))
}

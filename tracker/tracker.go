package tracker

import (
	"io"
	"math"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Observer is notified about tracker events. The metrics package provides the
// production implementation.
type Observer interface {
	VictoryRecorded()
	Top10Recorded()
	GameStarted()
	SessionReset()
	SaveFailed()
	EliminationsChanged(current int)
}

type nopObserver struct{}

func (nopObserver) VictoryRecorded() {}
func (nopObserver) Top10Recorded()   {}
func (nopObserver) GameStarted()     {}
func (nopObserver) SessionReset()    {}
func (nopObserver) SaveFailed()      {}

func (nopObserver) EliminationsChanged(int) {}

// Tracker reads and writes SessionStats to a single JSON file. Every mutating
// operation takes the current stats by value and returns the updated value;
// the tracker itself holds no counters.
type Tracker struct {
	FilePath string
	Observer Observer

	logger zerolog.Logger
}

func NewTracker(filePath string, logger *zerolog.Logger) *Tracker {
	if filePath == "" {
		filePath = DefaultStatsFile
	}
	t := &Tracker{
		FilePath: filePath,
		Observer: nopObserver{},
		logger:   zerolog.Nop(),
	}
	if logger != nil {
		t.logger = logger.With().Str("statsFile", filePath).Logger()
	}
	return t
}

// Load reads the stats file. It always returns usable stats: a missing file
// yields zero stats with LoadNew, an unreadable or corrupt one yields zero
// stats with LoadReset and a *StorageReadError describing why.
func (t *Tracker) Load() (SessionStats, LoadStatus, error) {
	file, err := os.Open(t.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		t.logger.Info().Msg("No existing stats file found, starting new session")
		return SessionStats{}, LoadNew, nil
	}
	if err != nil {
		return t.fallback(err)
	}
	defer file.Close()

	stats, err := decodeStats(file)
	if err != nil {
		return t.fallback(err)
	}

	t.logger.Info().
		Int("victories", stats.Victories).
		Int("gamesPlayed", stats.GamesPlayed).
		Msg("Loaded stats")
	return stats, LoadLoaded, nil
}

func (t *Tracker) fallback(cause error) (SessionStats, LoadStatus, error) {
	readErr := &StorageReadError{Path: t.FilePath, Err: cause}
	t.logger.Warn().Err(cause).Msg("Error loading stats, starting from zero")
	return SessionStats{}, LoadReset, readErr
}

func decodeStats(r io.Reader) (SessionStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return SessionStats{}, errors.Wrap(err, "reading stats")
	}
	if !json.Valid(data) {
		return SessionStats{}, errors.New("stats file is not valid JSON")
	}

	var stats SessionStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return SessionStats{}, errors.Wrap(err, "decoding stats")
	}
	if !stats.valid() {
		return SessionStats{}, errors.Errorf("negative counter in %+v", stats)
	}
	return stats, nil
}

// Save overwrites the stats file with stats. A failure is returned as a
// *StorageWriteError and never affects the caller's in-memory stats.
func (t *Tracker) Save(stats SessionStats) error {
	if err := t.write(stats); err != nil {
		t.Observer.SaveFailed()
		t.logger.Error().Err(err).Msg("Failed to save stats")
		return &StorageWriteError{Path: t.FilePath, Err: err}
	}
	return nil
}

func (t *Tracker) write(stats SessionStats) error {
	if !stats.valid() {
		return errors.Errorf("refusing to write negative counter in %+v", stats)
	}
	if err := os.MkdirAll(filepath.Dir(t.FilePath), 0o755); err != nil {
		return errors.Wrap(err, "creating stats directory")
	}

	file, err := os.Create(t.FilePath)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&stats); err != nil {
		file.Close()
		return errors.Wrap(err, "encoding stats")
	}
	return file.Close()
}

// RecordVictory counts a victory royale and persists. The returned stats are
// updated even when the returned save error is non-nil.
func (t *Tracker) RecordVictory(stats SessionStats) (SessionStats, error) {
	stats.Victories++
	t.Observer.VictoryRecorded()
	return stats, t.Save(stats)
}

func (t *Tracker) RecordTop10(stats SessionStats) (SessionStats, error) {
	stats.Top10s++
	t.Observer.Top10Recorded()
	return stats, t.Save(stats)
}

// StartNewGame counts a started game and persists. Resetting the per-game
// elimination counter is up to the holder of that counter, see Session.NewGame.
func (t *Tracker) StartNewGame(stats SessionStats) (SessionStats, error) {
	stats.GamesPlayed++
	t.Observer.GameStarted()
	return stats, t.Save(stats)
}

func (t *Tracker) ResetSession() (SessionStats, error) {
	stats := SessionStats{}
	t.Observer.SessionReset()
	return stats, t.Save(stats)
}

// AdjustEliminations applies delta to the per-game elimination counter,
// clamping at zero and saturating at math.MaxInt.
func AdjustEliminations(current, delta int) int {
	next := addSaturating(current, delta)
	if next < 0 {
		return 0
	}
	return next
}

func addSaturating(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

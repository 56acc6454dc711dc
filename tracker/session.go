package tracker

import (
	"time"

	"github.com/google/uuid"
)

// Session is the state one running companion holds: the persisted stats plus
// the transient elimination counter of the game in progress. Presentation
// layers render the Snapshot each method returns.
type Session struct {
	ID           uuid.UUID
	StartedAt    time.Time
	Stats        SessionStats
	Eliminations int
	LoadStatus   LoadStatus
	LoadError    error

	tracker *Tracker
}

// Snapshot is the read-only view of a Session handed to presentation layers.
type Snapshot struct {
	ID                string       `json:"id"`
	StartedAt         time.Time    `json:"started_at"`
	Stats             SessionStats `json:"stats"`
	Eliminations      int          `json:"eliminations"`
	TotalEliminations int          `json:"total_eliminations"`
	Derived           Derived      `json:"derived"`
	LoadStatus        LoadStatus   `json:"load_status"`
	LoadWarning       string       `json:"load_warning,omitempty"`
}

// Open loads the stats file and starts a new session around it.
func (t *Tracker) Open() *Session {
	stats, status, err := t.Load()
	return &Session{
		ID:         uuid.New(),
		StartedAt:  Now(),
		Stats:      stats,
		LoadStatus: status,
		LoadError:  err,
		tracker:    t,
	}
}

func (s *Session) Victory() (Snapshot, error) {
	stats, err := s.tracker.RecordVictory(s.Stats)
	s.Stats = stats
	return s.Snapshot(), err
}

func (s *Session) Top10() (Snapshot, error) {
	stats, err := s.tracker.RecordTop10(s.Stats)
	s.Stats = stats
	return s.Snapshot(), err
}

// NewGame banks the finished game's eliminations into the cumulative total,
// counts a new game and zeroes the per-game counter.
func (s *Session) NewGame() (Snapshot, error) {
	stats := s.Stats
	stats.Eliminations = addSaturating(stats.Eliminations, s.Eliminations)
	stats, err := s.tracker.StartNewGame(stats)
	s.Stats = stats
	s.setEliminations(0)
	return s.Snapshot(), err
}

// AdjustEliminations changes the per-game counter. Nothing is persisted.
func (s *Session) AdjustEliminations(delta int) Snapshot {
	s.setEliminations(AdjustEliminations(s.Eliminations, delta))
	return s.Snapshot()
}

func (s *Session) Reset() (Snapshot, error) {
	stats, err := s.tracker.ResetSession()
	s.Stats = stats
	s.setEliminations(0)
	return s.Snapshot(), err
}

// TotalEliminations is the banked total plus the game in progress.
func (s *Session) TotalEliminations() int {
	return addSaturating(s.Stats.Eliminations, s.Eliminations)
}

func (s *Session) Derived() Derived {
	return DerivedStats(s.Stats, s.TotalEliminations())
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:                s.ID.String(),
		StartedAt:         s.StartedAt,
		Stats:             s.Stats,
		Eliminations:      s.Eliminations,
		TotalEliminations: s.TotalEliminations(),
		Derived:           s.Derived(),
		LoadStatus:        s.LoadStatus,
	}
	if s.LoadError != nil {
		snap.LoadWarning = s.LoadError.Error()
	}
	return snap
}

func (s *Session) setEliminations(n int) {
	s.Eliminations = n
	s.tracker.Observer.EliminationsChanged(n)
}

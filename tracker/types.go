package tracker

// SessionStats holds the cumulative counters persisted between runs.
type SessionStats struct {
	Victories    int `json:"victories"`
	Eliminations int `json:"eliminations"`
	GamesPlayed  int `json:"games_played"`
	Top10s       int `json:"top_10s"`
}

// Derived holds the statistics computed from SessionStats.
type Derived struct {
	KD      float64 `json:"kd"`
	WinRate float64 `json:"win_rate"`
}

type LoadStatus string

const (
	LoadNew    LoadStatus = "new"
	LoadLoaded LoadStatus = "loaded"
	LoadReset  LoadStatus = "reset"
)

const DefaultStatsFile = "stats.json"

func (s SessionStats) valid() bool {
	return s.Victories >= 0 && s.Eliminations >= 0 && s.GamesPlayed >= 0 && s.Top10s >= 0
}

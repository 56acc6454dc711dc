package tracker

// DerivedStats computes the K/D ratio over games played (at least one) and
// the win rate as a fraction in [0, 1].
func DerivedStats(stats SessionStats, totalEliminations int) Derived {
	games := stats.GamesPlayed
	if games < 1 {
		games = 1
	}

	derived := Derived{
		KD: float64(totalEliminations) / float64(games),
	}
	if stats.GamesPlayed > 0 {
		derived.WinRate = float64(stats.Victories) / float64(stats.GamesPlayed)
	}
	return derived
}

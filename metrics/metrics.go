package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts tracker events. It satisfies tracker.Observer.
type Metrics struct {
	victoriesCounter     prometheus.Counter
	top10sCounter        prometheus.Counter
	gamesStartedCounter  prometheus.Counter
	resetsCounter        prometheus.Counter
	saveFailuresCounter  prometheus.Counter
	currentElimsGauge    prometheus.Gauge
	actionsRunCounterVec *prometheus.CounterVec
}

func (m *Metrics) VictoryRecorded() {
	m.victoriesCounter.Inc()
}

func (m *Metrics) Top10Recorded() {
	m.top10sCounter.Inc()
}

func (m *Metrics) GameStarted() {
	m.gamesStartedCounter.Inc()
}

func (m *Metrics) SessionReset() {
	m.resetsCounter.Inc()
}

func (m *Metrics) SaveFailed() {
	m.saveFailuresCounter.Inc()
}

func (m *Metrics) EliminationsChanged(current int) {
	m.currentElimsGauge.Set(float64(current))
}

func (m *Metrics) ActionRun(tab string) {
	m.actionsRunCounterVec.WithLabelValues(tab).Inc()
}

// New registers the companion metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		victoriesCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "companion_victories_recorded_total",
			Help: "Total number of victories recorded",
		}),
		top10sCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "companion_top10s_recorded_total",
			Help: "Total number of top 10 finishes recorded",
		}),
		gamesStartedCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "companion_games_started_total",
			Help: "Total number of games started",
		}),
		resetsCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "companion_session_resets_total",
			Help: "Total number of session resets",
		}),
		saveFailuresCounter: factory.NewCounter(prometheus.CounterOpts{
			Name: "companion_save_failures_total",
			Help: "Total number of failed stats file writes",
		}),
		currentElimsGauge: factory.NewGauge(prometheus.GaugeOpts{
			Name: "companion_current_eliminations",
			Help: "Eliminations in the game in progress",
		}),
		actionsRunCounterVec: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "companion_actions_run_total",
			Help: "Total number of companion actions run, by tab",
		}, []string{"tab"}),
	}
}

package timer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var builtinDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name: "builtin_duration_seconds",
	Help: "Duration of individual builtin evaluations",
	Objectives: map[float64]float64{
		0.50: 0.05,
		0.90: 0.05,
		0.99: 0.01,
	},
}, []string{"builtin"})

type Timer struct {
	timer *prometheus.Timer
}

func (t Timer) Stop() {
	t.timer.ObserveDuration()
}

func Start(builtin string) Timer {
	return Timer{
		timer: prometheus.NewTimer(builtinDuration.WithLabelValues(builtin)),
	}
}

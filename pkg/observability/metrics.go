// Package observability exposes machine activity as Prometheus metrics
// through the lifecycle hook surface.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/colintheshots/RxFsm/pkg/domain"
)

// Metrics holds the Prometheus collectors for one machine.
type Metrics struct {
	stateEntries *prometheus.CounterVec
	stateExits   *prometheus.CounterVec
	transitions  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stateEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rxfsm_state_entries_total",
				Help: "Total number of state entries, per state path.",
			},
			[]string{"path"},
		),
		stateExits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rxfsm_state_exits_total",
				Help: "Total number of state exits, per state path.",
			},
			[]string{"path"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rxfsm_transitions_total",
				Help: "Total number of processed occurrences, per event.",
			},
			[]string{"event", "kind"},
		),
	}
	reg.MustRegister(m.stateEntries, m.stateExits, m.transitions)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors. Combine with
// other hook sets via domain.MergeHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			m.stateEntries.WithLabelValues(e.Path).Inc()
		},
		OnStateExit: func(e *domain.StateEvent) {
			m.stateExits.WithLabelValues(e.Path).Inc()
		},
		OnTransition: func(e *domain.TransitionEvent) {
			kind := "reconfiguration"
			if e.Internal {
				kind = "internal"
			}
			m.transitions.WithLabelValues(e.Event, kind).Inc()
		},
	}
}

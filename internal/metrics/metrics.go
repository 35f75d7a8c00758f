// Package metrics exposes Prometheus counters for task and backup activity.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "taskboard"

type Metrics struct {
	registry      *prometheus.Registry
	taskMutations *prometheus.CounterVec
	backups       *prometheus.CounterVec
	backupsPruned prometheus.Counter
	loginAttempts *prometheus.CounterVec
	registrations *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		taskMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_mutations_total",
			Help:      "Task mutations by operation and whether a row was affected.",
		}, []string{"operation", "affected"}),
		backups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_total",
			Help:      "Backup attempts by trigger and result.",
		}, []string{"trigger", "result"}),
		backupsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_pruned_total",
			Help:      "Backup files removed by retention.",
		}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Account registrations by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.taskMutations,
		m.backups,
		m.backupsPruned,
		m.loginAttempts,
		m.registrations,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) TaskMutation(operation string, affected int64) {
	if m == nil {
		return
	}
	label := "false"
	if affected > 0 {
		label = "true"
	}
	m.taskMutations.WithLabelValues(operation, label).Inc()
}

func (m *Metrics) Backup(trigger string, err error) {
	if m == nil {
		return
	}
	m.backups.WithLabelValues(trigger, result(err)).Inc()
}

func (m *Metrics) BackupsPruned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.backupsPruned.Add(float64(n))
}

func (m *Metrics) Login(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.loginAttempts.WithLabelValues("success").Inc()
		return
	}
	m.loginAttempts.WithLabelValues("failure").Inc()
}

func (m *Metrics) Registration(err error) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result(err)).Inc()
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

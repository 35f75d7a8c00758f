package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.TaskMutation("delete", 1)
	m.TaskMutation("delete", 0)
	m.TaskMutation("delete", 0)
	m.Backup("manual", nil)
	m.Backup("scheduled", errors.New("boom"))
	m.BackupsPruned(2)
	m.BackupsPruned(0)
	m.Login(false)
	m.Registration(nil)

	body := scrape(t, m)
	for _, line := range []string{
		`taskboard_task_mutations_total{affected="true",operation="delete"} 1`,
		`taskboard_task_mutations_total{affected="false",operation="delete"} 2`,
		`taskboard_backups_total{result="success",trigger="manual"} 1`,
		`taskboard_backups_total{result="error",trigger="scheduled"} 1`,
		`taskboard_backups_pruned_total 2`,
		`taskboard_login_attempts_total{result="failure"} 1`,
		`taskboard_registrations_total{result="success"} 1`,
	} {
		assert.Contains(t, body, line)
	}
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Login(true)

	assert.Contains(t, scrape(t, m), `taskboard_login_attempts_total{result="success"} 1`)
	assert.Contains(t, scrape(t, m), "go_goroutines")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.TaskMutation("edit", 1)
		m.Backup("manual", nil)
		m.BackupsPruned(3)
		m.Login(false)
		m.Registration(errors.New("taken"))
	})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

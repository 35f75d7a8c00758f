package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/service"
)

type fakeCreator struct {
	mu       sync.Mutex
	triggers []string
	err      error
}

func (f *fakeCreator) Create(ctx context.Context, trigger string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, trigger)
	return "backup_20240501_100000.db", f.err
}

func (f *fakeCreator) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.triggers...)
}

func TestBackupWorker_RunsOnInterval(t *testing.T) {
	creator := &fakeCreator{}
	w := NewBackupWorker(creator, zap.NewNop(), 10*time.Millisecond)

	w.Start(context.Background())
	assert.Eventually(t, func() bool { return len(creator.calls()) >= 2 }, time.Second, 5*time.Millisecond)
	w.Stop()

	calls := creator.calls()
	for _, trigger := range calls {
		assert.Equal(t, service.TriggerScheduled, trigger)
	}

	// Остановленный воркер больше не делает копий.
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, creator.calls(), len(calls))
}

func TestBackupWorker_SurvivesErrors(t *testing.T) {
	creator := &fakeCreator{err: errors.New("disk full")}
	w := NewBackupWorker(creator, zap.NewNop(), 5*time.Millisecond)

	w.Start(context.Background())
	assert.Eventually(t, func() bool { return len(creator.calls()) >= 3 }, time.Second, 5*time.Millisecond)
	w.Stop()
}

func TestBackupWorker_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewBackupWorker(&fakeCreator{}, zap.NewNop(), time.Hour)

	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/models"
)

type memorySink struct {
	mu      sync.Mutex
	entries []models.SecurityLog
	err     error
	block   chan struct{}
}

func (s *memorySink) Write(_ context.Context, e *models.SecurityLog) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, *e)
	return nil
}

func TestDispatcher_WritesEvents(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop(), 10)

	uid := uint(7)
	d.Dispatch(Event{TenantID: "t1", UserID: &uid, Action: ActionLoginSuccess, IP: "10.0.0.1", Metadata: map[string]string{"email": "a@b.c"}})
	d.Close()

	require.Len(t, sink.entries, 1)
	got := sink.entries[0]
	assert.Equal(t, ActionLoginSuccess, got.Action)
	assert.Equal(t, "t1", got.TenantID)
	assert.JSONEq(t, `{"email":"a@b.c"}`, got.Metadata)
}

func TestDispatcher_SwallowsWriteErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink, zap.NewNop(), 10)

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionRegister})
		d.Close()
	})
	assert.Empty(t, sink.entries)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &memorySink{block: make(chan struct{})}
	d := NewDispatcher(sink, zap.NewNop(), 1)

	// one event held by the worker, one in the buffer, the rest dropped
	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: ActionLoginFailed})
	}
	close(sink.block)
	d.Close()

	assert.LessOrEqual(t, len(sink.entries), 2)
	assert.GreaterOrEqual(t, len(sink.entries), 1)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionRegister})
		d.Close()
	})
}

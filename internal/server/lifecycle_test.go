package server

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// blockingService runs until Stop closes its done channel and records the
// order in which services were stopped.
type blockingService struct {
	name    string
	started chan struct{}
	done    chan struct{}
	once    sync.Once
	stops   *stopLog
	failure error
}

type stopLog struct {
	mu    sync.Mutex
	names []string
}

func (l *stopLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *stopLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.names...)
}

func newBlockingService(name string, stops *stopLog) *blockingService {
	return &blockingService{name: name, started: make(chan struct{}), done: make(chan struct{}), stops: stops}
}

func (b *blockingService) Start() error {
	close(b.started)
	if b.failure != nil {
		return b.failure
	}
	<-b.done
	return nil
}

func (b *blockingService) Stop() {
	b.once.Do(func() {
		b.stops.add(b.name)
		close(b.done)
	})
}

func waitStarted(t *testing.T, svcs ...*blockingService) {
	t.Helper()
	for _, s := range svcs {
		select {
		case <-s.started:
		case <-time.After(2 * time.Second):
			t.Fatalf("service %s did not start in time", s.name)
		}
	}
}

func TestLifecycle_CancelStopsInReverseOrder(t *testing.T) {
	stops := &stopLog{}
	first := newBlockingService("first", stops)
	second := newBlockingService("second", stops)

	lc := NewLifecycle(zaptest.NewLogger(t))
	lc.Add(first.name, first)
	lc.Add(second.name, second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	waitStarted(t, first, second)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
	assert.Equal(t, []string{"second", "first"}, stops.get())
}

func TestLifecycle_ServiceFailureStopsAll(t *testing.T) {
	stops := &stopLog{}
	healthy := newBlockingService("healthy", stops)
	failing := newBlockingService("failing", stops)
	failing.failure = errors.New("bind: address in use")

	lc := NewLifecycle(zaptest.NewLogger(t))
	lc.Add(healthy.name, healthy)
	lc.Add(failing.name, failing)

	err := lc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service failing: bind: address in use")
	assert.ElementsMatch(t, []string{"healthy", "failing"}, stops.get())
}

func TestFuncService_Delegates(t *testing.T) {
	release := make(chan struct{})
	svc := &FuncService{
		StartFn: func() error {
			<-release
			return nil
		},
		StopFn: func() { close(release) },
	}

	done := make(chan error, 1)
	go func() { done <- svc.Start() }()
	svc.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("FuncService did not return after Stop")
	}
}

package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/navdemo/internal/model"
)

const testLatency = 10 * time.Millisecond

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLatency(testLatency)}, opts...)
	c := New(opts...)
	t.Cleanup(c.Close)
	return c
}

// recorder collects events on the loop.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func TestNew_InitialState(t *testing.T) {
	c := newTestClient(t)
	s := c.State()

	assert.False(t, s.LoggedIn)
	assert.Equal(t, 0, s.FetchCount)
	assert.NotNil(t, s.Records)
	assert.Empty(t, s.Records)
	assert.False(t, s.Loading())
	assert.Equal(t, PhaseLoggedOut, s.Phase())
	assert.Equal(t, testLatency, c.Latency())
}

func TestNew_DefaultLatency(t *testing.T) {
	c := New()
	defer c.Close()
	assert.Equal(t, DefaultLatency, c.Latency())
}

func TestFetchDataSets_ReplacesRecords(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.FetchDataSets(context.Background()))
	first := c.State().Records
	require.Len(t, first, model.RecordCount)

	for i, r := range first {
		assert.Equal(t, fmt.Sprintf("Record %d", i+1), r.Name)
		assert.GreaterOrEqual(t, r.Len(), model.MinDetails)
		assert.LessOrEqual(t, r.Len(), model.MaxDetails)
		for k, d := range r.Details() {
			assert.Equal(t, fmt.Sprintf("Detail number %d", k+1), d.Description)
			assert.GreaterOrEqual(t, d.Count, 0)
			assert.LessOrEqual(t, d.Count, model.MaxDetailCount)
		}
	}

	require.NoError(t, c.FetchDataSets(context.Background()))
	second := c.State().Records
	require.Len(t, second, model.RecordCount)
	for i := range second {
		assert.False(t, first[i].Equal(second[i]), "fetch must replace records, not merge")
	}

	s := c.State()
	assert.Equal(t, 0, s.FetchCount)
	assert.False(t, s.LoggedIn, "fetch alone does not log in")
}

func TestFetchDataSets_GeneratesBeforeDelay(t *testing.T) {
	gen := model.NewGenerator(rand.NewPCG(1, 2))
	c := newTestClient(t, WithGenerator(gen), WithLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	unsubscribe := c.Subscribe(func(ev Event) {
		rec.record(ev)
		if ev.Kind == EventFetchStarted {
			cancel()
		}
	})
	defer unsubscribe()

	err := c.FetchDataSets(ctx)
	require.Error(t, err)
	assert.True(t, IsCanceled(err))

	events := rec.all()
	require.Len(t, events, 2)
	assert.Equal(t, EventFetchStarted, events[0].Kind)
	assert.Empty(t, events[0].State.Records, "records are only published after the delay")
	assert.Equal(t, EventFetchFinished, events[1].Kind)
	assert.Empty(t, c.State().Records)
}

func TestLogin_Scenario(t *testing.T) {
	c := newTestClient(t)
	rec := &recorder{}
	defer c.Subscribe(rec.record)()

	require.NoError(t, c.Login(context.Background()))

	s := c.State()
	assert.True(t, s.LoggedIn)
	assert.Equal(t, 0, s.FetchCount)
	assert.Len(t, s.Records, model.RecordCount)
	assert.Equal(t, PhaseLoggedIn, s.Phase())

	type step struct {
		kind       EventKind
		op         Op
		fetchCount int
	}
	want := []step{
		{EventFetchStarted, OpLogin, 1},
		{EventLoggedIn, OpLogin, 1},
		{EventFetchStarted, OpFetch, 2},
		{EventRecordsReplaced, OpFetch, 2},
		{EventFetchFinished, OpFetch, 1},
		{EventFetchFinished, OpLogin, 0},
	}

	events := rec.all()
	require.Len(t, events, len(want))
	for i, w := range want {
		assert.Equal(t, w.kind, events[i].Kind, "event %d kind", i)
		assert.Equal(t, w.op, events[i].Op, "event %d op", i)
		assert.Equal(t, w.fetchCount, events[i].State.FetchCount, "event %d fetch count", i)
	}

	assert.Equal(t, PhaseLoggingIn, events[0].State.Phase())
	assert.False(t, events[0].State.StartedAt.IsZero())
	assert.True(t, events[len(events)-1].State.StartedAt.IsZero())

	c.Logout()
	s = c.State()
	assert.False(t, s.LoggedIn)
	assert.Equal(t, 0, s.FetchCount)
	assert.Empty(t, s.Records)
}

func TestLogin_CanceledDuringLoginDelay(t *testing.T) {
	c := newTestClient(t, WithLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer c.Subscribe(func(ev Event) {
		if ev.Kind == EventFetchStarted {
			cancel()
		}
	})()

	err := c.Login(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, OpLogin, opErr.Op)

	s := c.State()
	assert.False(t, s.LoggedIn, "login must not complete after cancellation")
	assert.Equal(t, 0, s.FetchCount, "counter must be released on cancellation")
	assert.Empty(t, s.Records)
}

func TestLogin_CanceledDuringNestedFetch(t *testing.T) {
	c := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer c.Subscribe(func(ev Event) {
		if ev.Kind == EventLoggedIn {
			cancel()
		}
	})()

	err := c.Login(ctx)
	require.Error(t, err)

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, OpFetch, opErr.Op)

	s := c.State()
	assert.True(t, s.LoggedIn, "no rollback of the login half")
	assert.Equal(t, 0, s.FetchCount)
	assert.Empty(t, s.Records)
}

func TestLogin_DeadlineExceeded(t *testing.T) {
	c := newTestClient(t, WithLatency(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := c.Login(ctx)
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 0, c.State().FetchCount)
}

func TestLogin_AlreadyCanceledContext(t *testing.T) {
	c := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Login(ctx)
	assert.True(t, IsCanceled(err))
	assert.Equal(t, 0, c.State().FetchCount)
}

func TestFetchCount_NeverNegative(t *testing.T) {
	c := newTestClient(t)
	rec := &recorder{}
	defer c.Subscribe(rec.record)()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Login(context.Background())
		}()
	}
	wg.Wait()

	peak := 0
	for _, ev := range rec.all() {
		assert.GreaterOrEqual(t, ev.State.FetchCount, 0)
		if ev.State.FetchCount > peak {
			peak = ev.State.FetchCount
		}
	}
	assert.LessOrEqual(t, peak, 10)
	assert.Equal(t, 0, c.State().FetchCount)
	assert.Len(t, c.State().Records, model.RecordCount)
}

func TestLogout_Idempotent(t *testing.T) {
	c := newTestClient(t)

	c.Logout()
	c.Logout()

	s := c.State()
	assert.False(t, s.LoggedIn)
	assert.Empty(t, s.Records)
	assert.Equal(t, 0, s.FetchCount)
}

func TestState_IsSnapshot(t *testing.T) {
	c := newTestClient(t)
	require.NoError(t, c.FetchDataSets(context.Background()))

	s := c.State()
	s.Records[0].Rename("mutated")
	s.Records[0].Insert(model.NewDetail(1, "extra"))

	fresh := c.State()
	assert.Equal(t, "Record 1", fresh.Records[0].Name)
	assert.NotEqual(t, s.Records[0].Len(), fresh.Records[0].Len())

	r, ok := fresh.Record(fresh.Records[2].ID())
	require.True(t, ok)
	assert.Equal(t, "Record 3", r.Name)

	_, ok = fresh.Record(model.NewID())
	assert.False(t, ok)
}

func TestState_Phase(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Phase
	}{
		{"idle", State{}, PhaseLoggedOut},
		{"loading while logged out", State{FetchCount: 1}, PhaseLoggingIn},
		{"nested fetch during login", State{FetchCount: 2}, PhaseLoggingIn},
		{"refetch after login", State{LoggedIn: true, FetchCount: 1}, PhaseLoggedIn},
		{"logged in", State{LoggedIn: true}, PhaseLoggedIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Phase())
		})
	}
}

func TestFetchDataSets_LoggedOutReportsLoggingIn(t *testing.T) {
	c := newTestClient(t)

	rec := &recorder{}
	defer c.Subscribe(rec.record)()

	require.NoError(t, c.FetchDataSets(context.Background()))
	events := rec.all()
	require.NotEmpty(t, events)
	assert.Equal(t, EventFetchStarted, events[0].Kind)
	assert.Equal(t, PhaseLoggingIn, events[0].State.Phase())
	assert.Equal(t, PhaseLoggedOut, c.State().Phase())
}

func TestRenameRecord(t *testing.T) {
	c := newTestClient(t)
	require.NoError(t, c.FetchDataSets(context.Background()))

	id := c.State().Records[1].ID()
	rec := &recorder{}
	defer c.Subscribe(rec.record)()

	require.NoError(t, c.RenameRecord(id, "Renamed"))
	r, ok := c.State().Record(id)
	require.True(t, ok)
	assert.Equal(t, "Renamed", r.Name)

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventRecordChanged, events[0].Kind)

	err := c.RenameRecord(model.NewID(), "x")
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestAddDetail(t *testing.T) {
	c := newTestClient(t)
	require.NoError(t, c.FetchDataSets(context.Background()))

	before := c.State().Records[0]
	added, err := c.AddDetail(before.ID())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDetailDescription, added.Description)
	assert.Equal(t, 0, added.Count)

	after, _ := c.State().Record(before.ID())
	assert.Equal(t, before.Len()+1, after.Len())
	details := after.Details()
	assert.True(t, details[len(details)-1].Equal(added))

	_, err = c.AddDetail(model.NewID())
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	c := newTestClient(t)
	rec := &recorder{}
	unsubscribe := c.Subscribe(rec.record)

	c.Logout()
	unsubscribe()
	c.Logout()

	assert.Len(t, rec.all(), 1)
}

func TestWatch_DeliversLatestState(t *testing.T) {
	c := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	events := c.Watch(ctx)

	require.NoError(t, c.Login(context.Background()))

	var last Event
	timeout := time.After(time.Second)
	for done := false; !done; {
		select {
		case ev := <-events:
			last = ev
			done = ev.State.LoggedIn && ev.State.FetchCount == 0
		case <-timeout:
			t.Fatal("timed out waiting for final state")
		}
	}
	assert.Len(t, last.State.Records, model.RecordCount)

	cancel()
	for range events {
	}
}

func TestWatch_ClosedOnClientClose(t *testing.T) {
	c := New(WithLatency(testLatency))
	events := c.Watch(context.Background())
	c.Close()

	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("watch channel not closed")
		}
	}
}

func TestClosedClient(t *testing.T) {
	c := New(WithLatency(testLatency))
	c.Close()
	c.Close()

	err := c.Login(context.Background())
	assert.True(t, errors.Is(err, ErrClosed))

	err = c.FetchDataSets(context.Background())
	assert.True(t, errors.Is(err, ErrClosed))

	c.Logout()
	assert.Empty(t, c.State().Records)

	unsubscribe := c.Subscribe(func(Event) {})
	unsubscribe()

	events := c.Watch(context.Background())
	_, ok := <-events
	assert.False(t, ok)
}

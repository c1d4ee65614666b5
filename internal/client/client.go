package client

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/navdemo/internal/logging"
	"github.com/muurk/navdemo/internal/model"
)

const (
	loopBuffer  = 32
	watchBuffer = 16
)

// Option configures a Client
type Option func(*Client)

// WithLatency overrides the simulated latency.
func WithLatency(d time.Duration) Option {
	return func(c *Client) {
		c.latency = d
	}
}

// WithGenerator sets the placeholder data generator.
func WithGenerator(g *model.Generator) Option {
	return func(c *Client) {
		c.gen = g
	}
}

// Client is the stub remote-data service.
//
// Fields below the loop are owned by the loop goroutine.
type Client struct {
	latency time.Duration
	loop    *Loop

	gen        *model.Generator
	loggedIn   bool
	fetchCount int
	records    []*model.Record
	startedAt  time.Time
	subs       map[int]func(Event)
	nextSub    int
}

// New creates a logged-out client and starts its loop.
func New(opts ...Option) *Client {
	c := &Client{
		latency: DefaultLatency,
		records: []*model.Record{},
		subs:    make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.gen == nil {
		c.gen = model.NewGenerator(nil)
	}
	c.loop = NewLoop(loopBuffer)
	return c
}

// Latency returns the simulated latency of one operation.
func (c *Client) Latency() time.Duration {
	return c.latency
}

// Close shuts the loop down. Subsequent operations return ErrClosed.
func (c *Client) Close() {
	c.loop.Close()
}

// State returns a consistent snapshot of the client.
func (c *Client) State() State {
	var s State
	if err := c.loop.Do(func() { s = c.snapshot() }); err != nil {
		return State{Records: []*model.Record{}}
	}
	return s
}

// Login simulates authenticating with the remote service and then loads the
// initial data set. Both halves wait the configured latency.
func (c *Client) Login(ctx context.Context) error {
	if err := c.startFetch(OpLogin); err != nil {
		return opError(OpLogin, err)
	}
	defer c.endFetch(OpLogin)

	if err := sleep(ctx, c.latency); err != nil {
		logging.LogOperation(string(OpLogin), "canceled", zap.Error(err))
		return opError(OpLogin, err)
	}

	if err := c.apply(EventLoggedIn, OpLogin, func() { c.loggedIn = true }); err != nil {
		return opError(OpLogin, err)
	}
	logging.LogOperation(string(OpLogin), "authenticated")

	return c.FetchDataSets(ctx)
}

// FetchDataSets simulates downloading the application data. The records are
// built before the wait and published after it.
func (c *Client) FetchDataSets(ctx context.Context) error {
	var fetched []*model.Record
	err := c.apply(EventFetchStarted, OpFetch, func() {
		c.markStarted()
		fetched = c.gen.Records()
	})
	if err != nil {
		return opError(OpFetch, err)
	}
	defer c.endFetch(OpFetch)

	if err := sleep(ctx, c.latency); err != nil {
		logging.LogOperation(string(OpFetch), "canceled", zap.Error(err))
		return opError(OpFetch, err)
	}

	err = c.apply(EventRecordsReplaced, OpFetch, func() {
		c.records = fetched
	})
	if err != nil {
		return opError(OpFetch, err)
	}
	logging.LogOperation(string(OpFetch), "records replaced", zap.Int("records", len(fetched)))
	return nil
}

// Logout discards the session and all cached records. It never waits and is
// idempotent.
func (c *Client) Logout() {
	err := c.apply(EventLoggedOut, OpLogout, func() {
		c.loggedIn = false
		c.records = []*model.Record{}
	})
	if err != nil {
		logging.Warn("logout after close", zap.Error(err))
		return
	}
	logging.LogOperation(string(OpLogout), "done")
}

// RenameRecord changes the name of a record in the current collection.
func (c *Client) RenameRecord(id model.ID, name string) error {
	found := false
	err := c.apply(EventRecordChanged, OpRename, func() {
		if r := c.find(id); r != nil {
			r.Rename(name)
			found = true
		}
	})
	if err != nil {
		return opError(OpRename, err)
	}
	if !found {
		return opError(OpRename, ErrRecordNotFound)
	}
	return nil
}

// AddDetail appends a default detail to a record and notifies observers.
func (c *Client) AddDetail(id model.ID) (model.Detail, error) {
	var added model.Detail
	found := false
	err := c.apply(EventRecordChanged, OpAddDetail, func() {
		if r := c.find(id); r != nil {
			added = r.AddDetail()
			found = true
		}
	})
	if err != nil {
		return model.Detail{}, opError(OpAddDetail, err)
	}
	if !found {
		return model.Detail{}, opError(OpAddDetail, ErrRecordNotFound)
	}
	return added, nil
}

// Subscribe registers fn to receive every event. fn runs on the loop. The
// returned function removes the subscription.
func (c *Client) Subscribe(fn func(Event)) func() {
	id := -1
	err := c.loop.Do(func() {
		id = c.nextSub
		c.nextSub++
		c.subs[id] = fn
	})
	if err != nil {
		return func() {}
	}
	return func() {
		_ = c.unsubscribe(id)
	}
}

// Watch delivers events on a channel until ctx is done or the client is
// closed, after which the channel is closed. When the consumer falls behind,
// the oldest undelivered events are dropped; the newest state always arrives.
func (c *Client) Watch(ctx context.Context) <-chan Event {
	ch := make(chan Event, watchBuffer)

	id := -1
	err := c.loop.Do(func() {
		id = c.nextSub
		c.nextSub++
		c.subs[id] = func(ev Event) {
			for {
				select {
				case ch <- ev:
					return
				default:
				}
				select {
				case <-ch:
				default:
				}
			}
		}
	})
	if err != nil {
		close(ch)
		return ch
	}

	go func() {
		select {
		case <-ctx.Done():
			if err := c.unsubscribe(id); errors.Is(err, ErrClosed) {
				<-c.loop.Done()
			}
		case <-c.loop.Done():
		}
		close(ch)
	}()

	return ch
}

func (c *Client) unsubscribe(id int) error {
	return c.loop.Do(func() {
		delete(c.subs, id)
	})
}

func (c *Client) startFetch(op Op) error {
	return c.apply(EventFetchStarted, op, c.markStarted)
}

// endFetch always runs, whatever path the operation took.
func (c *Client) endFetch(op Op) {
	err := c.apply(EventFetchFinished, op, func() {
		if c.fetchCount > 0 {
			c.fetchCount--
		}
		if c.fetchCount == 0 {
			c.startedAt = time.Time{}
		}
	})
	if err != nil {
		logging.Warn("end of operation after close", zap.String("op", string(op)), zap.Error(err))
	}
}

// markStarted runs on the loop.
func (c *Client) markStarted() {
	c.fetchCount++
	c.startedAt = time.Now()
}

// apply runs mutate on the loop and then notifies subscribers.
func (c *Client) apply(kind EventKind, op Op, mutate func()) error {
	return c.loop.Do(func() {
		mutate()
		c.publish(kind, op)
	})
}

// publish runs on the loop.
func (c *Client) publish(kind EventKind, op Op) {
	logging.LogStateChange(kind.String(), c.loggedIn, c.fetchCount, len(c.records))
	if len(c.subs) == 0 {
		return
	}

	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	ev := Event{Kind: kind, Op: op, State: c.snapshot()}
	for _, id := range ids {
		c.subs[id](ev)
	}
}

// snapshot runs on the loop.
func (c *Client) snapshot() State {
	return State{
		LoggedIn:   c.loggedIn,
		FetchCount: c.fetchCount,
		Records:    model.CloneRecords(c.records),
		StartedAt:  c.startedAt,
	}
}

// find runs on the loop.
func (c *Client) find(id model.ID) *model.Record {
	for _, r := range c.records {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

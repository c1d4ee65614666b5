package client

import "sync"

// Loop runs closures one at a time, in submission order, on a single
// goroutine. It is the only place client state is touched.
type Loop struct {
	queue chan func()
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewLoop starts a loop whose queue holds up to buffer pending closures.
func NewLoop(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	l := &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for fn := range l.queue {
		fn()
	}
}

// Do runs fn on the loop and waits for it to finish.
// It must not be called from the loop itself.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})

	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return ErrClosed
	}
	l.queue <- func() {
		defer close(finished)
		fn()
	}
	l.mu.RUnlock()

	<-finished
	return nil
}

// Close stops accepting work, lets queued closures finish and waits for the
// loop goroutine to exit. It is safe to call more than once.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.queue)
	}
	l.mu.Unlock()
	<-l.done
}

// Done is closed when the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

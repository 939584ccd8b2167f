package main

import (
	"sync"
	"time"
)

const defaultNoticeDuration = 5 * time.Second

type stopper interface {
	Stop() bool
}

// Notifier holds at most one notice and clears it once its duration has
// passed. A newer notice stops the older one's timer, so an early timer
// can never clear a later notice.
type Notifier struct {
	mu       sync.Mutex
	duration time.Duration
	current  *Notice
	pending  stopper
	gen      uint64

	afterFunc func(time.Duration, func()) stopper
}

func NewNotifier(duration time.Duration) *Notifier {
	if duration <= 0 {
		duration = defaultNoticeDuration
	}
	return &Notifier{
		duration: duration,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

func (n *Notifier) Raise(noticeType, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopLocked()
	gen := n.gen
	n.current = &Notice{Type: noticeType, Message: message}
	n.pending = n.afterFunc(n.duration, func() { n.expire(gen) })
}

func (n *Notifier) Success(message string) { n.Raise(NoticeSuccess, message) }

func (n *Notifier) Error(message string) { n.Raise(NoticeError, message) }

func (n *Notifier) Current() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notice{}, false
	}
	return *n.current, true
}

// Close drops the shown notice and stops its timer.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.current = nil
}

func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	// a timer that fired while Raise held the lock belongs to an older notice
	if gen != n.gen {
		return
	}
	n.current = nil
	n.pending = nil
}

func (n *Notifier) stopLocked() {
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
	n.gen++
}

package framework

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
)

// DefaultLoopInterval is used when Loop.Interval is zero.
const DefaultLoopInterval = 100 * time.Millisecond

// Loop runs Tickers periodically in a single goroutine. Messages posted
// from other goroutines are handled in the same goroutine before the
// tickers, so state owned by the loop needs no locking.
type Loop struct {
	Interval time.Duration
	Handler  MessageHandler

	tickers  []Ticker
	runners  []Runnable
	messages messageList
	lock     sync.Mutex
	wakeUpCh chan struct{}
}

type messageList struct {
	head *messageItem
	tail *messageItem
}

type messageItem struct {
	msg  Message
	next *messageItem
}

func (l *messageList) append(item *messageItem) {
	if l.head == nil {
		l.head = item
	} else {
		l.tail.next = item
	}
	l.tail = item
}

func (l *messageList) splice(src *messageList) {
	l.head, l.tail = src.head, src.tail
	src.head, src.tail = nil, nil
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultLoopInterval, wakeUpCh: make(chan struct{}, 1)}
}

// AddTicker registers tickers, run in order on every iteration.
// A Ticker also implementing Runnable is started with the loop.
func (l *Loop) AddTicker(tickers ...Ticker) *Loop {
	l.tickers = append(l.tickers, tickers...)
	for _, t := range tickers {
		if runner, ok := t.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnables started and stopped with the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// PostMessage implements LoopControl.
func (l *Loop) PostMessage(msg Message) {
	l.lock.Lock()
	l.messages.append(&messageItem{msg: msg})
	l.lock.Unlock()
	l.TriggerNext()
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}
	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)
	defer runner.Wait()

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultLoopInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.handleMessages(ctx)
			l.tick(ctx, now)
		case <-l.wakeUpCh:
			l.handleMessages(ctx)
		}
	}
}

func (l *Loop) handleMessages(ctx context.Context) {
	var msgs messageList
	l.lock.Lock()
	msgs.splice(&l.messages)
	l.lock.Unlock()
	for item := msgs.head; item != nil; item = item.next {
		if l.Handler != nil {
			l.Handler.HandleMessage(ctx, item.msg)
		}
	}
}

func (l *Loop) tick(ctx context.Context, now time.Time) {
	for _, t := range l.tickers {
		if err := t.Tick(ctx, now); err != nil {
			glog.Errorf("ticker error: %v", err)
		}
	}
}

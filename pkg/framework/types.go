package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Message is anything posted to a Loop.
type Message interface{}

// MessageHandler processes a message inside the loop goroutine.
type MessageHandler interface {
	HandleMessage(context.Context, Message)
}

// HandleMessageFunc is the func form of MessageHandler.
type HandleMessageFunc func(context.Context, Message)

// HandleMessage implements MessageHandler.
func (f HandleMessageFunc) HandleMessage(ctx context.Context, msg Message) {
	f(ctx, msg)
}

// Ticker is invoked on every loop iteration.
type Ticker interface {
	Tick(ctx context.Context, now time.Time) error
}

// TickFunc is the func form of Ticker.
type TickFunc func(context.Context, time.Time) error

// Tick implements Ticker.
func (f TickFunc) Tick(ctx context.Context, now time.Time) error {
	return f(ctx, now)
}

// LoopControl exposes access to the controlling loop from other
// goroutines.
type LoopControl interface {
	// PostMessage enqueues the message for the next iteration.
	PostMessage(Message)
	// TriggerNext schedules the next iteration to be executed
	// immediately.
	TriggerNext()
}

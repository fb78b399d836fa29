package game

import "sync"

// Event is a state change published by a Session after it has been committed.
type Event interface {
	gameEvent()
}

// TurnPlayed is published after every successful roll.
type TurnPlayed struct {
	SessionID string
	Turn      int // 1-based count of turns since the last reset
	Outcome   Outcome
	Status    Status
	Next      PlayerID // Seat to roll next (the winner once the game is over)
	Players   []Player // Positions after the turn
}

func (TurnPlayed) gameEvent() {}

// GameWon is published once, right after the winning TurnPlayed.
type GameWon struct {
	SessionID string
	Winner    Player
	Turns     int
}

func (GameWon) gameEvent() {}

// GameReset is published when a session is reset to its starting state.
type GameReset struct {
	SessionID string
	Players   []Player
}

func (GameReset) gameEvent() {}

// GameRestored is published after a snapshot has been loaded.
type GameRestored struct {
	SessionID string
	Snapshot  Snapshot
}

func (GameRestored) gameEvent() {}

// Subscriber receives session events.
// Send is called synchronously from the session and must not block.
type Subscriber interface {
	Send(evt Event)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(evt Event)

// Send calls f(evt).
func (f SubscriberFunc) Send(evt Event) {
	f(evt)
}

// ChannelSubscriber buffers events on a channel for renderers that pull
// events on their own schedule, such as an animation loop.
type ChannelSubscriber struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSubscriber creates a channel-backed subscriber.
// bufferSize controls how many events can be buffered before dropping.
func NewChannelSubscriber(bufferSize int) *ChannelSubscriber {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSubscriber{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues an event.
// If the buffer is full the oldest event is dropped so the session never blocks.
func (c *ChannelSubscriber) Send(evt Event) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-c.events:
		default:
		}
		select {
		case c.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (c *ChannelSubscriber) Events() <-chan Event {
	return c.events
}

// Done returns a channel that is closed by Close.
func (c *ChannelSubscriber) Done() <-chan struct{} {
	return c.done
}

// Close stops accepting events. Safe to call multiple times.
func (c *ChannelSubscriber) Close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

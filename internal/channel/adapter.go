package channel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrStopNotSupported is returned when a connection does not support graceful shutdown.
var ErrStopNotSupported = errors.New("channel connection stop not supported")

// InboundHandler is a callback invoked when a message arrives from a channel.
type InboundHandler func(ctx context.Context, msg InboundMessage) error

// Sender is an adapter capable of sending outbound messages.
type Sender interface {
	Send(ctx context.Context, msg OutboundMessage) error
}

// Reactor adds emoji reactions to messages.
type Reactor interface {
	React(ctx context.Context, target string, messageID string, emoji string) error
}

// EmbedSuppressor hides the platform's automatic link previews on a message.
type EmbedSuppressor interface {
	SuppressEmbeds(ctx context.Context, target string, messageID string) error
}

// ProcessingStatusNotifier surfaces a transient "working on it" indicator.
// Implementations are best-effort: failures are absorbed, never returned.
type ProcessingStatusNotifier interface {
	ProcessingStarted(ctx context.Context, msg InboundMessage) ProcessingStatusHandle
}

// ProcessingStatusHandle stops the indicator started by ProcessingStarted.
type ProcessingStatusHandle struct {
	stop func()
}

// NewProcessingStatusHandle wraps stop so it runs at most once.
func NewProcessingStatusHandle(stop func()) ProcessingStatusHandle {
	if stop == nil {
		return ProcessingStatusHandle{}
	}
	var once sync.Once
	return ProcessingStatusHandle{stop: func() { once.Do(stop) }}
}

// Stop clears the indicator. Safe on the zero value and safe to call twice.
func (h ProcessingStatusHandle) Stop() {
	if h.stop != nil {
		h.stop()
	}
}

// Connection represents an active, long-lived link to a channel platform.
type Connection interface {
	ChannelType() ChannelType
	Stop(ctx context.Context) error
	Running() bool
}

// BaseConnection is a default Connection implementation backed by a stop function.
type BaseConnection struct {
	channelType ChannelType
	stop        func(ctx context.Context) error
	running     atomic.Bool
}

// NewConnection creates a BaseConnection for the given channel type and stop function.
func NewConnection(channelType ChannelType, stop func(ctx context.Context) error) *BaseConnection {
	conn := &BaseConnection{
		channelType: channelType,
		stop:        stop,
	}
	conn.running.Store(true)
	return conn
}

// ChannelType returns the type of channel this connection serves.
func (c *BaseConnection) ChannelType() ChannelType {
	return c.channelType
}

// Stop gracefully shuts down the connection.
func (c *BaseConnection) Stop(ctx context.Context) error {
	if c.stop == nil {
		return ErrStopNotSupported
	}
	c.running.Store(false)
	return c.stop(ctx)
}

// Running reports whether the connection is still active.
func (c *BaseConnection) Running() bool {
	return c.running.Load()
}

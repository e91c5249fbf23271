package realtime

import "context"

// Bus fans events out across backend instances so a client connected to
// one instance still sees events produced on another.
type Bus interface {
	Publish(ctx context.Context, msg Message) error
	StartForwarder(ctx context.Context, hub *Hub) error
	Close() error
}

// localBus is the single-instance fallback: events go straight to the hub.
type localBus struct {
	hub *Hub
}

func NewLocalBus(hub *Hub) Bus {
	return &localBus{hub: hub}
}

func (b *localBus) Publish(_ context.Context, msg Message) error {
	b.hub.Broadcast(msg)
	return nil
}

func (b *localBus) StartForwarder(context.Context, *Hub) error { return nil }

func (b *localBus) Close() error { return nil }

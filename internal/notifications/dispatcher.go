package notifications

import (
	"context"
)

// Dispatcher routes events through Redis when available so every instance
// receives them, and straight to the local hub otherwise.
type Dispatcher struct {
	notifier *Notifier
	hub      *Hub
}

// NewDispatcher wires a notifier (may have no Redis) to the local hub.
func NewDispatcher(n *Notifier, hub *Hub) *Dispatcher {
	return &Dispatcher{notifier: n, hub: hub}
}

// Broadcast delivers ev to every feed client.
func (d *Dispatcher) Broadcast(ctx context.Context, ev Event) error {
	payload, err := ev.Encode()
	if err != nil {
		return err
	}
	if d.notifier.Enabled() {
		return d.notifier.PublishBroadcast(ctx, payload)
	}
	if d.hub != nil {
		d.hub.BroadcastAll([]byte(payload))
	}
	return nil
}

// SendToUser delivers ev to every feed connection of userID.
func (d *Dispatcher) SendToUser(ctx context.Context, userID uint, ev Event) error {
	payload, err := ev.Encode()
	if err != nil {
		return err
	}
	if d.notifier.Enabled() {
		return d.notifier.PublishUser(ctx, userID, payload)
	}
	if d.hub != nil {
		d.hub.SendToUser(userID, []byte(payload))
	}
	return nil
}

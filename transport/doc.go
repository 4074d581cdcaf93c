/*
Package transport maintains websocket connections and the event framing
between clients and the session coordinator.

# Wire Format

Frames are JSON envelopes in both directions:

	{"event": "student:register", "data": {"name": "Ada"}}

# Hub

The hub assigns each accepted connection a generated handle, keeps the
registry, and exposes the two delivery primitives consumed by the rest
of the system:

	hub := transport.NewHub(cfg.FrontendURL)
	hub.SendTo(connID, event, payload)
	hub.Broadcast(event, payload)

Inbound frames arrive on a single channel as Message values tagged with
the originating handle. A dropped connection is surfaced on the same
channel as a synthetic disconnect event, so a consumer draining
Inbound() in one goroutine observes all connection activity serialized
and needs no locking of its own.

# Sender

Sender is the outbound interface; tests substitute a recording fake.
*/
package transport

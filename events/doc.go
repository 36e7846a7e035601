// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events is the real-time notification channel.

Producers depend only on Publisher:

	type Publisher interface {
		Publish(event string, payload any)
	}

Implementations:

  - Hub: delivers to WebSocket clients connected to this process
  - RedisBridge: publishes through a Redis channel; every instance's
    bridge relays what it receives to its local Hub
  - Nop: discards events
  - Recorder: keeps events in memory, for tests

# Wire Format

Every message is a JSON envelope:

	{"type": "pollUpdated", "data": {"pollId": "...", "options": [{"text": "Red", "votes": 3}]}}

Clients may send {"type": "ping"} and receive {"type": "pong", "data": null}.

# Delivery

Fire-and-forget. The hub buffer holds 256 messages and each client buffer
holds 256; a full hub buffer drops the message and a full client buffer
disconnects that client. There is no replay for late joiners.

# Lifecycle

Hub and RedisBridge implement Serve(ctx) error and run under the suture
supervisor in main.
*/
package events

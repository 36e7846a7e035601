// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import "sync"

// Event names
const (
	PollCreated         = "pollCreated"
	PollUpdated         = "pollUpdated"
	PollToggled         = "pollToggled"
	PollDeleted         = "pollDeleted"
	ContentUploaded     = "contentUploaded"
	ContentDeleted      = "contentDeleted"
	SuggestionSubmitted = "suggestionSubmitted"
	AdminMessagePosted  = "adminMessage"
	SettingsUpdated     = "settingsUpdated"
	UserCreated         = "userCreated"
	UserUpdated         = "userUpdated"
	UserDeleted         = "userDeleted"
)

// Publisher broadcasts an event to every connected observer. Delivery is
// fire-and-forget: Publish never blocks on observers and never fails.
type Publisher interface {
	Publish(event string, payload any)
}

// Message is the wire envelope sent to observers
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Nop discards every event
type Nop struct{}

func (Nop) Publish(string, any) {}

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Message
}

func (r *Recorder) Publish(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Message{Type: event, Data: payload})
}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.events...)
}

// Last returns the most recent event with the given name
func (r *Recorder) Last(event string) (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == event {
			return r.events[i], true
		}
	}
	return Message{}, false
}

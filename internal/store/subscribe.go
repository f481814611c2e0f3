package store

import (
	"sync"
)

// Collection names the three document collections.
type Collection string

const (
	Families Collection = "families"
	Guests   Collection = "guests"
	Rsvps    Collection = "rsvps"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes a committed mutation on a collection.
type Event struct {
	Collection Collection
	Op         Op
	ID         string
}

// hub fans mutation events out to subscribers. A slow subscriber drops
// events rather than blocking the mutating call.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[Collection]map[int]chan Event
}

func newHub() *hub {
	return &hub{subs: make(map[Collection]map[int]chan Event)}
}

func (h *hub) subscribe(c Collection) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[c] == nil {
		h.subs[c] = make(map[int]chan Event)
	}
	id := h.nextID
	h.nextID++
	ch := make(chan Event, 16)
	h.subs[c][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[c][id]; ok {
			delete(h.subs[c], id)
			close(sub)
		}
	}
	return ch, cancel
}

func (h *hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[ev.Collection] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe delivers an event after every committed mutation on the
// collection. The returned cancel func tears the subscription down and is
// idempotent; subscriptions live for the lifetime of the owning view.
func (s *Store) Subscribe(c Collection) (<-chan Event, func()) {
	return s.hub.subscribe(c)
}

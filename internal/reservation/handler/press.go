package handler

import (
	"sync"

	"fleetlease/internal/reservation/controller"
)

// PressHub fans pointer-press events out to the controller's scoped
// subscription. One hub lives per session.
type PressHub struct {
	mu   sync.Mutex
	subs map[int]chan controller.PressEvent
	next int
}

func NewPressHub() *PressHub {
	return &PressHub{subs: make(map[int]chan controller.PressEvent)}
}

// Subscribe registers a listener. The release function deregisters it;
// the controller calls it when its loop exits.
func (h *PressHub) Subscribe() (<-chan controller.PressEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan controller.PressEvent, 8)
	h.subs[id] = ch

	release := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}

	return ch, release
}

// Post delivers an event to all subscribers without blocking; a slow
// subscriber drops events rather than stalling the request.
func (h *PressHub) Post(ev controller.PressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

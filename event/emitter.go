package event

import "sync"

// Listener receives an event payload.
type Listener func(payload any)

type subscription struct {
	fn Listener
}

// Emitter is a registry of listeners keyed by event name. It is safe for
// concurrent use. The zero value is not usable; call NewEmitter.
type Emitter struct {
	mu        sync.Mutex
	listeners map[string][]*subscription
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]*subscription)}
}

// On registers fn for events named name and returns a detach function.
// Detaching is idempotent; calling it more than once is a no-op.
func (e *Emitter) On(name string, fn Listener) (off func()) {
	sub := &subscription{fn: fn}

	e.mu.Lock()
	e.listeners[name] = append(e.listeners[name], sub)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			subs := e.listeners[name]
			for i, s := range subs {
				if s == sub {
					e.listeners[name] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
			if len(e.listeners[name]) == 0 {
				delete(e.listeners, name)
			}
		})
	}
}

// Emit delivers payload to every listener currently registered for name,
// in registration order. Listeners are invoked outside the emitter lock so
// they may detach themselves or register new listeners.
func (e *Emitter) Emit(name string, payload any) {
	e.mu.Lock()
	subs := make([]*subscription, len(e.listeners[name]))
	copy(subs, e.listeners[name])
	e.mu.Unlock()

	for _, s := range subs {
		s.fn(payload)
	}
}

// ListenerCount returns the number of listeners registered for name.
func (e *Emitter) ListenerCount(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[name])
}

package palette

// Key names understood by the palette. Hosts translate their native key
// events to these before dispatching.
const (
	KeyEscape    = "Escape"
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyEnter     = "Enter"
)

// KeyEvent is a single key press travelling through a KeyDispatcher.
type KeyEvent struct {
	Key       string
	prevented bool
}

// PreventDefault tells the host not to apply its own handling, such as
// inserting text into the query input.
func (e *KeyEvent) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *KeyEvent) DefaultPrevented() bool {
	return e.prevented
}

// KeyListener handles a key event.
type KeyListener func(ev *KeyEvent)

// KeySource is anything a listener can subscribe to for key events. The
// returned unsubscribe func must be called on teardown and is safe to call
// more than once.
type KeySource interface {
	Subscribe(l KeyListener) (unsubscribe func())
}

// KeyDispatcher fans key events out to subscribed listeners in subscription
// order. It is not safe for concurrent use; hosts dispatch from their UI
// thread.
type KeyDispatcher struct {
	next      int
	order     []int
	listeners map[int]KeyListener
}

// NewKeyDispatcher creates a dispatcher with no listeners.
func NewKeyDispatcher() *KeyDispatcher {
	return &KeyDispatcher{listeners: make(map[int]KeyListener)}
}

// Subscribe registers l until the returned func is called.
func (d *KeyDispatcher) Subscribe(l KeyListener) func() {
	id := d.next
	d.next++
	d.listeners[id] = l
	d.order = append(d.order, id)

	return func() {
		if _, ok := d.listeners[id]; !ok {
			return
		}
		delete(d.listeners, id)
		for i, v := range d.order {
			if v == id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers key to every listener and reports whether any of them
// prevented the default handling.
func (d *KeyDispatcher) Dispatch(key string) bool {
	ev := &KeyEvent{Key: key}
	ids := make([]int, len(d.order))
	copy(ids, d.order)
	for _, id := range ids {
		if l, ok := d.listeners[id]; ok {
			l(ev)
		}
	}
	return ev.DefaultPrevented()
}

// Len returns the number of subscribed listeners.
func (d *KeyDispatcher) Len() int {
	return len(d.listeners)
}

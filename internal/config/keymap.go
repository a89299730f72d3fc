package config

// Event is a logical event that a key can trigger.
type Event int

const (
	EventNone Event = iota
	EventEvaluate
	EventClear
	EventBackspace
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventEvaluate:
		return "evaluate"
	case EventClear:
		return "clear"
	case EventBackspace:
		return "backspace"
	case EventQuit:
		return "quit"
	default:
		return "none"
	}
}

type binding struct {
	ev   Event
	keys []string
}

// bindings lists the keymap's bindings in a fixed order.
func (k Keymap) bindings() []binding {
	return []binding{
		{EventEvaluate, k.Evaluate},
		{EventClear, k.Clear},
		{EventBackspace, k.Backspace},
		{EventQuit, k.Quit},
	}
}

// Event returns the event bound to the named key. The second result is false
// if the key is not bound; such keys are typed into the display.
func (k Keymap) Event(key string) (Event, bool) {
	for _, b := range k.bindings() {
		for _, name := range b.keys {
			if name == key {
				return b.ev, true
			}
		}
	}
	return EventNone, false
}

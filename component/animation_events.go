package component

// AnimationEventType identifies a playback event.
type AnimationEventType string

const (
	AnimationEventUnknownDirection AnimationEventType = "unknown_direction"
	AnimationEventDirectionChanged AnimationEventType = "direction_changed"
	AnimationEventLooped           AnimationEventType = "looped"
)

// AnimationEvent is emitted by an Animator.
type AnimationEvent struct {
	Type  AnimationEventType
	Key   string
	Frame int
}

// AnimationEventHandler handles animation events.
type AnimationEventHandler func(anim *Animator, evt AnimationEvent)

// AnimationEventEmitter dispatches animation events to handlers.
type AnimationEventEmitter struct {
	Handlers []AnimationEventHandler
}

// Subscribe adds a handler.
func (e *AnimationEventEmitter) Subscribe(h AnimationEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends an event to all handlers.
func (e *AnimationEventEmitter) Emit(anim *Animator, evt AnimationEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(anim, evt)
		}
	}
}

// AnimationEventLog records events, mostly for tests and debug overlays.
type AnimationEventLog struct {
	Events []AnimationEvent
}

// Handler returns an AnimationEventHandler appending to the log.
func (l *AnimationEventLog) Handler() AnimationEventHandler {
	return func(_ *Animator, evt AnimationEvent) {
		l.Events = append(l.Events, evt)
	}
}

// Count returns how many events of type t were recorded.
func (l *AnimationEventLog) Count(t AnimationEventType) int {
	n := 0
	for _, evt := range l.Events {
		if evt.Type == t {
			n++
		}
	}
	return n
}

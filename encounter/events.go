package encounter

// EventType names an encounter event.
type EventType string

const (
	EventBegin            EventType = "begin"
	EventPhaseChanged     EventType = "phase_changed"
	EventSubPhaseChanged  EventType = "subphase_changed"
	EventTransitionVetoed EventType = "transition_vetoed"
	EventNoMorePhases     EventType = "no_more_phases"
	EventRestart          EventType = "restart"
	EventThresholdCrossed EventType = "threshold_crossed"
	EventError            EventType = "error"
)

// Event is a notification published to an Observer.
type Event struct {
	Type     EventType `json:"type"`
	Time     float64   `json:"time"`
	Phase    string    `json:"phase,omitempty"`
	SubPhase string    `json:"sub_phase,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

// Observer receives encounter events in order.
type Observer func(Event)

// Observers fans one event out to several observers.
func Observers(obs ...Observer) Observer {
	return func(evt Event) {
		for _, o := range obs {
			if o != nil {
				o(evt)
			}
		}
	}
}

package component

// SoundRequest is one queued playback.
type SoundRequest struct {
	Clip      string
	Volume    float64
	Pitch     float64
	Interrupt bool
}

// Audio is the bus entity's pending requests, drained each frame by
// AudioSystem.
type Audio struct {
	Requests []SoundRequest
}

var AudioComponent = NewComponent[Audio]()

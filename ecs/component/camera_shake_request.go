package component

// CameraShakeRequest asks the camera system to apply a shake effect.
// Intensity is measured in world units, Duration in seconds. Smooth requests
// ease in and out instead of jittering.
type CameraShakeRequest struct {
	Duration  float64
	Intensity float64
	Smooth    bool
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()

package component

// AnimationClip is the authored length of one named animation state.
type AnimationClip struct {
	Length float64
	Loop   bool
}

// Animation is a state-blending animator. Blend runs from 0 to 1 over
// BlendTime seconds after a cross-fade from Previous to Current.
type Animation struct {
	Clips     map[string]AnimationClip
	Current   string
	Previous  string
	Blend     float64
	BlendTime float64
	Time      float64
}

var AnimationComponent = NewComponent[Animation]()

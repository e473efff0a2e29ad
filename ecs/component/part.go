package component

// BossPart is a named, persistent piece of a boss body (amp, tongue, leg)
// whose collider and visibility are toggled by attack routines.
type BossPart struct {
	Boss    string
	Name    string
	Visible bool
}

var BossPartComponent = NewComponent[BossPart]()

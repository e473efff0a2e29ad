package component

// ArenaNode marks an entity as part of a named arena control group.
// Phase transitions toggle these values by group name.
type ArenaNode struct {
	Group         string
	Active        bool
	HazardEnabled bool
}

var ArenaNodeComponent = NewComponent[ArenaNode]()

package system

import (
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

// ArenaNodeSystem keeps arena hazards armed only while their node is active
// and hazard-enabled.
type ArenaNodeSystem struct{}

func NewArenaNodeSystem() *ArenaNodeSystem { return &ArenaNodeSystem{} }

func (s *ArenaNodeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ArenaNodeComponent.Kind(), component.HazardPropComponent.Kind(), func(_ ecs.Entity, node *component.ArenaNode, hz *component.HazardProp) {
		hz.Armed = node.Active && node.HazardEnabled
	})
}

// ArenaToggle switches every node of one arena group.
type ArenaToggle struct {
	w     *ecs.World
	group string
}

func NewArenaToggle(w *ecs.World, group string) *ArenaToggle {
	return &ArenaToggle{w: w, group: group}
}

func (a *ArenaToggle) SetActive(active bool) {
	if a == nil {
		return
	}
	ecs.ForEach(a.w, component.ArenaNodeComponent.Kind(), func(_ ecs.Entity, node *component.ArenaNode) {
		if node.Group == a.group {
			node.Active = active
		}
	})
}

func (a *ArenaToggle) Group() string {
	return a.group
}

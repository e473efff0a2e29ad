package component

// Owner names the boss controller that spawned an entity.
type Owner struct {
	Boss string
}

var OwnerComponent = NewComponent[Owner]()

package component

// TTL destroys the entity once Seconds reaches zero.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()

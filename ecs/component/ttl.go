package component

// TTL destroys its entity after Frames ticks. Used for the exit-locked
// toast.
type TTL struct {
	Frames int
}

var TTLComponent = NewComponent[TTL]()

package component

// Hazard marks a static collider that kills the player on contact.
type Hazard struct{}

var HazardComponent = NewComponent[Hazard]()

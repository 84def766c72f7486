package component

import "time"

// EndZone is a static overlap region that finishes the level.
type EndZone struct {
	Width         float64
	Height        float64
	RequiredCoins int
	NextScene     string
	Delay         time.Duration
	Triggered     bool
}

var EndZoneComponent = NewComponent[EndZone]()

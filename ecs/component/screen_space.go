package component

// ScreenSpace pins a sprite or label to the view, ignoring camera scroll
// and zoom. HUD text and the level-cleared banner carry it.
type ScreenSpace struct{}

var ScreenSpaceComponent = NewComponent[ScreenSpace]()

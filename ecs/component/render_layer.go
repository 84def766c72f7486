package component

// RenderLayer orders sprites: background tiles 0, ground tiles 1, coins and
// the player above. Ties draw in entity order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()

package component

// Coin is a static collectible removed on overlap with the player.
type Coin struct {
	Width  float64
	Height float64
	Value  int
}

var CoinComponent = NewComponent[Coin]()

// CoinCounter tracks collected coins for the HUD and the victory screen.
type CoinCounter struct {
	Collected int
	Total     int
	// Format receives Collected then Total.
	Format       string
	RenderedText string
}

var CoinCounterComponent = NewComponent[CoinCounter]()

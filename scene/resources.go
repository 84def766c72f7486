package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// Resources holds everything the load scene decoded, keyed by manifest key.
type Resources struct {
	Sheets  map[string]*assets.SpriteSheet
	Images  map[string]*ebiten.Image
	Audio   map[string]string
	Atlases map[string]*assets.MultiAtlas
	Maps    map[string]*levels.Map
	// MapOrder lists tilemap keys in manifest order.
	MapOrder   []string
	Animations []prefabs.AnimationSpec
}

func NewResources() *Resources {
	return &Resources{
		Sheets:  make(map[string]*assets.SpriteSheet),
		Images:  make(map[string]*ebiten.Image),
		Audio:   make(map[string]string),
		Atlases: make(map[string]*assets.MultiAtlas),
		Maps:    make(map[string]*levels.Map),
	}
}

func (r *Resources) Sheet(key string) (*assets.SpriteSheet, error) {
	s, ok := r.Sheets[key]
	if !ok {
		return nil, fmt.Errorf("resources: spritesheet %q not loaded", key)
	}
	return s, nil
}

func (r *Resources) Atlas(key string) (*assets.MultiAtlas, error) {
	a, ok := r.Atlases[key]
	if !ok {
		return nil, fmt.Errorf("resources: multiatlas %q not loaded", key)
	}
	return a, nil
}

// Map returns the named tilemap, or the first loaded one for an empty key.
func (r *Resources) Map(key string) (*levels.Map, error) {
	if key == "" {
		if len(r.MapOrder) == 0 {
			return nil, fmt.Errorf("resources: no tilemaps loaded")
		}
		key = r.MapOrder[0]
	}
	m, ok := r.Maps[key]
	if !ok {
		return nil, fmt.Errorf("resources: tilemap %q not loaded", key)
	}
	return m, nil
}

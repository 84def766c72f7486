package entity

import (
	"fmt"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

const (
	collidesProperty = "collides"
	killsProperty    = "kills"
)

// TilemapStats summarises what LoadTilemapToWorld spawned.
type TilemapStats struct {
	Tiles     int
	Solids    int
	Hazards   int
	WidthPx   float64
	HeightPx  float64
	TileWidth int
}

// LoadTilemapToWorld spawns the level bounds, one sprite per tile of the
// background and ground layers, and merged static colliders for ground
// tiles flagged collides or kills. Kill colliders carry a Hazard.
func LoadTilemapToWorld(w *ecs.World, m *levels.Map, spec *prefabs.LevelSpec, sheet *assets.SpriteSheet) (*TilemapStats, error) {
	if w == nil || m == nil || spec == nil {
		return nil, fmt.Errorf("tilemap: missing world, map or spec")
	}
	tileset, err := m.Tileset(spec.Tileset)
	if err != nil {
		return nil, fmt.Errorf("tilemap: %w", err)
	}

	stats := &TilemapStats{
		WidthPx:   float64(m.WidthInPixels()),
		HeightPx:  float64(m.HeightInPixels()),
		TileWidth: m.TileWidth,
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  stats.WidthPx,
		Height: stats.HeightPx,
	}); err != nil {
		return nil, fmt.Errorf("tilemap: add level bounds: %w", err)
	}

	for layerIdx, name := range []string{spec.BackgroundLayer, spec.GroundLayer} {
		layer, err := m.Layer(name)
		if err != nil {
			return nil, fmt.Errorf("tilemap: %w", err)
		}
		n, err := addTileSprites(w, m, layer, layerIdx, tileset, sheet)
		if err != nil {
			return nil, fmt.Errorf("tilemap: layer %q: %w", name, err)
		}
		stats.Tiles += n
	}

	ground, err := m.Layer(spec.GroundLayer)
	if err != nil {
		return nil, fmt.Errorf("tilemap: %w", err)
	}
	solid := make([]bool, len(ground.Data))
	kills := make([]bool, len(ground.Data))
	for i, gid := range ground.Data {
		props := m.TileProperties(gid)
		switch {
		case props.Bool(killsProperty):
			kills[i] = true
		case props.Bool(collidesProperty):
			solid[i] = true
		}
	}

	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	stats.Solids, err = addMergedTileColliders(w, solid, ground.Width, ground.Height, tw, th, false)
	if err != nil {
		return nil, fmt.Errorf("tilemap: solid colliders: %w", err)
	}
	stats.Hazards, err = addMergedTileColliders(w, kills, ground.Width, ground.Height, tw, th, true)
	if err != nil {
		return nil, fmt.Errorf("tilemap: hazard colliders: %w", err)
	}
	return stats, nil
}

func addTileSprites(w *ecs.World, m *levels.Map, layer *levels.Layer, layerIdx int, tileset *levels.Tileset, sheet *assets.SpriteSheet) (int, error) {
	count := 0
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			gid := layer.At(x, y)
			if gid == 0 || m.TilesetFor(gid) != tileset {
				continue
			}

			e := ecs.CreateEntity(w)
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x * m.TileWidth),
				Y:      float64(y * m.TileHeight),
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return count, err
			}
			sprite := &component.Sprite{}
			if sheet != nil {
				sprite.Image = sheet.Frame(tileset.LocalID(gid))
			}
			if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
				return count, err
			}
			if err := ecs.Add(w, e, component.StaticTileComponent.Kind(), &component.StaticTile{Layer: layer.Name, GID: gid}); err != nil {
				return count, err
			}
			if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layerIdx}); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// addMergedTileColliders covers the flagged cells with as few static boxes
// as a greedy row-then-column merge finds.
func addMergedTileColliders(w *ecs.World, cells []bool, width, height int, tileW, tileH float64, hazard bool) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	open := func(x, y int) bool {
		i := index(x, y)
		return i < len(cells) && cells[i] && !visited[i]
	}

	count := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !open(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && open(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !open(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			e := ecs.CreateEntity(w)
			if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
				X:      float64(x) * tileW,
				Y:      float64(y) * tileH,
				ScaleX: 1,
				ScaleY: 1,
			}); err != nil {
				return count, err
			}
			if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:  float64(maxW) * tileW,
				Height: float64(maxH) * tileH,
				Static: true,
			}); err != nil {
				return count, err
			}
			if hazard {
				if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{}); err != nil {
					return count, err
				}
			}
			count++
		}
	}
	return count, nil
}

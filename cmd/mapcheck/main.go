package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

func main() {
	file := flag.String("map", "", "level file in levels/ (defaults to the first manifest tilemap)")
	flag.Parse()

	level, err := prefabs.LoadLevelSpec()
	if err != nil {
		log.Fatal(err)
	}
	name := *file
	if name == "" {
		manifest, err := prefabs.LoadManifest()
		if err != nil {
			log.Fatal(err)
		}
		if len(manifest.Tilemaps) == 0 {
			log.Fatal("manifest lists no tilemaps")
		}
		name = manifest.Tilemaps[0].File
	}

	m, err := levels.LoadMap(name)
	if err != nil {
		log.Fatal(err)
	}
	if err := check(os.Stdout, name, m, level); err != nil {
		log.Fatal(err)
	}
}

// check prints what the platformer scene would build from m and fails when
// a required layer or object is missing.
func check(out io.Writer, name string, m *levels.Map, level *prefabs.LevelSpec) error {
	w := ecs.NewWorld()
	stats, err := entity.LoadTilemapToWorld(w, m, level, nil)
	if err != nil {
		return err
	}
	coins, err := m.ObjectsNamed(level.ObjectsLayer, level.CoinObject)
	if err != nil {
		return err
	}
	if len(coins) == 0 {
		return fmt.Errorf("mapcheck: no %q objects in %q", level.CoinObject, level.ObjectsLayer)
	}
	zone, err := m.FindObject(level.ObjectsLayer, func(o *levels.Object) bool { return o.Name == level.EndZoneObject })
	if err != nil {
		if errors.Is(err, levels.ErrObjectNotFound) {
			return fmt.Errorf("mapcheck: %q missing: %w", level.EndZoneObject, err)
		}
		return err
	}

	bounds := component.LevelBounds{Width: stats.WidthPx, Height: stats.HeightPx}
	if !bounds.Contains(zone.X, zone.Y) || !bounds.Contains(zone.X+zone.Width-1, zone.Y+zone.Height-1) {
		return fmt.Errorf("mapcheck: %q at (%.0f, %.0f) lies outside the map", level.EndZoneObject, zone.X, zone.Y)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "map\t%s\n", name)
	fmt.Fprintf(tw, "size\t%dx%d tiles (%.0fx%.0f px)\n", m.Width, m.Height, stats.WidthPx, stats.HeightPx)
	fmt.Fprintf(tw, "tile sprites\t%d\n", stats.Tiles)
	fmt.Fprintf(tw, "solid colliders\t%d\n", stats.Solids)
	fmt.Fprintf(tw, "hazard colliders\t%d\n", stats.Hazards)
	fmt.Fprintf(tw, "coins\t%d\n", len(coins))
	fmt.Fprintf(tw, "end zone\t(%.0f, %.0f) %.0fx%.0f requiredCoins=%d\n", zone.X, zone.Y, zone.Width, zone.Height, zone.Properties.Int("requiredCoins", 0))
	return tw.Flush()
}

package levels

import (
	"errors"
	"testing"
)

const sampleMap = `{
  "width": 3, "height": 2, "tilewidth": 16, "tileheight": 16,
  "layers": [
    {"name": "Ground-n-Platforms", "type": "tilelayer", "width": 3, "height": 2,
     "data": [0, 1, 2147483651, 2, 0, 9]},
    {"name": "Objects", "type": "objectgroup", "objects": [
      {"id": 1, "name": "coin", "gid": 9, "x": 10, "y": 30, "width": 10, "height": 10},
      {"id": 2, "name": "coin", "gid": 9, "x": 40, "y": 30, "width": 10, "height": 10},
      {"id": 3, "name": "endZone", "x": 20, "y": 0, "width": 16, "height": 32,
       "properties": [{"name": "requiredCoins", "type": "int", "value": 2}]}
    ]}
  ],
  "tilesets": [
    {"firstgid": 1, "name": "Tiles", "tilecount": 8, "columns": 4, "tilewidth": 16, "tileheight": 16,
     "tiles": [
       {"id": 0, "properties": [{"name": "collides", "type": "bool", "value": true}]},
       {"id": 2, "properties": [{"name": "kills", "type": "bool", "value": true}]}
     ]},
    {"firstgid": 9, "name": "Coin", "tilecount": 4, "columns": 4, "tilewidth": 10, "tileheight": 10}
  ]
}`

func TestParseMap(t *testing.T) {
	m, err := ParseMap([]byte(sampleMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.WidthInPixels() != 48 || m.HeightInPixels() != 32 {
		t.Fatalf("unexpected pixel size %dx%d", m.WidthInPixels(), m.HeightInPixels())
	}

	ground, err := m.Layer("Ground-n-Platforms")
	if err != nil {
		t.Fatalf("layer: %v", err)
	}
	if got := ground.At(2, 0); got != 3 {
		t.Fatalf("expected flip bits masked to gid 3, got %d", got)
	}
	if got := ground.At(5, 5); got != 0 {
		t.Fatalf("expected 0 outside layer, got %d", got)
	}

	t.Run("tile_properties", func(t *testing.T) {
		if !m.TileProperties(1).Bool("collides") {
			t.Fatalf("gid 1 should collide")
		}
		if !m.TileProperties(3).Bool("kills") {
			t.Fatalf("gid 3 should kill")
		}
		if m.TileProperties(2).Bool("collides") {
			t.Fatalf("gid 2 has no properties")
		}
		if m.TileProperties(0) != nil {
			t.Fatalf("empty gid should have no properties")
		}
	})

	t.Run("tileset_for", func(t *testing.T) {
		if ts := m.TilesetFor(9); ts == nil || ts.Name != "Coin" {
			t.Fatalf("gid 9 should belong to Coin, got %+v", ts)
		}
		if ts := m.TilesetFor(12); ts == nil || ts.LocalID(12) != 3 {
			t.Fatalf("gid 12 should be local id 3")
		}
		if ts := m.TilesetFor(13); ts != nil {
			t.Fatalf("gid 13 is past the last tileset")
		}
	})

	t.Run("objects", func(t *testing.T) {
		coins, err := m.ObjectsNamed("Objects", "coin")
		if err != nil {
			t.Fatalf("objects: %v", err)
		}
		if len(coins) != 2 {
			t.Fatalf("expected 2 coins, got %d", len(coins))
		}
		if coins[0].Y != 20 {
			t.Fatalf("expected tile object y moved to top-left 20, got %v", coins[0].Y)
		}

		zone, err := m.FindObject("Objects", func(o *Object) bool { return o.Name == "endZone" })
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if zone.Y != 0 {
			t.Fatalf("plain objects keep their y, got %v", zone.Y)
		}
		if got := zone.Properties.Int("requiredCoins", 0); got != 2 {
			t.Fatalf("expected requiredCoins 2, got %d", got)
		}
		if got := zone.Properties.Int("missing", 7); got != 7 {
			t.Fatalf("expected default 7, got %d", got)
		}

		_, err = m.FindObject("Objects", func(o *Object) bool { return o.Name == "exit" })
		if !errors.Is(err, ErrObjectNotFound) {
			t.Fatalf("expected ErrObjectNotFound, got %v", err)
		}
		if _, err := m.ObjectGroup("Missing"); !errors.Is(err, ErrLayerNotFound) {
			t.Fatalf("expected ErrLayerNotFound, got %v", err)
		}
	})
}

func TestParseMapRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
	}{
		{
			name: "base64",
			data: `{"width":1,"height":1,"tilewidth":16,"tileheight":16,
				"layers":[{"name":"g","type":"tilelayer","width":1,"height":1,"encoding":"base64","data":"AQAAAA=="}]}`,
			want: ErrUnsupportedEncoding,
		},
		{
			name: "external_tileset",
			data: `{"width":1,"height":1,"tilewidth":16,"tileheight":16,
				"tilesets":[{"firstgid":1,"source":"tiles.tsj"}]}`,
			want: ErrExternalTileset,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseMap([]byte(c.data))
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}

	if _, err := ParseMap([]byte(`{"width":1,"height":1,"tilewidth":0,"tileheight":16}`)); err == nil {
		t.Fatalf("expected error for zero tile width")
	}
}

func TestLoadEmbeddedLevel(t *testing.T) {
	m, err := LoadMap("platformer-level-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, name := range []string{"Background-n-Details", "Ground-n-Platforms"} {
		if _, err := m.Layer(name); err != nil {
			t.Fatalf("layer %s: %v", name, err)
		}
	}
	coins, err := m.ObjectsNamed("Objects", "coin")
	if err != nil || len(coins) == 0 {
		t.Fatalf("expected coins, got %d (%v)", len(coins), err)
	}
	if _, err := m.FindObject("Objects", func(o *Object) bool { return o.Name == "endZone" }); err != nil {
		t.Fatalf("endZone: %v", err)
	}
	if _, err := m.Tileset("Platformer Asset All H"); err != nil {
		t.Fatalf("tileset: %v", err)
	}
}

package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnsupportedEncoding = errors.New("levels: unsupported tile layer encoding")
	ErrExternalTileset     = errors.New("levels: external tilesets are not supported")
	ErrObjectNotFound      = errors.New("levels: object not found")
	ErrLayerNotFound       = errors.New("levels: layer not found")
)

const (
	flipHorizontal uint32 = 0x80000000
	flipVertical   uint32 = 0x40000000
	flipDiagonal   uint32 = 0x20000000
	flipHexagonal  uint32 = 0x10000000

	gidMask = ^(flipHorizontal | flipVertical | flipDiagonal | flipHexagonal)
)

const (
	LayerTypeTile   = "tilelayer"
	LayerTypeObject = "objectgroup"
)

// Map is the subset of the Tiled JSON map format this game reads.
type Map struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	TileWidth  int        `json:"tilewidth"`
	TileHeight int        `json:"tileheight"`
	Infinite   bool       `json:"infinite"`
	Layers     []*Layer   `json:"layers"`
	Tilesets   []*Tileset `json:"tilesets"`
	Properties Properties `json:"properties"`
}

type Layer struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Visible    bool            `json:"visible"`
	Opacity    float64         `json:"opacity"`
	Encoding   string          `json:"encoding"`
	RawData    json.RawMessage `json:"data"`
	Objects    []*Object       `json:"objects"`
	Properties Properties      `json:"properties"`

	// Data holds one GID per cell, row-major, with flip bits cleared.
	Data []uint32 `json:"-"`
}

// At returns the GID at tile (x, y), or 0 outside the layer.
func (l *Layer) At(x, y int) uint32 {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0
	}
	i := y*l.Width + x
	if i >= len(l.Data) {
		return 0
	}
	return l.Data[i]
}

type Object struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Class      string     `json:"class"`
	GID        uint32     `json:"gid"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Rotation   float64    `json:"rotation"`
	Visible    bool       `json:"visible"`
	Properties Properties `json:"properties"`
}

type Tileset struct {
	FirstGID    uint32  `json:"firstgid"`
	Source      string  `json:"source"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	ImageWidth  int     `json:"imagewidth"`
	ImageHeight int     `json:"imageheight"`
	TileWidth   int     `json:"tilewidth"`
	TileHeight  int     `json:"tileheight"`
	Columns     int     `json:"columns"`
	TileCount   int     `json:"tilecount"`
	Margin      int     `json:"margin"`
	Spacing     int     `json:"spacing"`
	Tiles       []*Tile `json:"tiles"`

	tileProps map[int]Properties
}

type Tile struct {
	ID         int        `json:"id"`
	Properties Properties `json:"properties"`
}

// Contains reports whether gid belongs to this tileset.
func (t *Tileset) Contains(gid uint32) bool {
	if t == nil || gid < t.FirstGID {
		return false
	}
	return t.TileCount <= 0 || gid < t.FirstGID+uint32(t.TileCount)
}

// LocalID converts a map GID into the tile id inside this tileset.
func (t *Tileset) LocalID(gid uint32) int {
	return int((gid & gidMask) - t.FirstGID)
}

type Property struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type Properties []Property

func (p Properties) Get(name string) (any, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return nil, false
}

// Bool returns the named property as a bool. Missing or non-bool values
// are false.
func (p Properties) Bool(name string) bool {
	v, ok := p.Get(name)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	}
	return false
}

// Int returns the named property as an int, or def when missing.
func (p Properties) Int(name string, def int) int {
	v, ok := p.Get(name)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return def
}

func (p Properties) String(name string) string {
	v, ok := p.Get(name)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// ParseMap decodes a Tiled JSON map, resolving tile layer data and tile
// object positions.
func ParseMap(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("levels: unmarshal map: %w", err)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("levels: invalid tile size %dx%d", m.TileWidth, m.TileHeight)
	}
	if m.Infinite {
		return nil, fmt.Errorf("levels: infinite maps: %w", ErrUnsupportedEncoding)
	}

	for _, ts := range m.Tilesets {
		if ts.Source != "" {
			return nil, fmt.Errorf("%w: %q", ErrExternalTileset, ts.Source)
		}
		ts.tileProps = make(map[int]Properties, len(ts.Tiles))
		for _, tile := range ts.Tiles {
			ts.tileProps[tile.ID] = tile.Properties
		}
	}

	for _, l := range m.Layers {
		switch l.Type {
		case LayerTypeTile:
			if err := l.decodeData(); err != nil {
				return nil, fmt.Errorf("levels: layer %q: %w", l.Name, err)
			}
		case LayerTypeObject:
			for _, obj := range l.Objects {
				if obj.GID == 0 {
					continue
				}
				obj.GID &= gidMask
				// Tile objects are anchored bottom-left.
				obj.Y -= obj.Height
			}
		}
	}
	return &m, nil
}

func (l *Layer) decodeData() error {
	if l.Encoding != "" && l.Encoding != "csv" {
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoding, l.Encoding)
	}
	if len(l.RawData) == 0 {
		return nil
	}
	var raw []uint32
	if err := json.Unmarshal(l.RawData, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedEncoding, err)
	}
	if len(raw) != l.Width*l.Height {
		return fmt.Errorf("levels: expected %d cells, got %d", l.Width*l.Height, len(raw))
	}
	for i := range raw {
		raw[i] &= gidMask
	}
	l.Data = raw
	return nil
}

func (m *Map) WidthInPixels() int  { return m.Width * m.TileWidth }
func (m *Map) HeightInPixels() int { return m.Height * m.TileHeight }

// Layer returns the named tile layer.
func (m *Map) Layer(name string) (*Layer, error) {
	for _, l := range m.Layers {
		if l.Name == name && l.Type == LayerTypeTile {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: tile layer %q", ErrLayerNotFound, name)
}

// ObjectGroup returns the named object layer.
func (m *Map) ObjectGroup(name string) (*Layer, error) {
	for _, l := range m.Layers {
		if l.Name == name && l.Type == LayerTypeObject {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: object layer %q", ErrLayerNotFound, name)
}

// FindObject returns the first object in layer that satisfies pred.
func (m *Map) FindObject(layer string, pred func(*Object) bool) (*Object, error) {
	group, err := m.ObjectGroup(layer)
	if err != nil {
		return nil, err
	}
	for _, obj := range group.Objects {
		if pred(obj) {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("%w: in layer %q", ErrObjectNotFound, layer)
}

// ObjectsNamed returns every object in layer with the given name.
func (m *Map) ObjectsNamed(layer, name string) ([]*Object, error) {
	group, err := m.ObjectGroup(layer)
	if err != nil {
		return nil, err
	}
	var out []*Object
	for _, obj := range group.Objects {
		if obj.Name == name {
			out = append(out, obj)
		}
	}
	return out, nil
}

// Tileset returns the embedded tileset with the given name.
func (m *Map) Tileset(name string) (*Tileset, error) {
	for _, ts := range m.Tilesets {
		if ts.Name == name {
			return ts, nil
		}
	}
	return nil, fmt.Errorf("levels: tileset %q not found", name)
}

// TilesetFor returns the tileset that owns gid.
func (m *Map) TilesetFor(gid uint32) *Tileset {
	gid &= gidMask
	if gid == 0 {
		return nil
	}
	var best *Tileset
	for _, ts := range m.Tilesets {
		if ts.FirstGID <= gid && (best == nil || ts.FirstGID > best.FirstGID) {
			best = ts
		}
	}
	if best != nil && !best.Contains(gid) {
		return nil
	}
	return best
}

// TileProperties returns the custom properties of the tile behind gid.
func (m *Map) TileProperties(gid uint32) Properties {
	ts := m.TilesetFor(gid)
	if ts == nil {
		return nil
	}
	return ts.tileProps[ts.LocalID(gid)]
}

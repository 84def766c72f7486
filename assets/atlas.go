package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
)

var ErrFrameNotFound = errors.New("assets: atlas frame not found")

type atlasRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type atlasFrameJSON struct {
	Filename string    `json:"filename"`
	Frame    atlasRect `json:"frame"`
	Rotated  bool      `json:"rotated"`
}

type atlasTextureJSON struct {
	Image  string           `json:"image"`
	Frames []atlasFrameJSON `json:"frames"`
}

type multiAtlasJSON struct {
	Textures []atlasTextureJSON `json:"textures"`
}

// AtlasFrame locates a named frame on one texture page.
type AtlasFrame struct {
	Page int
	Rect image.Rectangle
}

// MultiAtlas is a TexturePacker multi-atlas: named frames spread across
// several texture pages.
type MultiAtlas struct {
	PageFiles []string
	Pages     []*ebiten.Image
	frames    map[string]AtlasFrame
	order     []string
}

// ParseMultiAtlas decodes the atlas JSON without loading any page images.
func ParseMultiAtlas(data []byte) (*MultiAtlas, error) {
	var raw multiAtlasJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("assets: parse multiatlas: %w", err)
	}
	if len(raw.Textures) == 0 {
		return nil, fmt.Errorf("assets: parse multiatlas: no textures")
	}
	atlas := &MultiAtlas{frames: make(map[string]AtlasFrame)}
	for page, tex := range raw.Textures {
		if tex.Image == "" {
			return nil, fmt.Errorf("assets: parse multiatlas: texture %d has no image", page)
		}
		atlas.PageFiles = append(atlas.PageFiles, tex.Image)
		for _, f := range tex.Frames {
			if f.Rotated {
				return nil, fmt.Errorf("assets: parse multiatlas: frame %q is rotated", f.Filename)
			}
			if _, dup := atlas.frames[f.Filename]; !dup {
				atlas.order = append(atlas.order, f.Filename)
			}
			atlas.frames[f.Filename] = AtlasFrame{
				Page: page,
				Rect: image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H),
			}
		}
	}
	return atlas, nil
}

// LoadMultiAtlas loads the atlas JSON and every page image it lists. Page
// paths are resolved relative to the JSON file.
func LoadMultiAtlas(jsonPath string) (*MultiAtlas, error) {
	data, err := LoadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	atlas, err := ParseMultiAtlas(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, jsonPath)
	}
	dir := path.Dir(cleanAssetPath(jsonPath))
	for _, file := range atlas.PageFiles {
		img, err := LoadImage(path.Join(dir, file))
		if err != nil {
			return nil, err
		}
		atlas.Pages = append(atlas.Pages, img)
	}
	return atlas, nil
}

// FrameNames returns frame names in file order.
func (a *MultiAtlas) FrameNames() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.order...)
}

// Lookup returns the page and rectangle for a named frame.
func (a *MultiAtlas) Lookup(name string) (AtlasFrame, error) {
	if a == nil {
		return AtlasFrame{}, ErrFrameNotFound
	}
	f, ok := a.frames[name]
	if !ok {
		return AtlasFrame{}, fmt.Errorf("%w: %q", ErrFrameNotFound, name)
	}
	return f, nil
}

// Frame returns the named frame as a sub-image of its page.
func (a *MultiAtlas) Frame(name string) (*ebiten.Image, error) {
	f, err := a.Lookup(name)
	if err != nil {
		return nil, err
	}
	if f.Page >= len(a.Pages) || a.Pages[f.Page] == nil {
		return nil, fmt.Errorf("assets: atlas page %d for %q not loaded", f.Page, name)
	}
	return a.Pages[f.Page].SubImage(f.Rect).(*ebiten.Image), nil
}

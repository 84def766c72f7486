package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

// decoder turns manifest files into resources. Tests swap it for one that
// needs no graphics device.
type decoder struct {
	sheet func(file string, fw, fh int) (*assets.SpriteSheet, error)
	image func(file string) (*ebiten.Image, error)
	audio func(file string) error
	atlas func(file string) (*assets.MultiAtlas, error)
	tiled func(file string) (*levels.Map, error)
}

func assetDecoder() decoder {
	return decoder{
		sheet: assets.LoadSpriteSheet,
		image: assets.LoadImage,
		audio: func(file string) error {
			_, err := assets.LoadFile(file)
			return err
		},
		atlas: assets.LoadMultiAtlas,
		tiled: levels.LoadMap,
	}
}

// LoadScene decodes the asset manifest into the shared Resources, then
// moves on to the manifest's next scene.
type LoadScene struct {
	decode decoder
	next   string
}

func NewLoadScene() *LoadScene {
	return &LoadScene{decode: assetDecoder()}
}

func (s *LoadScene) Name() string { return LoadName }

func (s *LoadScene) Enter(ctx *Context) error {
	manifest, err := prefabs.LoadManifest()
	if err != nil {
		return err
	}
	if err := manifest.Validate(); err != nil {
		return err
	}
	if err := loadManifest(manifest, ctx.Resources, s.decode); err != nil {
		return err
	}
	s.next = manifest.Next
	if s.next == "" {
		s.next = PlatformerName
	}
	ctx.Log.Info("assets loaded",
		zap.Int("spritesheets", len(manifest.Spritesheets)),
		zap.Int("images", len(manifest.Images)),
		zap.Int("audio", len(manifest.Audio)),
		zap.Int("multiatlases", len(manifest.MultiAtlases)),
		zap.Int("tilemaps", len(manifest.Tilemaps)),
		zap.Int("animations", len(manifest.Animations)),
	)
	return nil
}

func loadManifest(m *prefabs.Manifest, res *Resources, d decoder) error {
	for _, s := range m.Spritesheets {
		sheet, err := d.sheet(s.File, s.FrameWidth, s.FrameHeight)
		if err != nil {
			return fmt.Errorf("load: spritesheet %q (%s): %w", s.Key, s.File, err)
		}
		res.Sheets[s.Key] = sheet
	}
	for _, a := range m.Images {
		img, err := d.image(a.File)
		if err != nil {
			return fmt.Errorf("load: image %q (%s): %w", a.Key, a.File, err)
		}
		res.Images[a.Key] = img
	}
	for _, a := range m.Audio {
		if err := d.audio(a.File); err != nil {
			return fmt.Errorf("load: audio %q (%s): %w", a.Key, a.File, err)
		}
		res.Audio[a.Key] = a.File
	}
	for _, a := range m.MultiAtlases {
		atlas, err := d.atlas(a.File)
		if err != nil {
			return fmt.Errorf("load: multiatlas %q (%s): %w", a.Key, a.File, err)
		}
		res.Atlases[a.Key] = atlas
	}
	res.MapOrder = res.MapOrder[:0]
	for _, a := range m.Tilemaps {
		tm, err := d.tiled(a.File)
		if err != nil {
			return fmt.Errorf("load: tilemap %q (%s): %w", a.Key, a.File, err)
		}
		res.Maps[a.Key] = tm
		res.MapOrder = append(res.MapOrder, a.Key)
	}
	res.Animations = append(res.Animations[:0], m.Animations...)
	return nil
}

func (s *LoadScene) Update() (Transition, error) {
	return Transition{Next: s.next}, nil
}

func (s *LoadScene) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, "Loading...")
}

func (s *LoadScene) Exit() {}

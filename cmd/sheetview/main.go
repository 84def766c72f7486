package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
)

const viewSize = 512

type viewer struct {
	sheet *assets.SpriteSheet
	anim  prefabs.AnimationSpec
	scale float64
	frame int
	tick  int
	ticks int
}

func (v *viewer) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if v.anim.End <= v.anim.Start {
		return nil
	}
	v.tick++
	if v.tick < v.ticks {
		return nil
	}
	v.tick = 0
	if v.frame < v.anim.End {
		v.frame++
	} else if v.anim.Loops() {
		v.frame = v.anim.Start
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	img := v.sheet.Frame(v.frame)
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.scale, v.scale)
	fw := float64(v.sheet.FrameW) * v.scale
	fh := float64(v.sheet.FrameH) * v.scale
	op.GeoM.Translate((viewSize-fw)/2, (viewSize-fh)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d (%d-%d)  %.0f fps", v.anim.Key, v.frame, v.anim.Start, v.anim.End, v.anim.FPS))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	sheetKey := flag.String("sheet", "knight", "spritesheet key from prefabs/load.yaml")
	animKey := flag.String("anim", "idle", "animation key from prefabs/load.yaml")
	scale := flag.Float64("scale", 8, "pixel scale")
	flag.Parse()

	manifest, err := prefabs.LoadManifest()
	if err != nil {
		log.Fatal(err)
	}
	if err := manifest.Validate(); err != nil {
		log.Fatal(err)
	}

	var sheetSpec *prefabs.SpritesheetSpec
	for i := range manifest.Spritesheets {
		if manifest.Spritesheets[i].Key == *sheetKey {
			sheetSpec = &manifest.Spritesheets[i]
		}
	}
	if sheetSpec == nil {
		log.Fatalf("spritesheet %q not in manifest", *sheetKey)
	}
	var anim *prefabs.AnimationSpec
	for i := range manifest.Animations {
		if manifest.Animations[i].Key == *animKey && manifest.Animations[i].Sheet == *sheetKey {
			anim = &manifest.Animations[i]
		}
	}
	if anim == nil {
		log.Fatalf("animation %q on sheet %q not in manifest", *animKey, *sheetKey)
	}

	sheet, err := assets.LoadSpriteSheet(sheetSpec.File, sheetSpec.FrameWidth, sheetSpec.FrameHeight)
	if err != nil {
		log.Fatal(err)
	}

	v := &viewer{sheet: sheet, anim: *anim, scale: *scale, frame: anim.Start, ticks: system.TicksPerFrame(anim.FPS)}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("sheetview: " + anim.Key)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

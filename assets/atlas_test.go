package assets

import (
	"errors"
	"image"
	"testing"
)

const sampleAtlas = `{
  "textures": [
    {"image": "page-0.png", "frames": [
      {"filename": "smoke_03.png", "frame": {"x": 0, "y": 0, "w": 32, "h": 32}},
      {"filename": "smoke_09.png", "frame": {"x": 32, "y": 0, "w": 32, "h": 32}}
    ]},
    {"image": "page-1.png", "frames": [
      {"filename": "spark_01.png", "frame": {"x": 4, "y": 8, "w": 16, "h": 12}}
    ]}
  ]
}`

func TestParseMultiAtlas(t *testing.T) {
	atlas, err := ParseMultiAtlas([]byte(sampleAtlas))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(atlas.PageFiles) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(atlas.PageFiles))
	}

	cases := []struct {
		name string
		page int
		rect image.Rectangle
	}{
		{"smoke_03.png", 0, image.Rect(0, 0, 32, 32)},
		{"smoke_09.png", 0, image.Rect(32, 0, 64, 32)},
		{"spark_01.png", 1, image.Rect(4, 8, 20, 20)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := atlas.Lookup(c.name)
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if f.Page != c.page || f.Rect != c.rect {
				t.Fatalf("expected page %d rect %v, got page %d rect %v", c.page, c.rect, f.Page, f.Rect)
			}
		})
	}

	names := atlas.FrameNames()
	if len(names) != 3 || names[0] != "smoke_03.png" || names[2] != "spark_01.png" {
		t.Fatalf("unexpected frame order %v", names)
	}
}

func TestMultiAtlasMissingFrame(t *testing.T) {
	atlas, err := ParseMultiAtlas([]byte(sampleAtlas))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := atlas.Lookup("nope.png"); !errors.Is(err, ErrFrameNotFound) {
		t.Fatalf("expected ErrFrameNotFound, got %v", err)
	}
	if _, err := atlas.Frame("smoke_03.png"); err == nil {
		t.Fatalf("expected error for unloaded page")
	}
}

func TestParseMultiAtlasRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"not_json":    `{`,
		"no_textures": `{"textures": []}`,
		"no_image":    `{"textures": [{"frames": []}]}`,
		"rotated":     `{"textures": [{"image": "a.png", "frames": [{"filename": "x", "rotated": true, "frame": {"x":0,"y":0,"w":1,"h":1}}]}]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseMultiAtlas([]byte(data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestEmbeddedParticleAtlas(t *testing.T) {
	data, err := LoadFile("kenny-particles.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	atlas, err := ParseMultiAtlas(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, name := range []string{"smoke_03.png", "smoke_09.png"} {
		if _, err := atlas.Lookup(name); err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
	}
}

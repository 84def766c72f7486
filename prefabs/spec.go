package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadSpec loads a prefab file and decodes it into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Manifest lists every asset the load scene decodes before gameplay.
type Manifest struct {
	Spritesheets []SpritesheetSpec `yaml:"spritesheets"`
	Images       []AssetSpec       `yaml:"images"`
	Audio        []AssetSpec       `yaml:"audio"`
	MultiAtlases []AssetSpec       `yaml:"multiatlases"`
	Tilemaps     []AssetSpec       `yaml:"tilemaps"`
	Animations   []AnimationSpec   `yaml:"animations"`
	Next         string            `yaml:"next"`
}

type AssetSpec struct {
	Key  string `yaml:"key"`
	File string `yaml:"file"`
}

type SpritesheetSpec struct {
	Key         string `yaml:"key"`
	File        string `yaml:"file"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
}

// AnimationSpec uses inclusive frame indices. Repeat -1 loops forever, 0
// plays once.
type AnimationSpec struct {
	Key    string  `yaml:"key"`
	Sheet  string  `yaml:"sheet"`
	Start  int     `yaml:"start"`
	End    int     `yaml:"end"`
	FPS    float64 `yaml:"fps"`
	Repeat int     `yaml:"repeat"`
}

func (a AnimationSpec) Loops() bool {
	return a.Repeat < 0
}

func LoadManifest() (*Manifest, error) {
	spec, err := LoadSpec[Manifest]("load.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks that every entry is usable and that keys are unique per
// section.
func (m *Manifest) Validate() error {
	if m == nil {
		return fmt.Errorf("prefabs: nil manifest")
	}
	check := func(section string, keys, files []string) error {
		seen := make(map[string]struct{}, len(keys))
		for i, k := range keys {
			if k == "" {
				return fmt.Errorf("prefabs: %s[%d]: missing key", section, i)
			}
			if files[i] == "" {
				return fmt.Errorf("prefabs: %s %q: missing file", section, k)
			}
			if _, dup := seen[k]; dup {
				return fmt.Errorf("prefabs: %s %q: duplicate key", section, k)
			}
			seen[k] = struct{}{}
		}
		return nil
	}

	var keys, files []string
	for _, s := range m.Spritesheets {
		if s.FrameWidth <= 0 || s.FrameHeight <= 0 {
			return fmt.Errorf("prefabs: spritesheet %q: invalid frame size %dx%d", s.Key, s.FrameWidth, s.FrameHeight)
		}
		keys = append(keys, s.Key)
		files = append(files, s.File)
	}
	if err := check("spritesheet", keys, files); err != nil {
		return err
	}
	for section, list := range map[string][]AssetSpec{
		"image":      m.Images,
		"audio":      m.Audio,
		"multiatlas": m.MultiAtlases,
		"tilemap":    m.Tilemaps,
	} {
		keys, files = keys[:0], files[:0]
		for _, a := range list {
			keys = append(keys, a.Key)
			files = append(files, a.File)
		}
		if err := check(section, keys, files); err != nil {
			return err
		}
	}

	sheets := make(map[string]struct{}, len(m.Spritesheets))
	for _, s := range m.Spritesheets {
		sheets[s.Key] = struct{}{}
	}
	anims := make(map[string]struct{}, len(m.Animations))
	for _, a := range m.Animations {
		if _, ok := sheets[a.Sheet]; !ok {
			return fmt.Errorf("prefabs: animation %q: unknown sheet %q", a.Key, a.Sheet)
		}
		if a.End < a.Start || a.Start < 0 {
			return fmt.Errorf("prefabs: animation %q: invalid frames %d-%d", a.Key, a.Start, a.End)
		}
		if a.FPS <= 0 {
			return fmt.Errorf("prefabs: animation %q: fps must be positive", a.Key)
		}
		if _, dup := anims[a.Key]; dup {
			return fmt.Errorf("prefabs: animation %q: duplicate key", a.Key)
		}
		anims[a.Key] = struct{}{}
	}
	return nil
}

// LevelSpec names the map layers and objects the platformer scene reads.
type LevelSpec struct {
	Tileset         string  `yaml:"tileset"`
	TilesetSheet    string  `yaml:"tileset_sheet"`
	BackgroundLayer string  `yaml:"background_layer"`
	GroundLayer     string  `yaml:"ground_layer"`
	ObjectsLayer    string  `yaml:"objects_layer"`
	CoinObject      string  `yaml:"coin_object"`
	EndZoneObject   string  `yaml:"end_zone_object"`
	Gravity         float64 `yaml:"gravity"`
}

func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec]("level.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name             string          `yaml:"name"`
	Acceleration     float64         `yaml:"acceleration"`
	Drag             float64         `yaml:"drag"`
	MaxSpeed         float64         `yaml:"max_speed"`
	JumpVelocity     float64         `yaml:"jump_velocity"`
	ParticleVelocity float64         `yaml:"particle_velocity"`
	RespawnDelay     time.Duration   `yaml:"respawn_delay"`
	Spawn            PointSpec       `yaml:"spawn"`
	Collider         ColliderSpec    `yaml:"collider"`
	Sprite           SpriteSpec      `yaml:"sprite"`
	Animation        string          `yaml:"animation"`
	RenderLayer      RenderLayerSpec `yaml:"render_layer"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name      string  `yaml:"name"`
	Target    string  `yaml:"target"`
	Zoom      float64 `yaml:"zoom"`
	LerpX     float64 `yaml:"lerp_x"`
	LerpY     float64 `yaml:"lerp_y"`
	DeadzoneW float64 `yaml:"deadzone_w"`
	DeadzoneH float64 `yaml:"deadzone_h"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CoinSpec struct {
	Sheet       string          `yaml:"sheet"`
	Frame       int             `yaml:"frame"`
	Animation   string          `yaml:"animation"`
	Value       int             `yaml:"value"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadCoinSpec() (*CoinSpec, error) {
	spec, err := LoadSpec[CoinSpec]("coin.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EndZoneSpec struct {
	NextScene string        `yaml:"next_scene"`
	Delay     time.Duration `yaml:"delay"`
	Script    string        `yaml:"script"`
}

func LoadEndZoneSpec() (*EndZoneSpec, error) {
	spec, err := LoadSpec[EndZoneSpec]("end_zone.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// EmitterSpec configures a particle emitter. Scales are relative to the
// source frame size.
type EmitterSpec struct {
	Name       string        `yaml:"name"`
	Atlas      string        `yaml:"atlas"`
	Frames     []string      `yaml:"frames"`
	Lifespan   time.Duration `yaml:"lifespan"`
	Frequency  time.Duration `yaml:"frequency"`
	MaxAlive   int           `yaml:"max_alive"`
	ScaleStart float64       `yaml:"scale_start"`
	ScaleEnd   float64       `yaml:"scale_end"`
	AlphaStart float64       `yaml:"alpha_start"`
	AlphaEnd   float64       `yaml:"alpha_end"`
	GravityY   float64       `yaml:"gravity_y"`
	SourceSize float64       `yaml:"source_size"`
	Offset     PointSpec     `yaml:"offset"`
}

func LoadEmitterSpec(filename string) (*EmitterSpec, error) {
	spec, err := LoadSpec[EmitterSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SoundsSpec struct {
	Sounds []AudioSpec `yaml:"sounds"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	Asset  string  `yaml:"asset"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

func LoadSoundsSpec() (*SoundsSpec, error) {
	spec, err := LoadSpec[SoundsSpec]("sounds.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TextSpec struct {
	Text        string     `yaml:"text"`
	Size        float64    `yaml:"size"`
	Fill        *YAMLColor `yaml:"fill"`
	Stroke      *YAMLColor `yaml:"stroke"`
	StrokeWidth float64    `yaml:"stroke_width"`
	Anchor      string     `yaml:"anchor"`
	Margin      float64    `yaml:"margin"`
	Visible     bool       `yaml:"visible"`
}

func LoadTextSpec(filename string) (*TextSpec, error) {
	spec, err := LoadSpec[TextSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type SpriteSpec struct {
	Sheet   string  `yaml:"sheet"`
	Frame   int     `yaml:"frame"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

type YAMLColor struct {
	color.Color
}

// ColorOr returns the decoded color, or def when c is unset.
func (c *YAMLColor) ColorOr(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	channel := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := channel(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

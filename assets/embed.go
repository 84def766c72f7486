package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const SampleRate = 44100

//go:embed *.png *.wav *.json
var assetsFS embed.FS

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		if ctx := audio.CurrentContext(); ctx != nil {
			audioCtx = ctx
			return
		}
		audioCtx = audio.NewContext(SampleRate)
	})
	return audioCtx
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode image %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("assets: read %q: %w", clean, err)
	}
	return b, nil
}

// LoadAudioPlayer loads an embedded WAV or MP3 asset and creates an audio
// player. Looping players repeat the whole stream forever.
func LoadAudioPlayer(path string, loop bool) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	clean := strings.ToLower(cleanAssetPath(path))
	reader := bytes.NewReader(b)

	var stream interface {
		Read([]byte) (int, error)
		Seek(int64, int) (int64, error)
		Length() int64
	}
	switch {
	case strings.HasSuffix(clean, ".wav"):
		s, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
		}
		stream = s
	case strings.HasSuffix(clean, ".mp3"):
		s, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("assets: decode mp3 %q: %w", path, err)
		}
		stream = s
	default:
		if loop {
			return ctx.NewPlayer(audio.NewInfiniteLoop(reader, int64(len(b))))
		}
		// Fallback for already-decoded PCM assets in Ebiten's native format.
		return ctx.NewPlayerFromBytes(b), nil
	}

	if loop {
		return ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	}
	return ctx.NewPlayer(stream)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s = strings.TrimPrefix(s, "./")
	return strings.TrimPrefix(s, "assets/")
}

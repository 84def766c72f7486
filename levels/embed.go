package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed *.tmj
var LevelsFS embed.FS

// LoadMap reads and parses an embedded Tiled map. The ".tmj" extension is
// optional.
func LoadMap(name string) (*Map, error) {
	clean := cleanLevelPath(name)
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %q: %w", clean, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %q: %w", clean, err)
	}
	return m, nil
}

// Names lists the embedded maps without their extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".tmj"))
	}
	return out
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "./")
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".tmj") {
		s += ".tmj"
	}
	return s
}

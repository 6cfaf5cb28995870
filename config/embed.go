package config

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// Dir is where on-disk overrides are looked up, relative to the working
// directory.
const Dir = "config"

//go:embed *.yaml
var configFS embed.FS

// Load reads a config file, preferring an on-disk copy over the embedded one.
func Load(name string) ([]byte, error) {
	clean := cleanConfigPath(name)
	if data, err := os.ReadFile(diskConfigPath(clean)); err == nil {
		return data, nil
	}
	return configFS.ReadFile(clean)
}

func cleanConfigPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func diskConfigPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}

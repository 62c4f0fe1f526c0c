package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// diskDir is read before the embedded copies so edits show up without a
// rebuild.
var diskDir = "prefabs"

// SetDir changes the on-disk prefab directory. An empty dir disables disk
// reads.
func SetDir(dir string) {
	diskDir = dir
}

// Dir returns the on-disk prefab directory.
func Dir() string {
	return diskDir
}

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := readDisk(clean); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := readDisk(clean); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func readDisk(clean string) ([]byte, error) {
	if diskDir == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(filepath.Join(diskDir, filepath.FromSlash(clean)))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return "scripts/" + s
}

// IsScript reports whether a changed file is a tengo script.
func IsScript(path string) bool {
	return isScriptFile(path)
}

// Package config loads gcworkbench.toml, a project manifest analogous
// to the teacher's surge.toml: a single file, searched for from the
// current directory upward, holding defaults that CLI flags may
// override. Modeled on cmd/surge's project_manifest.go.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no gcworkbench.toml found; using built-in defaults"

// Manifest is the parsed gcworkbench.toml plus where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the decoded TOML document.
type Config struct {
	Run     RunConfig     `toml:"run"`
	Palette PaletteConfig `toml:"palette"`
}

// RunConfig holds defaults for `gcworkbench run`.
type RunConfig struct {
	Algo     string `toml:"algo"`
	HeapSize int    `toml:"heap_size"`
	OutDir   string `toml:"out_dir"`
	Cache    bool   `toml:"cache"`
}

// PaletteConfig holds hex colour settings for the 11-colour palette.
// They are decoded from the manifest, but the renderer draws with its
// own fixed palette (internal/render) and does not read them.
type PaletteConfig struct {
	Free      string `toml:"free"`
	Never     string `toml:"never"`
	Overhead  string `toml:"overhead"`
	ReadRamp  string `toml:"read_ramp"`
	WriteRamp string `toml:"write_ramp"`
}

// Default returns the configuration used when no manifest is found.
func Default() Config {
	return Config{
		Run: RunConfig{
			Algo:     "markcompact",
			HeapSize: 2000,
			OutDir:   "frames",
			Cache:    false,
		},
		Palette: PaletteConfig{
			Free:      "#000000",
			Never:     "#888888",
			Overhead:  "#ff0000",
			ReadRamp:  "#00ff00,#22cc22,#22aa22,#228822",
			WriteRamp: "#ffff00,#cccc22,#aaaa22,#888822",
		},
	}
}

// Find searches startDir and its ancestors for gcworkbench.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "gcworkbench.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes gcworkbench.toml under startDir, falling back
// to Default() (with ok=false) when none exists.
func Load(startDir string) (Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Manifest{}, false, err
	}
	if !ok {
		return Manifest{Config: Default()}, false, nil
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Manifest{}, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// NoManifestMessage is shown (at --quiet=false) when Load falls back to
// built-in defaults.
func NoManifestMessage() string { return noManifestMessage }

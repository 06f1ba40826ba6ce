// Package appconfig renders the configuration file written into the
// install root at install time. The installer never reads it back; it
// is a hand-off artifact for the installed compiler and editor.
package appconfig

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/paths"
)

// Config is the full config.toml document.
type Config struct {
	General  General  `toml:"general"`
	Compiler Compiler `toml:"compiler"`
	Paths    Paths    `toml:"paths"`
	Editor   Editor   `toml:"editor"`
	Features Features `toml:"features"`
}

type General struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Author  string `toml:"author"`
}

type Compiler struct {
	// DefaultWidth and DefaultHeight are the graphics viewport used
	// when -W/-H are not passed.
	DefaultWidth  int  `toml:"default_width"`
	DefaultHeight int  `toml:"default_height"`
	Optimization  bool `toml:"optimization"`
	DebugInfo     bool `toml:"debug_info"`
}

type Paths struct {
	Root     string `toml:"root"`
	Examples string `toml:"examples"`
	Binaries string `toml:"binaries"`
}

type Editor struct {
	Theme    string `toml:"theme"`
	FontSize int    `toml:"font_size"`
	TabSize  int    `toml:"tab_size"`
}

type Features struct {
	Graphics     bool `toml:"graphics"`
	WebAssembly  bool `toml:"webassembly"`
	LLVM         bool `toml:"llvm"`
	VisualEditor bool `toml:"visual_editor"`
}

// Default builds the config written on a fresh install. The
// visual_editor feature toggle reflects whether the editor target was
// actually built.
func Default(layout paths.Layout, version string, editorPresent bool) Config {
	return Config{
		General: General{
			Name:    "Aetos",
			Version: version,
			Author:  "Aetos Project",
		},
		Compiler: Compiler{
			DefaultWidth:  800,
			DefaultHeight: 600,
			Optimization:  true,
			DebugInfo:     false,
		},
		Paths: Paths{
			Root:     layout.Root,
			Examples: layout.ExamplesDir(),
			Binaries: layout.BinDir(),
		},
		Editor: Editor{
			Theme:    "dark",
			FontSize: 14,
			TabSize:  4,
		},
		Features: Features{
			Graphics:     true,
			WebAssembly:  false,
			LLVM:         false,
			VisualEditor: editorPresent,
		},
	}
}

// Render serializes the config as TOML.
func (c Config) Render() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "rendering config")
	}
	return data, nil
}

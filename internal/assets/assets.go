// Package assets holds the companion files shipped with an
// installation: example programs, the compiler's bash completion
// script, and the application icon. Everything is embedded so the
// installer binary is self-contained.
package assets

import (
	"embed"
	"io/fs"
	"path"
)

//go:embed files
var files embed.FS

// IconName is the icon theme name desktop entries reference.
const IconName = "aetos"

// Examples returns the shipped example programs keyed by file name.
func Examples() map[string][]byte {
	entries, err := files.ReadDir("files/examples")
	if err != nil {
		panic(err)
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		out[e.Name()] = mustRead(path.Join("files/examples", e.Name()))
	}
	return out
}

// Completion returns the bash completion script for the compiler.
func Completion() []byte {
	return mustRead("files/completions/aetosc.bash")
}

// Icon returns the scalable application icon.
func Icon() []byte {
	return mustRead("files/icons/aetos.svg")
}

func mustRead(name string) []byte {
	data, err := fs.ReadFile(files, name)
	if err != nil {
		panic(err)
	}
	return data
}

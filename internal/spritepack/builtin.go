package spritepack

import (
	"embed"
	"path"

	"github.com/vovakirdan/tui-pets/internal/graph"
	"github.com/vovakirdan/tui-pets/internal/registry"
)

//go:embed packs/*.yaml
var builtinFS embed.FS

func init() {
	entries, err := builtinFS.ReadDir("packs")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("packs", e.Name()))
		if err != nil {
			panic(err)
		}
		p, err := Parse(data)
		if err != nil {
			panic("spritepack: built-in pack " + e.Name() + ": " + err.Error())
		}
		registry.Register(p.ID, p.Title, p.Graph)
	}
}

// Builtin returns the embedded pack with the given ID.
func Builtin(id string) (*Pack, bool) {
	data, err := builtinFS.ReadFile(path.Join("packs", id+".yaml"))
	if err != nil {
		return nil, false
	}
	p, err := Parse(data)
	if err != nil {
		return nil, false
	}
	return p, true
}

// Resolve finds a pack by ID, first among the files under dir and then
// among the built-in packs, and builds its graph.
func Resolve(id, dir string) (*graph.Graph, error) {
	if dir != "" {
		if p, err := NewLoader(dir).LoadByID(id); err == nil {
			return p.Graph()
		}
	}
	return registry.Create(id)
}

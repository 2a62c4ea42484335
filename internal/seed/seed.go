// Package seed provides the static documents a session can start from.
package seed

import (
	"embed"
	"fmt"
	"sort"

	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Seed names
const (
	NameEmpty   = "empty"
	NameExample = "example"
)

// ByName returns a fresh copy of the named seed document
func ByName(name string) (types.Document, error) {
	data, err := dataFS.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return types.Document{}, fmt.Errorf("unknown seed %q (available: %v)", name, Names())
	}
	doc, err := resumefile.Decode(data, resumefile.FormatYAML)
	if err != nil {
		return types.Document{}, fmt.Errorf("seed %q is invalid: %w", name, err)
	}
	return doc, nil
}

// Names lists the available seeds
func Names() []string {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name()[:len(e.Name())-len(".yaml")])
	}
	sort.Strings(names)
	return names
}

// Example returns the example resume shown to first-time users
func Example() types.Document {
	return mustLoad(NameExample)
}

// Empty returns a skeleton with the standard sections and no content
func Empty() types.Document {
	return mustLoad(NameEmpty)
}

func mustLoad(name string) types.Document {
	doc, err := ByName(name)
	if err != nil {
		panic(err)
	}
	return doc
}

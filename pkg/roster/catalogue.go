package roster

import (
	"embed"

	"gopkg.in/yaml.v3"

	"github.com/tormund/gridiron/pkg/bbgame"
)

//go:embed data/*.yaml
var catalogueFS embed.FS

// Catalogue holds the bundled reference rosters (human, orc, skaven, dwarf,
// chaos), keyed by NormaliseName, enough variety to exercise the Big-guy
// gate, Stunty/Titchy, and Claw/Mighty Blow paths in tests per SPEC_FULL.md.
var Catalogue = mustLoadCatalogue()

func mustLoadCatalogue() map[string]*Roster {
	entries, err := catalogueFS.ReadDir("data")
	if err != nil {
		panic(err)
	}
	cat := make(map[string]*Roster, len(entries))
	for _, entry := range entries {
		raw, err := catalogueFS.ReadFile("data/" + entry.Name())
		if err != nil {
			panic(err)
		}
		r := &Roster{}
		if err := yaml.Unmarshal(raw, r); err != nil {
			panic(&bbgame.LoadError{Path: entry.Name(), Reason: err.Error()})
		}
		cat[NormaliseName(r.Name)] = r
		cat[NormaliseName(r.Race)] = r
	}
	return cat
}

// Lookup resolves a roster name (or race) against Catalogue using §9's
// name-normalising rule.
func Lookup(name string) (*Roster, bool) {
	r, ok := Catalogue[NormaliseName(name)]
	return r, ok
}

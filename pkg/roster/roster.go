// Package roster parses the static roster catalogue §9 treats as an
// immutable, name-normalising lookup: team name, rerolls, apothecary flag,
// and per-position stat lines/skills loaded from YAML files, plus a bundled
// Catalogue of reference rosters. Load is modeled on the teacher's viper+yaml
// config loading (niceyeti-tabular/tabular/reinforcement.FromYaml) rather
// than a hand-rolled yaml.Unmarshal call, since the pack already shows the
// idiom for loading a single YAML document into a typed config struct; the
// embedded Catalogue (catalogue.go) is decoded with yaml.Unmarshal.
package roster

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/pitch"
)

// PlayerGroup is one line of a roster sheet: a named position, how many of
// it the roster fields, and the stat line/skills every piece of that
// position shares.
type PlayerGroup struct {
	Position string   `mapstructure:"position"`
	Count    int      `mapstructure:"count"`
	Movement int      `mapstructure:"movement"`
	Strength int      `mapstructure:"strength"`
	Agility  int      `mapstructure:"agility"`
	Armour   int      `mapstructure:"armour"`
	Skills   []string `mapstructure:"skills"`
}

// Roster is a parsed team sheet, before expansion into concrete pieces.
type Roster struct {
	Name        string        `mapstructure:"name"`
	Race        string        `mapstructure:"race"`
	Rerolls     int           `mapstructure:"rerolls"`
	Apothecary  bool          `mapstructure:"apothecary"`
	Players     []PlayerGroup `mapstructure:"players"`
}

// Load parses a roster YAML document at path.
func Load(path string) (*Roster, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return nil, &bbgame.LoadError{Path: path, Reason: err.Error()}
	}

	r := &Roster{}
	if err := vp.Unmarshal(r); err != nil {
		return nil, &bbgame.LoadError{Path: path, Reason: err.Error()}
	}
	if len(r.Players) == 0 {
		return nil, &bbgame.LoadError{Path: path, Reason: "roster has no players"}
	}
	return r, nil
}

// NormaliseName implements §9's "lowercase, strip spaces/hyphens/underscores"
// lookup key.
func NormaliseName(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// skillByName resolves a roster sheet's skill name to a bbgame.Skill. It
// accepts the same normalised form as NormaliseName so sheets can spell a
// skill "Sure Hands", "sure-hands", or "SureHands" interchangeably.
func skillByName(name string) (bbgame.Skill, bool) {
	key := NormaliseName(name)
	s, ok := skillNameIndex[key]
	return s, ok
}

// TotalPlayers returns the number of individual pieces this roster expands to.
func (r *Roster) TotalPlayers() int {
	n := 0
	for _, g := range r.Players {
		n += g.Count
	}
	return n
}

// BuildTeam expands a Roster into exactly 11 bbgame.Piece values with stable
// ids startId..startId+10, for the given side. Only the first 11 expanded
// players are used; a roster fielding fewer than 11 is rejected with a
// *bbgame.LoadError.
func BuildTeam(r *Roster, side pitch.Side, startId int) ([]bbgame.Piece, error) {
	pieces := make([]bbgame.Piece, 0, 11)
	id := startId
	for _, g := range r.Players {
		var skills bbgame.Set
		for _, name := range g.Skills {
			sk, ok := skillByName(name)
			if !ok {
				return nil, &bbgame.LoadError{Path: r.Name, Reason: fmt.Sprintf("unknown skill %q", name)}
			}
			skills = skills.With(sk)
		}
		for c := 0; c < g.Count && len(pieces) < 11; c++ {
			pieces = append(pieces, bbgame.Piece{
				Id:    id,
				Side:  side,
				State: bbgame.OffPitch,
				Pos:   pitch.Off(),
				Stats: bbgame.StatLine{
					Movement: g.Movement,
					Strength: g.Strength,
					Agility:  g.Agility,
					Armour:   g.Armour,
				},
				Skills: skills,
			})
			id++
		}
		if len(pieces) >= 11 {
			break
		}
	}
	if len(pieces) < 11 {
		return nil, &bbgame.LoadError{Path: r.Name, Reason: fmt.Sprintf("roster fields only %d players, need 11", len(pieces))}
	}
	return pieces, nil
}

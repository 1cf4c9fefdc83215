package bbgame

import "github.com/tormund/gridiron/pkg/pitch"

// PieceState is one of the lifecycle states a piece occupies. Transitions are
// one-way except Stunned->Prone (own team's turn start) and Prone->Standing
// (the stand-up action).
type PieceState int

const (
	Standing PieceState = iota
	Prone
	Stunned
	KO
	Injured
	Dead
	Ejected
	OffPitch
)

// OnPitch reports whether a piece in this state occupies a pitch square.
func (s PieceState) OnPitch() bool {
	return s == Standing || s == Prone || s == Stunned
}

// CanAct reports whether a piece in this state may be given an action.
func (s PieceState) CanAct() bool { return s == Standing }

// ExertsTacklezone reports whether a piece in this state projects a tacklezone.
func (s PieceState) ExertsTacklezone() bool { return s == Standing }

// StatLine is a piece's four core statistics.
type StatLine struct {
	Movement int
	Strength int
	Agility  int
	Armour   int
}

// Scratchpad holds the per-action bookkeeping that resets at the start of
// each of a piece's own team's turns.
type Scratchpad struct {
	MovementRemaining int
	HasMoved          bool
	HasActed          bool
	UsedBlitz         bool
	ProUsedThisTurn   bool
	LostTacklezones   bool
	GFICount          int
}

// Piece is one of the 22 pieces on the roster, addressed everywhere else by
// its stable Id rather than by pointer or reference.
type Piece struct {
	Id       int
	Side     pitch.Side
	State    PieceState
	Pos      pitch.Pos
	Stats    StatLine
	Skills   Set
	Scratch  Scratchpad
}

// HasSkill is shorthand for p.Skills.Has.
func (p *Piece) HasSkill(s Skill) bool { return p.Skills.Has(s) }

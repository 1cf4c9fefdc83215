// Package bbgame implements the core rules engine described by §2-§4 of the
// specification: geometry-adjacent data model, the shared reroll/injury/ball
// pipelines, the action handlers, the big-guy gate, the pure rules engine,
// and the flow controller. It is deliberately modeled on
// pkg/diplomacy in the teacher repository: a flat, array-backed, trivially
// cloneable GameState mutated only through resolver-style functions, with
// pure helpers kept separate from anything that draws dice.
package bbgame

import "github.com/tormund/gridiron/pkg/pitch"

// Phase is one of the seven game phases.
type Phase int

const (
	PhaseCoinToss Phase = iota
	PhaseSetup
	PhaseKickoff
	PhasePlay
	PhaseTouchdown
	PhaseHalfTime
	PhaseGameOver
)

// Weather is one of the five weather conditions, fixed by the 2d6 table in §6.
type Weather int

const (
	SwelteringHeat Weather = iota
	VerySunny
	Nice
	PouringRain
	Blizzard
)

// NumPieces is the fixed piece count: 11 per side, ids 1..22.
const NumPieces = 22

// GameState is the complete, trivially-cloneable snapshot of a game in
// progress. Pieces are addressed by stable id (1..22) into the Pieces array;
// nothing in the engine holds a pointer to another piece.
type GameState struct {
	Half           int // 1 or 2
	Phase          Phase
	ActiveSide     pitch.Side
	Home           TeamState
	Away           TeamState
	Pieces         [NumPieces + 1]Piece // index 0 unused, ids 1..22
	Ball           Ball
	TurnoverPending bool
	KickingSide    pitch.Side
	WeatherCond    Weather
}

// Team returns the TeamState for the given side.
func (gs *GameState) Team(s pitch.Side) *TeamState {
	if s == pitch.Home {
		return &gs.Home
	}
	return &gs.Away
}

// ActiveTeam returns the TeamState for the currently active side.
func (gs *GameState) ActiveTeam() *TeamState { return gs.Team(gs.ActiveSide) }

// Piece returns a pointer to the piece with the given stable id (1..22), or
// nil if id is out of range.
func (gs *GameState) Piece(id int) *Piece {
	if id < 1 || id > NumPieces {
		return nil
	}
	return &gs.Pieces[id]
}

// PieceAt returns the on-pitch piece occupying pos, or nil if the square is empty.
func (gs *GameState) PieceAt(pos pitch.Pos) *Piece {
	for i := 1; i <= NumPieces; i++ {
		p := &gs.Pieces[i]
		if p.State.OnPitch() && p.Pos.Equal(pos) {
			return p
		}
	}
	return nil
}

// PiecesOf returns the stable ids of every piece belonging to side s.
func (gs *GameState) PiecesOf(s pitch.Side) []int {
	ids := make([]int, 0, 11)
	for i := 1; i <= NumPieces; i++ {
		if gs.Pieces[i].Side == s {
			ids = append(ids, i)
		}
	}
	return ids
}

// Carrier returns the piece currently holding the ball, or nil if it isn't held.
func (gs *GameState) Carrier() *Piece {
	if gs.Ball.Status != BallHeld {
		return nil
	}
	return gs.Piece(gs.Ball.CarrierId)
}

// Clone returns a deep copy of the game state. Since GameState is a flat
// struct of fixed-size arrays and value types (no heap pointers, no slices),
// a plain value copy already duplicates everything transitively — this
// mirrors the teacher's observation in pkg/diplomacy/state.go that Clone
// exists for callers who branch state via value copy, but here the compiler
// does the deep copy for free via assignment. Clone is kept as an explicit,
// named operation (rather than relying on callers writing `dst := *gs`)
// because MCTS code should say what it means.
func (gs *GameState) Clone() *GameState {
	c := *gs
	return &c
}

// NewInitialState returns a game in CoinToss phase with all 22 pieces and
// the ball off the pitch; rosters and setup are applied by the caller (see
// internal/sim for the full kickoff sequence).
func NewInitialState(weather Weather) *GameState {
	gs := &GameState{
		Half:       1,
		Phase:      PhaseCoinToss,
		ActiveSide: pitch.Home,
		WeatherCond: weather,
	}
	gs.Home = TeamState{Side: pitch.Home, TurnNumber: 0}
	gs.Away = TeamState{Side: pitch.Away, TurnNumber: 0}
	for i := 1; i <= NumPieces; i++ {
		gs.Pieces[i].Id = i
		gs.Pieces[i].State = OffPitch
	}
	gs.Ball.Status = BallOffPitch
	return gs
}

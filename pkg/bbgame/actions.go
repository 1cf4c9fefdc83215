package bbgame

import "github.com/tormund/gridiron/pkg/pitch"

// ActionKind enumerates the action types the rules engine can propose and
// a handler can resolve.
type ActionKind int

const (
	ActionEndTurn ActionKind = iota
	ActionMove
	ActionBlock
	ActionMultiBlock
	ActionBlitz
	ActionFoul
	ActionPass
	ActionHailMary
	ActionHandOff
	ActionThrowTeamMate
	ActionBombThrow
	ActionHypnoticGaze
	ActionBallAndChain
)

// Action is a single legal move as enumerated by the rules engine: enough
// information for a handler to resolve it without further lookups beyond
// the game state itself.
type Action struct {
	Kind      ActionKind
	PieceId   int
	TargetId  int       // opposing piece (block/foul/gaze), teammate (hand-off/pass/throw-team-mate)
	TargetId2 int        // second opponent, for ActionMultiBlock only
	Dest      pitch.Pos // move destination, or pass/bomb target square
}

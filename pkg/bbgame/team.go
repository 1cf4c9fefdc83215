package bbgame

import "github.com/tormund/gridiron/pkg/pitch"

// TeamState is the per-side bookkeeping tracked outside of individual pieces.
type TeamState struct {
	Side              pitch.Side
	Score             int
	RerollsRemaining  int
	RerollUsedThisTurn bool
	TurnNumber        int // 0..8
	BlitzUsedThisTurn bool
	PassUsedThisTurn  bool
	FoulUsedThisTurn  bool
	HasApothecary     bool
	ApothecaryUsed    bool
}

// ResetForNewTurn clears the per-turn team flags at the start of this team's
// turn. The per-piece half of the reset, which also clears a gazed piece's
// LostTacklezones flag (see DESIGN.md Open Question 1), is
// resetPiecesForNewTurn in flow.go.
func (t *TeamState) ResetForNewTurn() {
	t.RerollUsedThisTurn = false
	t.BlitzUsedThisTurn = false
	t.PassUsedThisTurn = false
	t.FoulUsedThisTurn = false
}

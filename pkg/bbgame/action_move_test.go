package bbgame

import (
	"testing"

	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

func newCarrierState() *GameState {
	gs := NewInitialState(Nice)
	gs.Phase = PhasePlay
	gs.ActiveSide = pitch.Home

	home := gs.Piece(1)
	home.Side = pitch.Home
	home.State = Standing
	home.Pos = pitch.At(24, 7)
	home.Stats = StatLine{Movement: 6, Strength: 3, Agility: 3, Armour: 8}
	home.Scratch = Scratchpad{MovementRemaining: 6}

	away := gs.Piece(12)
	away.Side = pitch.Away
	away.State = Standing
	away.Pos = pitch.At(5, 5)
	away.Stats = StatLine{Movement: 6, Strength: 3, Agility: 3, Armour: 8}
	away.Scratch = Scratchpad{MovementRemaining: 6}

	gs.Ball = Ball{Status: BallHeld, CarrierId: 1, Pos: home.Pos}
	return gs
}

// Concrete scenario 1: carrier scoring move.
func TestCarrierScoringMove(t *testing.T) {
	gs := newCarrierState()
	d := dice.NewFixed(nil, nil, nil)
	log := NewEventLog()

	Resolve(gs, d, log, Action{Kind: ActionMove, PieceId: 1, Dest: pitch.At(25, 7)})

	if gs.Home.Score != 1 {
		t.Errorf("Home.Score = %d, want 1", gs.Home.Score)
	}
	if gs.Phase != PhaseSetup {
		t.Errorf("Phase after touchdown = %v, want PhaseSetup (reset runs immediately)", gs.Phase)
	}
	if gs.Ball.Status != BallOffPitch {
		t.Errorf("Ball.Status after touchdown reset = %v, want BallOffPitch", gs.Ball.Status)
	}
	found := false
	for _, e := range log.Events() {
		if e.Kind == EventTouchdown {
			found = true
		}
	}
	if !found {
		t.Error("expected a TOUCHDOWN event in the log")
	}
}

func TestMoveStepDecrementsMovementRemaining(t *testing.T) {
	gs := newCarrierState()
	gs.Piece(12).Pos = pitch.At(5, 5) // keep the defender well clear
	d := dice.NewFixed(nil, nil, nil)
	log := NewEventLog()

	if turnover := MoveStep(gs, d, log, 1, pitch.At(23, 7)); turnover {
		t.Fatal("a plain move with no tacklezone or GFI should never turn over")
	}
	if gs.Piece(1).Scratch.MovementRemaining != 5 {
		t.Errorf("MovementRemaining = %d, want 5", gs.Piece(1).Scratch.MovementRemaining)
	}
	if !gs.Piece(1).Pos.Equal(pitch.At(23, 7)) {
		t.Errorf("piece position = %+v, want (23,7)", gs.Piece(1).Pos)
	}
	if !gs.Ball.Pos.Equal(pitch.At(23, 7)) {
		t.Error("carried ball should follow the carrier")
	}
}

func TestMoveStepGFIFailureKnocksDownAndTurnsOver(t *testing.T) {
	gs := newCarrierState()
	gs.Piece(1).Scratch.MovementRemaining = 0
	// d6: 1 (GFI roll, fails vs target 2), 2, 2 (armour roll on the resulting
	// knockdown, well under Armour 8). d8: bounce direction for the dropped ball.
	d := dice.NewFixed([]int{1, 2, 2}, []int{1}, nil)
	log := NewEventLog()

	turnover := MoveStep(gs, d, log, 1, pitch.At(23, 7))
	if !turnover {
		t.Fatal("a failed GFI must turn over")
	}
	if gs.Piece(1).State != Prone {
		t.Errorf("piece state after failed GFI = %v, want Prone", gs.Piece(1).State)
	}
	if !gs.TurnoverPending {
		t.Error("TurnoverPending should be set")
	}
}

func TestMoveStepDodgeFailureKnocksDownAndTurnsOver(t *testing.T) {
	gs := newCarrierState()
	away := gs.Piece(12)
	away.Pos = pitch.At(24, 6) // adjacent to the carrier's square, projecting a tacklezone
	// d6: 1 (dodge roll, fails), 2, 2 (armour roll on the knockdown). d8:
	// bounce direction for the dropped ball.
	d := dice.NewFixed([]int{1, 2, 2}, []int{1}, nil)
	log := NewEventLog()

	turnover := MoveStep(gs, d, log, 1, pitch.At(23, 7))
	if !turnover {
		t.Fatal("a failed dodge must turn over")
	}
	if gs.Piece(1).State != Prone {
		t.Errorf("piece state after failed dodge = %v, want Prone", gs.Piece(1).State)
	}
}

func TestStandUpWithEnoughMovementAlwaysSucceeds(t *testing.T) {
	gs := newCarrierState()
	gs.Piece(1).State = Prone
	gs.Piece(1).Scratch.MovementRemaining = 6
	d := dice.NewFixed(nil, nil, nil)
	log := NewEventLog()

	if !StandUp(gs, d, log, 1) {
		t.Fatal("stand-up with movement_remaining >= 3 never rolls and never fails")
	}
	if gs.Piece(1).State != Standing {
		t.Errorf("state = %v, want Standing", gs.Piece(1).State)
	}
	if gs.Piece(1).Scratch.MovementRemaining != 3 {
		t.Errorf("MovementRemaining after stand-up = %d, want 3", gs.Piece(1).Scratch.MovementRemaining)
	}
}

func TestStandUpLowMovementRequiresRoll(t *testing.T) {
	gs := newCarrierState()
	gs.Piece(1).State = Prone
	gs.Piece(1).Scratch.MovementRemaining = 1
	d := dice.NewFixed([]int{3}, nil, nil) // target 4+, this fails
	log := NewEventLog()

	if StandUp(gs, d, log, 1) {
		t.Fatal("a failed low-movement stand-up roll should abort the stand-up")
	}
	if gs.Piece(1).State != Prone {
		t.Errorf("state after failed stand-up = %v, want still Prone", gs.Piece(1).State)
	}
}

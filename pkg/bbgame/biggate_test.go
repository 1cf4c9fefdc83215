package bbgame

import (
	"testing"

	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

func newGateState() *GameState {
	gs := NewInitialState(Nice)
	gs.Phase = PhasePlay
	p := gs.Piece(1)
	p.Side = pitch.Home
	p.State = Standing
	p.Pos = pitch.At(5, 5)
	p.Stats = StatLine{Movement: 6, Strength: 5, Agility: 2, Armour: 9}
	p.Scratch = Scratchpad{MovementRemaining: 6}
	return gs
}

func TestBigGuyCheckBoneHeadFailsOnLowRoll(t *testing.T) {
	gs := newGateState()
	gs.Piece(1).Skills = gs.Piece(1).Skills.With(SkillBoneHead)
	d := dice.NewFixed([]int{2}, nil, nil)
	log := NewEventLog()

	if BigGuyCheck(gs, d, log, 1, false) {
		t.Error("a roll of 2 should fail the bone-head check")
	}
	if !gs.Piece(1).Scratch.LostTacklezones {
		t.Error("a failed bone-head check should mark LostTacklezones")
	}
}

func TestBigGuyCheckBoneHeadPassesOnHighRoll(t *testing.T) {
	gs := newGateState()
	gs.Piece(1).Skills = gs.Piece(1).Skills.With(SkillBoneHead)
	d := dice.NewFixed([]int{5}, nil, nil)
	log := NewEventLog()

	if !BigGuyCheck(gs, d, log, 1, false) {
		t.Error("a roll of 5 should pass the bone-head check")
	}
}

func TestBigGuyCheckReallyStupidRescuedByFriendlyAdjacent(t *testing.T) {
	gs := newGateState()
	gs.Piece(1).Skills = gs.Piece(1).Skills.With(SkillReallyStupid)

	friend := gs.Piece(2)
	friend.Side = pitch.Home
	friend.State = Standing
	friend.Pos = pitch.At(6, 5) // adjacent to piece 1 at (5,5)

	d := dice.NewFixed([]int{1}, nil, nil)
	log := NewEventLog()
	if !BigGuyCheck(gs, d, log, 1, false) {
		t.Error("a failed really-stupid roll with a helping friendly adjacent should still proceed")
	}
}

func TestBigGuyCheckReallyStupidFailsAlone(t *testing.T) {
	gs := newGateState()
	gs.Piece(1).Skills = gs.Piece(1).Skills.With(SkillReallyStupid)
	d := dice.NewFixed([]int{1}, nil, nil)
	log := NewEventLog()
	if BigGuyCheck(gs, d, log, 1, false) {
		t.Error("a failed really-stupid roll with no helping friendly should not proceed")
	}
}

func TestBigGuyCheckWildAnimalSkippedOnBlockAction(t *testing.T) {
	gs := newGateState()
	gs.Piece(1).Skills = gs.Piece(1).Skills.With(SkillWildAnimal)
	d := dice.NewFixed([]int{1}, nil, nil)
	log := NewEventLog()
	if !BigGuyCheck(gs, d, log, 1, true) {
		t.Error("wild-animal should not gate a block action")
	}
}

func TestBigGuyCheckTakeRootStripsMovementWithoutFailingAction(t *testing.T) {
	gs := newGateState()
	gs.Piece(1).Skills = gs.Piece(1).Skills.With(SkillTakeRoot)
	d := dice.NewFixed([]int{1}, nil, nil)
	log := NewEventLog()
	if !BigGuyCheck(gs, d, log, 1, false) {
		t.Error("take-root never wastes the action outright")
	}
	if gs.Piece(1).Scratch.MovementRemaining != 0 {
		t.Error("a failed take-root roll should zero MovementRemaining")
	}
}

func TestBigGuyCheckBloodlustNeverBlocksAction(t *testing.T) {
	gs := newGateState()
	gs.Piece(1).Skills = gs.Piece(1).Skills.With(SkillBloodlust)
	d := dice.NewFixed([]int{1}, nil, nil)
	log := NewEventLog()
	if !BigGuyCheck(gs, d, log, 1, false) {
		t.Error("bloodlust failure is a no-op per the engine's simplification, never a wasted action")
	}
}

func TestBigGuyCheckNoSkillsAlwaysProceeds(t *testing.T) {
	gs := newGateState()
	d := dice.NewFixed(nil, nil, nil)
	log := NewEventLog()
	if !BigGuyCheck(gs, d, log, 1, false) {
		t.Error("a piece with no big-guy traits should always proceed without drawing dice")
	}
}

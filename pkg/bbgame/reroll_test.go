package bbgame

import (
	"testing"

	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

func newRerollState() (*GameState, *Piece) {
	gs := NewInitialState(Nice)
	p := gs.Piece(1)
	p.Side = pitch.Home
	p.State = Standing
	p.Pos = pitch.At(5, 5)
	return gs, p
}

func TestAttemptRollSucceedsOnFirstRoll(t *testing.T) {
	gs, _ := newRerollState()
	d := dice.NewFixed([]int{5}, nil, nil)
	log := NewEventLog()
	if !AttemptRoll(gs, d, log, 1, 4, NoSkillReroll, false, true) {
		t.Error("a roll of 5 against target 4 should succeed outright")
	}
}

func TestAttemptRollUsesSkillRerollBeforeTeamReroll(t *testing.T) {
	gs, p := newRerollState()
	p.Skills = p.Skills.With(SkillSureHands)
	gs.Team(pitch.Home).RerollsRemaining = 1

	d := dice.NewFixed([]int{1, 6}, nil, nil)
	log := NewEventLog()
	if !AttemptRoll(gs, d, log, 1, 4, SkillSureHands, false, true) {
		t.Error("the skill reroll (second d6=6) should succeed against target 4")
	}
	if gs.Team(pitch.Home).RerollsRemaining != 1 {
		t.Error("a skill reroll must not consume the team's reroll")
	}
}

func TestAttemptRollSkillNegatedFallsThroughToTeamReroll(t *testing.T) {
	gs, p := newRerollState()
	p.Skills = p.Skills.With(SkillSureHands)
	gs.Team(pitch.Home).RerollsRemaining = 1

	d := dice.NewFixed([]int{1, 6}, nil, nil)
	log := NewEventLog()
	if !AttemptRoll(gs, d, log, 1, 4, SkillSureHands, true, true) {
		t.Error("with the skill negated, the team reroll should still be available")
	}
	if gs.Team(pitch.Home).RerollsRemaining != 0 {
		t.Error("the team reroll should be spent once the skill reroll is negated")
	}
}

func TestAttemptRollTeamRerollOnlyOncePerTurn(t *testing.T) {
	gs, _ := newRerollState()
	gs.Team(pitch.Home).RerollsRemaining = 1

	d := dice.NewFixed([]int{1, 6, 1}, nil, nil)
	log := NewEventLog()
	if !AttemptRoll(gs, d, log, 1, 4, NoSkillReroll, false, true) {
		t.Error("first attempt should succeed via the team reroll")
	}
	if ok := AttemptRoll(gs, d, log, 1, 4, NoSkillReroll, false, true); ok {
		t.Error("a second failed roll this turn must not get another team reroll")
	}
}

func TestAttemptRollLonerMayWasteTheReroll(t *testing.T) {
	gs, p := newRerollState()
	p.Skills = p.Skills.With(SkillLoner)
	gs.Team(pitch.Home).RerollsRemaining = 1

	d := dice.NewFixed([]int{1, 2}, nil, nil) // original fail, loner-check fails (2 < 4)
	log := NewEventLog()
	if AttemptRoll(gs, d, log, 1, 4, NoSkillReroll, false, true) {
		t.Error("a failed Loner check should waste the team reroll without retrying")
	}
	if gs.Team(pitch.Home).RerollsRemaining != 0 {
		t.Error("the team reroll should still be consumed even when the Loner check fails")
	}
}

func TestAttemptRollProConfirmAndReroll(t *testing.T) {
	gs, p := newRerollState()
	p.Skills = p.Skills.With(SkillPro)

	d := dice.NewFixed([]int{1, 5, 6}, nil, nil) // fail, pro-confirm 5>=4, pro-reroll 6
	log := NewEventLog()
	if !AttemptRoll(gs, d, log, 1, 4, NoSkillReroll, false, true) {
		t.Error("Pro should confirm and then reroll to succeed")
	}
	if !p.Scratch.ProUsedThisTurn {
		t.Error("Pro should be marked used for the turn after one attempt")
	}
}

func TestAttemptRollClampsOutOfRangeTargets(t *testing.T) {
	gs, _ := newRerollState()
	d := dice.NewFixed([]int{1}, nil, nil)
	log := NewEventLog()
	if AttemptRoll(gs, d, log, 1, 99, NoSkillReroll, false, false) {
		t.Error("target should clamp to 6, so a roll of 1 should fail")
	}
}

package bbgame

import (
	"testing"

	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

func newInjuryState() (*GameState, *Piece) {
	gs := NewInitialState(Nice)
	p := gs.Piece(1)
	p.Side = pitch.Home
	p.State = Prone
	p.Stats = StatLine{Armour: 8}
	return gs, p
}

func TestApplyInjuryArmourNotBroken(t *testing.T) {
	gs, _ := newInjuryState()
	d := dice.NewFixed([]int{1, 1}, nil, nil) // armour total 2, well under 8
	log := NewEventLog()
	if got := ApplyInjury(gs, d, log, 1, InjuryContext{}); got != InjuryNotBroken {
		t.Errorf("ApplyInjury = %v, want InjuryNotBroken", got)
	}
}

func TestApplyInjuryStunnedResult(t *testing.T) {
	gs, _ := newInjuryState()
	// armour roll 6+6=12 > 8 (broken), injury roll 3+3=6 -> Stunned
	d := dice.NewFixed([]int{6, 6, 3, 3}, nil, nil)
	log := NewEventLog()
	if got := ApplyInjury(gs, d, log, 1, InjuryContext{}); got != InjuryStunned {
		t.Errorf("ApplyInjury = %v, want InjuryStunned", got)
	}
	if gs.Piece(1).State != Stunned {
		t.Errorf("piece state = %v, want Stunned", gs.Piece(1).State)
	}
}

func TestApplyInjuryKOResult(t *testing.T) {
	gs, _ := newInjuryState()
	// armour broken, injury roll 4+4=8 -> KO band (8-9)
	d := dice.NewFixed([]int{6, 6, 4, 4}, nil, nil)
	log := NewEventLog()
	if got := ApplyInjury(gs, d, log, 1, InjuryContext{}); got != InjuryKO {
		t.Errorf("ApplyInjury = %v, want InjuryKO", got)
	}
	if gs.Piece(1).State != KO {
		t.Errorf("piece state = %v, want KO", gs.Piece(1).State)
	}
	if pitch.OnPitch(gs.Piece(1).Pos) {
		t.Error("a KO'd piece should be moved off-pitch")
	}
}

func TestApplyInjuryClawLowersArmourBreakThreshold(t *testing.T) {
	gs, _ := newInjuryState()
	gs.Piece(1).Stats.Armour = 12 // would not break on an 8 normally
	d := dice.NewFixed([]int{4, 4, 1, 1}, nil, nil)
	log := NewEventLog()
	if got := ApplyInjury(gs, d, log, 1, InjuryContext{Claw: true}); got == InjuryNotBroken {
		t.Error("Claw should break armour at a total of 8 regardless of the target's armour stat")
	}
}

func TestApplyInjuryCasualtyDemotedByApothecary(t *testing.T) {
	gs, _ := newInjuryState()
	gs.Team(pitch.Home).HasApothecary = true
	// armour broken, injury roll 6+6=12 -> Casualty band, demoted by apothecary
	d := dice.NewFixed([]int{6, 6, 6, 6}, nil, nil)
	log := NewEventLog()
	got := ApplyInjury(gs, d, log, 1, InjuryContext{})
	if got != InjuryStunned {
		t.Errorf("ApplyInjury = %v, want InjuryStunned after apothecary demotion", got)
	}
	if gs.Piece(1).State != Stunned {
		t.Errorf("piece state = %v, want Stunned", gs.Piece(1).State)
	}
	if !gs.Team(pitch.Home).ApothecaryUsed {
		t.Error("the apothecary should be marked used")
	}
}

func TestApplyInjuryCasualtyWithoutApothecary(t *testing.T) {
	gs, _ := newInjuryState()
	d := dice.NewFixed([]int{6, 6, 6, 6}, nil, nil)
	log := NewEventLog()
	got := ApplyInjury(gs, d, log, 1, InjuryContext{})
	if got != InjuryCasualty {
		t.Errorf("ApplyInjury = %v, want InjuryCasualty", got)
	}
	if gs.Piece(1).State != Injured {
		t.Errorf("piece state = %v, want Injured", gs.Piece(1).State)
	}
}

func TestApplyInjuryRegenerationRemovesFromPitchEntirely(t *testing.T) {
	gs, p := newInjuryState()
	p.Skills = p.Skills.With(SkillRegeneration)
	// casualty band, then a successful regeneration roll (4)
	d := dice.NewFixed([]int{6, 6, 6, 6, 4}, nil, nil)
	log := NewEventLog()
	got := ApplyInjury(gs, d, log, 1, InjuryContext{})
	if got != InjuryStunned {
		t.Errorf("ApplyInjury = %v, want InjuryStunned after successful regeneration", got)
	}
	if gs.Piece(1).State != OffPitch {
		t.Errorf("piece state = %v, want OffPitch after regeneration", gs.Piece(1).State)
	}
}

func TestApplyCrowdSurfPromotesStunnedToKO(t *testing.T) {
	gs, _ := newInjuryState()
	// injury roll (with +1 mod) 2+2+1=5 -> Stunned band, promoted to KO
	d := dice.NewFixed([]int{2, 2}, nil, nil)
	log := NewEventLog()
	got := ApplyCrowdSurf(gs, d, log, 1, InjuryContext{})
	if got != InjuryKO {
		t.Errorf("ApplyCrowdSurf = %v, want InjuryKO (crowd surf never leaves a player merely winded)", got)
	}
}

func TestApplyInjuryThickSkullUpgradesKOBandToStunned(t *testing.T) {
	gs, p := newInjuryState()
	p.Skills = p.Skills.With(SkillThickSkull)
	// armour broken, injury roll 8 (KO band), thick-skull roll 4 upgrades to Stunned
	d := dice.NewFixed([]int{6, 6, 4, 4, 4}, nil, nil)
	log := NewEventLog()
	got := ApplyInjury(gs, d, log, 1, InjuryContext{})
	if got != InjuryStunned {
		t.Errorf("ApplyInjury = %v, want InjuryStunned (Thick Skull upgrade)", got)
	}
}

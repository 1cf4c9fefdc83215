package bbgame

import (
	"testing"

	"github.com/tormund/gridiron/pkg/pitch"
)

func TestCountTacklezonesIgnoresLostTacklezoneOpponents(t *testing.T) {
	gs := NewInitialState(Nice)
	opp := gs.Piece(12)
	opp.Side = pitch.Away
	opp.State = Standing
	opp.Pos = pitch.At(6, 5)

	if got := CountTacklezones(gs, pitch.At(5, 5), pitch.Home, 0); got != 1 {
		t.Fatalf("CountTacklezones = %d, want 1", got)
	}

	opp.Scratch.LostTacklezones = true
	if got := CountTacklezones(gs, pitch.At(5, 5), pitch.Home, 0); got != 0 {
		t.Errorf("CountTacklezones with LostTacklezones set = %d, want 0", got)
	}
}

func TestCountTacklezonesExcludesId(t *testing.T) {
	gs := NewInitialState(Nice)
	opp := gs.Piece(12)
	opp.Side = pitch.Away
	opp.State = Standing
	opp.Pos = pitch.At(6, 5)

	if got := CountTacklezones(gs, pitch.At(5, 5), pitch.Home, 12); got != 0 {
		t.Errorf("CountTacklezones with excludeId=12 = %d, want 0", got)
	}
}

func TestCountAssistsGuardAlwaysCounts(t *testing.T) {
	gs := NewInitialState(Nice)
	assister := gs.Piece(2)
	assister.Side = pitch.Home
	assister.State = Standing
	assister.Pos = pitch.At(6, 5)
	assister.Skills = assister.Skills.With(SkillGuard)

	marker := gs.Piece(12)
	marker.Side = pitch.Away
	marker.State = Standing
	marker.Pos = pitch.At(7, 5) // adjacent to the assister, marking it

	got := CountAssists(gs, pitch.At(5, 5), pitch.Home, 1, 0, 0)
	if got != 1 {
		t.Errorf("CountAssists = %d, want 1 (Guard assists even while marked)", got)
	}
}

func TestCountAssistsExcludesMarkedNonGuard(t *testing.T) {
	gs := NewInitialState(Nice)
	assister := gs.Piece(2)
	assister.Side = pitch.Home
	assister.State = Standing
	assister.Pos = pitch.At(6, 5)

	marker := gs.Piece(12)
	marker.Side = pitch.Away
	marker.State = Standing
	marker.Pos = pitch.At(7, 5)

	got := CountAssists(gs, pitch.At(5, 5), pitch.Home, 1, 0, 0)
	if got != 0 {
		t.Errorf("CountAssists = %d, want 0 (assister marked, no Guard)", got)
	}
}

func TestBlockDiceTable(t *testing.T) {
	tests := []struct {
		att, def   int
		wantCount  int
		wantAttack bool
	}{
		{6, 2, 3, true},
		{4, 3, 2, true},
		{3, 3, 1, true},
		{2, 6, 3, false},
		{2, 3, 2, false},
	}
	for _, tt := range tests {
		count, attackerChooses := BlockDice(tt.att, tt.def)
		if count != tt.wantCount || attackerChooses != tt.wantAttack {
			t.Errorf("BlockDice(%d,%d) = (%d,%v), want (%d,%v)", tt.att, tt.def, count, attackerChooses, tt.wantCount, tt.wantAttack)
		}
	}
}

func TestPushbackSquaresStraightAndDiagonal(t *testing.T) {
	squares := PushbackSquares(pitch.At(5, 5), pitch.At(6, 5))
	if len(squares) != 3 {
		t.Fatalf("PushbackSquares returned %d squares, want 3", len(squares))
	}
	if squares[0] != pitch.At(7, 5) {
		t.Errorf("straight pushback square = %+v, want (7,5)", squares[0])
	}

	diag := PushbackSquares(pitch.At(5, 5), pitch.At(6, 6))
	if diag[0] != pitch.At(7, 7) {
		t.Errorf("diagonal straight pushback square = %+v, want (7,7)", diag[0])
	}
}

func TestDodgeTargetClampedAndSkillAdjusted(t *testing.T) {
	gs := NewInitialState(Nice)
	p := gs.Piece(1)
	p.Side = pitch.Home
	p.State = Standing
	p.Pos = pitch.At(5, 5)
	p.Stats = StatLine{Agility: 3}

	base := DodgeTarget(gs, 1, pitch.At(6, 5), false, 0, false)
	if base != 4 {
		t.Errorf("DodgeTarget with agility 3, no tacklezones = %d, want 4", base)
	}

	p.Skills = p.Skills.With(SkillDodge)
	withDodge := DodgeTarget(gs, 1, pitch.At(6, 5), false, 0, false)
	if withDodge != base-1 {
		t.Errorf("Dodge skill should shave 1 off the target, got %d want %d", withDodge, base-1)
	}

	// sourceHasTackle negates the Dodge discount.
	withTackle := DodgeTarget(gs, 1, pitch.At(6, 5), true, 0, false)
	if withTackle != base {
		t.Errorf("Tackle should negate the Dodge discount, got %d want %d", withTackle, base)
	}

	extreme := DodgeTarget(gs, 1, pitch.At(6, 5), true, 0, false)
	if extreme < 2 || extreme > 6 {
		t.Errorf("DodgeTarget must clamp to [2,6], got %d", extreme)
	}
}

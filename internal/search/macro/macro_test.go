package macro

import (
	"testing"

	"github.com/tormund/gridiron/internal/valuefn"
	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

func newPlayState() *bbgame.GameState {
	gs := bbgame.NewInitialState(bbgame.Nice)
	gs.Phase = bbgame.PhasePlay
	gs.ActiveSide = pitch.Home

	home := gs.Piece(1)
	home.Side = pitch.Home
	home.State = bbgame.Standing
	home.Pos = pitch.At(5, 5)
	home.Stats = bbgame.StatLine{Movement: 6, Strength: 3, Agility: 3, Armour: 8}
	home.Scratch = bbgame.Scratchpad{MovementRemaining: 6}

	away := gs.Piece(12)
	away.Side = pitch.Away
	away.State = bbgame.Standing
	away.Pos = pitch.At(20, 5)
	away.Stats = bbgame.StatLine{Movement: 6, Strength: 3, Agility: 3, Armour: 8}
	away.Scratch = bbgame.Scratchpad{MovementRemaining: 6}

	return gs
}

func TestAvailableAlwaysIncludesEndTurn(t *testing.T) {
	gs := newPlayState()
	kinds := Available(gs)
	found := false
	for _, k := range kinds {
		if k == EndTurn {
			found = true
		}
	}
	if !found {
		t.Error("Available must always include EndTurn")
	}
}

func TestAvailableOffersAdvanceForUnactedPiece(t *testing.T) {
	gs := newPlayState()
	kinds := Available(gs)
	found := false
	for _, k := range kinds {
		if k == Advance {
			found = true
		}
	}
	if !found {
		t.Error("Available should offer Advance when the active side has an unacted standing piece")
	}
}

func TestAvailableOffersScoreOnlyWithCarrier(t *testing.T) {
	gs := newPlayState()
	kinds := Available(gs)
	for _, k := range kinds {
		if k == Score {
			t.Fatal("Available should not offer Score without a ball carrier on the active side")
		}
	}

	gs.Ball = bbgame.Ball{Status: bbgame.BallHeld, CarrierId: 1}
	kinds = Available(gs)
	found := false
	for _, k := range kinds {
		if k == Score {
			found = true
		}
	}
	if !found {
		t.Error("Available should offer Score once the active side holds the ball")
	}
}

func TestGreedyExpandEndTurnResolvesImmediately(t *testing.T) {
	gs := newPlayState()
	d := dice.NewSeeded(1)
	log := bbgame.NewEventLog()
	taken := GreedyExpand(gs, d, log, EndTurn)
	if len(taken) != 1 || taken[0].Kind != bbgame.ActionEndTurn {
		t.Fatalf("GreedyExpand(EndTurn) = %+v, want a single ActionEndTurn", taken)
	}
}

func TestGreedyExpandAdvanceMovesThePieceForward(t *testing.T) {
	gs := newPlayState()
	d := dice.NewSeeded(2)
	log := bbgame.NewEventLog()
	before := gs.Piece(1).Pos

	taken := GreedyExpand(gs, d, log, Advance)
	if len(taken) == 0 {
		t.Fatal("GreedyExpand(Advance) took no actions")
	}
	after := gs.Piece(1).Pos
	if after == before && !gs.Piece(1).Scratch.HasActed {
		t.Error("expected the piece to have moved or acted under the Advance macro")
	}
}

func TestGreedyExpandStopsAtMaxSteps(t *testing.T) {
	gs := newPlayState()
	d := dice.NewSeeded(3)
	log := bbgame.NewEventLog()
	taken := GreedyExpand(gs, d, log, Reposition)
	if len(taken) > maxStepsPerMacro {
		t.Errorf("GreedyExpand took %d actions, want at most %d", len(taken), maxStepsPerMacro)
	}
}

func TestPriorsSumToOne(t *testing.T) {
	gs := newPlayState()
	kinds := Available(gs)
	p := priors(gs, kinds)
	if len(p) != len(kinds) {
		t.Fatalf("priors returned %d entries for %d kinds", len(p), len(kinds))
	}
	var sum float32
	for _, v := range p {
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("priors should sum to ~1, got %v", sum)
	}
}

func TestKindStringKnownAndUnknown(t *testing.T) {
	if Score.String() != "SCORE" {
		t.Errorf("Score.String() = %q, want SCORE", Score.String())
	}
	if Kind(999).String() != "UNKNOWN" {
		t.Errorf("out-of-range Kind.String() = %q, want UNKNOWN", Kind(999).String())
	}
}

func TestSearchReturnsAnAvailableKind(t *testing.T) {
	gs := newPlayState()
	cfg := DefaultConfig()
	cfg.Iterations = 16
	tree := New(valuefn.Constant(0), cfg, 5)

	chosen, kinds, visits := tree.Search(gs)
	if len(kinds) != len(visits) {
		t.Fatalf("len(kinds)=%d len(visits)=%d, want equal", len(kinds), len(visits))
	}
	found := false
	for _, k := range kinds {
		if k == chosen {
			found = true
		}
	}
	if !found {
		t.Errorf("chosen kind %v not among the root's kind vocabulary", chosen)
	}
}

func TestSearchDoesNotMutateRoot(t *testing.T) {
	gs := newPlayState()
	before := gs.Piece(1).Pos
	cfg := DefaultConfig()
	cfg.Iterations = 16
	New(valuefn.Constant(0), cfg, 6).Search(gs)
	if gs.Piece(1).Pos != before {
		t.Error("Search must traverse clones, leaving the root state untouched")
	}
}

func TestSearchOutsidePlayPhaseReturnsEndTurn(t *testing.T) {
	gs := newPlayState()
	gs.Phase = bbgame.PhaseSetup
	cfg := DefaultConfig()
	cfg.Iterations = 16
	chosen, kinds, visits := New(valuefn.Constant(0), cfg, 7).Search(gs)
	if chosen != EndTurn {
		t.Errorf("Search outside Play phase should fall back to EndTurn, got %v", chosen)
	}
	if len(kinds) != 1 || len(visits) != 1 {
		t.Errorf("Search outside Play phase should return a singleton vocabulary, got kinds=%v visits=%v", kinds, visits)
	}
}

package features

import (
	"testing"

	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/pitch"
)

func TestEncodeActionFixedLength(t *testing.T) {
	gs := newTestState()
	f := EncodeAction(gs, bbgame.Action{Kind: bbgame.ActionEndTurn})
	if len(f) != NumActionFeatures {
		t.Fatalf("EncodeAction returned %d features, want %d", len(f), NumActionFeatures)
	}
}

func TestEncodeActionEndTurnIsZeroedExceptType(t *testing.T) {
	gs := newTestState()
	f := EncodeAction(gs, bbgame.Action{Kind: bbgame.ActionEndTurn})
	for i, v := range f {
		if i == ActFeatTypeEndTurn {
			if v != 1 {
				t.Errorf("ActFeatTypeEndTurn = %v, want 1", v)
			}
			continue
		}
		if v != 0 {
			t.Errorf("feature %d = %v, want 0 for an end-turn action", i, v)
		}
	}
}

func TestEncodeActionMoveTypeBucket(t *testing.T) {
	gs := newTestState()
	a := bbgame.Action{Kind: bbgame.ActionMove, PieceId: 1, Dest: pitch.At(11, 5)}
	f := EncodeAction(gs, a)
	if f[ActFeatTypeMove] != 1 {
		t.Error("ActFeatTypeMove should be set for a move action")
	}
	if f[ActFeatTypeEndTurn] != 0 {
		t.Error("only one type bucket should be set")
	}
}

func TestEncodeActionScoringMoveFlagsCarrierReachingEndzone(t *testing.T) {
	gs := newTestState()
	gs.Ball = bbgame.Ball{Status: bbgame.BallHeld, CarrierId: 1}
	gs.Piece(1).Pos = pitch.At(1, 5)
	gs.Piece(1).Scratch.MovementRemaining = 6

	dest := pitch.At(pitch.AwayEndzoneX, 5) // Home's carrier scores in Away's endzone
	a := bbgame.Action{Kind: bbgame.ActionMove, PieceId: 1, Dest: dest}
	f := EncodeAction(gs, a)

	if f[ActFeatIsBallCarrier] != 1 {
		t.Error("ActFeatIsBallCarrier should be 1 when the mover holds the ball")
	}
	if f[ActFeatIsScoringMove] != 1 {
		t.Error("ActFeatIsScoringMove should be 1 when the destination is the opponent's endzone")
	}
}

func TestEncodeActionGFIRequiredWhenDistanceExceedsMovement(t *testing.T) {
	gs := newTestState()
	p := gs.Piece(1)
	p.Pos = pitch.At(10, 5)
	p.Scratch.MovementRemaining = 0

	a := bbgame.Action{Kind: bbgame.ActionMove, PieceId: 1, Dest: pitch.At(11, 5)}
	f := EncodeAction(gs, a)
	if f[ActFeatGFIRequired] != 1 {
		t.Error("ActFeatGFIRequired should be set when the move distance exceeds movement remaining")
	}
}

func TestEncodeActionBlockTargetProne(t *testing.T) {
	gs := newTestState()
	gs.Piece(12).State = bbgame.Prone
	gs.Piece(12).Pos = gs.Piece(1).Pos // irrelevant to adjacency here, just needs a Pos
	a := bbgame.Action{Kind: bbgame.ActionBlock, PieceId: 1, TargetId: 12}
	f := EncodeAction(gs, a)
	if f[ActFeatTypeBlock] != 1 {
		t.Error("ActFeatTypeBlock should be set for a block action")
	}
	if f[ActFeatTargetIsProne] != 1 {
		t.Error("ActFeatTargetIsProne should be 1 when the target is Prone")
	}
}

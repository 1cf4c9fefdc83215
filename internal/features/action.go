package features

import "github.com/tormund/gridiron/pkg/bbgame"
import "github.com/tormund/gridiron/pkg/pitch"

// NumActionFeatures is the fixed size of the action feature vector (§6).
const NumActionFeatures = 15

// Action feature offsets: a six-wide one-hot action-type bucket followed by
// nine normalised scalars.
const (
	ActFeatTypeEndTurn = 0
	ActFeatTypeMove    = 1
	ActFeatTypeBlock   = 2
	ActFeatTypeBlitz   = 3
	ActFeatTypePass    = 4 // covers Pass, HailMary, and HandOff
	ActFeatTypeOther   = 5

	ActFeatStrength       = 6 // / 6
	ActFeatAgility        = 7 // / 6
	ActFeatIsBallCarrier  = 8
	ActFeatIsScoringMove  = 9
	ActFeatDistToEndzone  = 10 // / 26
	ActFeatBlockDiceSigned = 11 // (+count if attacker chooses, -count otherwise) / 3
	ActFeatMovesBallForward = 12
	ActFeatGFIRequired     = 13
	ActFeatTargetIsProne   = 14
)

// EncodeAction computes the NumActionFeatures-length vector for a single
// legal action in the context of gs.
func EncodeAction(gs *bbgame.GameState, a bbgame.Action) []float32 {
	f := make([]float32, NumActionFeatures)
	typeBucket := ActFeatTypeOther
	switch a.Kind {
	case bbgame.ActionEndTurn:
		typeBucket = ActFeatTypeEndTurn
	case bbgame.ActionMove:
		typeBucket = ActFeatTypeMove
	case bbgame.ActionBlock, bbgame.ActionMultiBlock:
		typeBucket = ActFeatTypeBlock
	case bbgame.ActionBlitz:
		typeBucket = ActFeatTypeBlitz
	case bbgame.ActionPass, bbgame.ActionHailMary, bbgame.ActionHandOff:
		typeBucket = ActFeatTypePass
	}
	f[typeBucket] = 1

	if a.Kind == bbgame.ActionEndTurn {
		return f
	}

	p := gs.Piece(a.PieceId)
	f[ActFeatStrength] = float32(p.Stats.Strength) / 6
	f[ActFeatAgility] = float32(p.Stats.Agility) / 6

	isCarrier := gs.Ball.Status == bbgame.BallHeld && gs.Ball.CarrierId == a.PieceId
	if isCarrier {
		f[ActFeatIsBallCarrier] = 1
	}

	switch a.Kind {
	case bbgame.ActionMove:
		dist := pitch.Distance(p.Pos, a.Dest)
		if dist > p.Scratch.MovementRemaining {
			f[ActFeatGFIRequired] = 1
		}
		if isCarrier {
			f[ActFeatDistToEndzone] = float32(pitch.Distance(a.Dest, pitch.At(pitch.EndzoneX(p.Side.Opponent()), a.Dest.Y))) / 26
			if pitch.InEndzone(a.Dest, p.Side.Opponent()) {
				f[ActFeatIsScoringMove] = 1
			}
			if pitch.Distance(a.Dest, pitch.At(pitch.EndzoneX(p.Side.Opponent()), a.Dest.Y)) <
				pitch.Distance(p.Pos, pitch.At(pitch.EndzoneX(p.Side.Opponent()), p.Pos.Y)) {
				f[ActFeatMovesBallForward] = 1
			}
		}
	case bbgame.ActionBlock, bbgame.ActionBlitz, bbgame.ActionMultiBlock:
		target := gs.Piece(a.TargetId)
		if target != nil {
			assists := bbgame.CountAssists(gs, target.Pos, p.Side, a.PieceId, a.TargetId, a.TargetId)
			oppAssists := bbgame.CountAssists(gs, p.Pos, target.Side, a.TargetId, a.PieceId, a.PieceId)
			attST := p.Stats.Strength + assists
			defST := target.Stats.Strength + oppAssists
			count, attackerChooses := bbgame.BlockDice(attST, defST)
			signed := float32(count) / 3
			if !attackerChooses {
				signed = -signed
			}
			f[ActFeatBlockDiceSigned] = signed
			if target.State == bbgame.Prone || target.State == bbgame.Stunned {
				f[ActFeatTargetIsProne] = 1
			}
		}
	case bbgame.ActionPass, bbgame.ActionHailMary, bbgame.ActionHandOff:
		target := gs.Piece(a.TargetId)
		if target != nil && isCarrier {
			f[ActFeatDistToEndzone] = float32(pitch.Distance(target.Pos, pitch.At(pitch.EndzoneX(p.Side.Opponent()), target.Pos.Y))) / 26
		}
	}

	return f
}

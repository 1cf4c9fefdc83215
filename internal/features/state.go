// Package features implements the fixed-order state/action feature vectors
// §6 fixes as the value function's and prior policy's input contract: size
// NumStateFeatures (70) and NumActionFeatures (15) respectively, normalised
// scalars in a stable order so a learned weight file stays valid across
// runs. Modeled on the teacher's internal/bot/neural/constants.go +
// encoding.go split between named offset constants and a pure Encode
// function over a game state.
package features

import "github.com/tormund/gridiron/pkg/bbgame"
import "github.com/tormund/gridiron/pkg/pitch"

// NumStateFeatures is the fixed size of the state feature vector (§6).
const NumStateFeatures = 70

// Feature offsets into the state vector. Each block is ten features; the
// final block ends with isolation_count, matching §6's "…, isolation_count"
// naming of the last entry.
const (
	FeatScoreDiff      = 0 // (my score - opp score) / 16
	FeatMyScore        = 1
	FeatOppScore       = 2
	FeatTurnProgress   = 3 // active team's turn number / 8
	FeatHalf           = 4 // 0 for half 1, 1 for half 2
	FeatWeatherStart   = 5 // [5:10) one-hot over the five weather conditions

	FeatBallHeldByMe     = 10
	FeatBallHeldByOpp    = 11
	FeatBallOnGround     = 12
	FeatBallOffPitch     = 13
	FeatCarrierDistMy    = 14 // carrier's distance to my own endzone (where opp scores) / 26
	FeatCarrierDistOpp   = 15 // carrier's distance to opp's endzone (where I score) / 26
	FeatCarrierIsMine    = 16
	FeatCarrierIsOpp     = 17
	FeatCarrierAgility   = 18 // / 6
	FeatCarrierMovement  = 19 // movement remaining / 10

	FeatMyStanding  = 20 // / 11
	FeatMyProne     = 21
	FeatMyDown      = 22 // KO/injured/dead/ejected / 11
	FeatOppStanding = 23
	FeatOppProne    = 24
	FeatOppDown     = 25
	FeatActiveIsMe  = 26
	FeatMyBlitzUsed = 27
	FeatMyFoulUsed  = 28
	FeatMyPassUsed  = 29

	FeatMyRerolls      = 30 // / 8
	FeatOppRerolls     = 31
	FeatMyRerollUsed   = 32
	FeatOppRerollUsed  = 33
	FeatMyHasApo       = 34
	FeatOppHasApo      = 35
	FeatMyApoUsed      = 36
	FeatOppApoUsed     = 37
	FeatAvgMyDistBall  = 38 // / 26
	FeatAvgOppDistBall = 39

	FeatMyTZOnCarrier    = 40 // / 8 — enemy tacklezones pressing the carrier's square
	FeatOppTZOnCarrier   = 41
	FeatMyAdjCarrier     = 42 // / 8 — own pieces adjacent to the carrier (assist/cage potential)
	FeatOppAdjCarrier    = 43
	FeatMinOppToCarrier  = 44 // / 26 — nearest enemy Standing piece to the carrier
	FeatMinMyToCarrier   = 45
	FeatMyBlockSkillFrac = 46 // fraction of my on-pitch pieces with Block
	FeatOppBlockSkillFrac = 47
	FeatMyBigGuyFrac      = 48 // fraction of my on-pitch pieces gated by §4.H
	FeatOppBigGuyFrac     = 49

	FeatMyGuardFrac      = 50
	FeatOppGuardFrac     = 51
	FeatMyDodgeFrac      = 52
	FeatOppDodgeFrac     = 53
	FeatMyMightyBlowFrac = 54
	FeatOppMightyBlowFrac = 55
	FeatMyAvgMovement    = 56 // / 10
	FeatOppAvgMovement   = 57
	FeatMyAvgStrength    = 58 // / 6
	FeatOppAvgStrength   = 59

	FeatMyFurthestAdvance  = 60 // my piece closest to opp endzone, distance / 26 (inverted: 1 - d/26)
	FeatOppFurthestAdvance = 61
	FeatMyWideZoneCount    = 62 // / 11
	FeatOppWideZoneCount   = 63
	FeatMyOwnHalfCount     = 64 // / 11
	FeatOppOwnHalfCount    = 65
	FeatMyDownfieldBall    = 66 // 1 if ball is in my own half
	FeatOppDownfieldBall   = 67
	FeatCageIntegrity      = 68 // my standing pieces within Chebyshev 1 of the carrier / 4, 0 if not my carrier
	FeatIsolationCount     = 69 // fraction of my on-pitch pieces with no friendly Standing piece adjacent
)

// Encode computes the NumStateFeatures-length state vector for gs from the
// perspective of the currently active side (mySide). MCTS evaluates both
// sides from the acting side's perspective, flipping sign in backpropagation
// rather than re-encoding, so Encode always means "features for the side to
// move."
func Encode(gs *bbgame.GameState) []float32 {
	f := make([]float32, NumStateFeatures)
	my, opp := gs.ActiveSide, gs.ActiveSide.Opponent()
	myTeam, oppTeam := gs.Team(my), gs.Team(opp)

	f[FeatScoreDiff] = float32(myTeam.Score-oppTeam.Score) / 16
	f[FeatMyScore] = float32(myTeam.Score) / 16
	f[FeatOppScore] = float32(oppTeam.Score) / 16
	f[FeatTurnProgress] = float32(myTeam.TurnNumber) / 8
	if gs.Half == 2 {
		f[FeatHalf] = 1
	}
	if int(gs.WeatherCond) >= 0 && int(gs.WeatherCond) < 5 {
		f[FeatWeatherStart+int(gs.WeatherCond)] = 1
	}

	encodeBallFeatures(gs, my, f)
	encodePieceCountFeatures(gs, my, opp, f)
	encodeTeamFeatures(myTeam, oppTeam, f)
	encodeSpatialFeatures(gs, my, opp, f)
	encodeSkillFeatures(gs, my, opp, f)
	encodePositionalFeatures(gs, my, opp, f)

	return f
}

func encodeBallFeatures(gs *bbgame.GameState, my pitch.Side, f []float32) {
	switch gs.Ball.Status {
	case bbgame.BallHeld:
		carrier := gs.Piece(gs.Ball.CarrierId)
		if carrier.Side == my {
			f[FeatBallHeldByMe] = 1
			f[FeatCarrierIsMine] = 1
		} else {
			f[FeatBallHeldByOpp] = 1
			f[FeatCarrierIsOpp] = 1
		}
		f[FeatCarrierDistMy] = float32(pitch.Distance(carrier.Pos, pitch.At(pitch.EndzoneX(my), carrier.Pos.Y))) / 26
		f[FeatCarrierDistOpp] = float32(pitch.Distance(carrier.Pos, pitch.At(pitch.EndzoneX(my.Opponent()), carrier.Pos.Y))) / 26
		f[FeatCarrierAgility] = float32(carrier.Stats.Agility) / 6
		f[FeatCarrierMovement] = float32(carrier.Scratch.MovementRemaining) / 10
	case bbgame.BallOnGround:
		// leave carrier-distance features at zero; no carrier exists.
	case bbgame.BallOffPitch:
	}
}

func encodePieceCountFeatures(gs *bbgame.GameState, my, opp pitch.Side, f []float32) {
	myStanding, myProne, myDown := 0, 0, 0
	oppStanding, oppProne, oppDown := 0, 0, 0
	for i := 1; i <= bbgame.NumPieces; i++ {
		p := &gs.Pieces[i]
		var standing, prone, down *int
		if p.Side == my {
			standing, prone, down = &myStanding, &myProne, &myDown
		} else {
			standing, prone, down = &oppStanding, &oppProne, &oppDown
		}
		switch p.State {
		case bbgame.Standing:
			*standing++
		case bbgame.Prone, bbgame.Stunned:
			*prone++
		case bbgame.KO, bbgame.Injured, bbgame.Dead, bbgame.Ejected:
			*down++
		}
	}
	f[FeatMyStanding] = float32(myStanding) / 11
	f[FeatMyProne] = float32(myProne) / 11
	f[FeatMyDown] = float32(myDown) / 11
	f[FeatOppStanding] = float32(oppStanding) / 11
	f[FeatOppProne] = float32(oppProne) / 11
	f[FeatOppDown] = float32(oppDown) / 11
	if gs.ActiveSide == my {
		f[FeatActiveIsMe] = 1
	}
	myTeam := gs.Team(my)
	if myTeam.BlitzUsedThisTurn {
		f[FeatMyBlitzUsed] = 1
	}
	if myTeam.FoulUsedThisTurn {
		f[FeatMyFoulUsed] = 1
	}
	if myTeam.PassUsedThisTurn {
		f[FeatMyPassUsed] = 1
	}
}

func encodeTeamFeatures(myTeam, oppTeam *bbgame.TeamState, f []float32) {
	f[FeatMyRerolls] = float32(myTeam.RerollsRemaining) / 8
	f[FeatOppRerolls] = float32(oppTeam.RerollsRemaining) / 8
	if myTeam.RerollUsedThisTurn {
		f[FeatMyRerollUsed] = 1
	}
	if oppTeam.RerollUsedThisTurn {
		f[FeatOppRerollUsed] = 1
	}
	if myTeam.HasApothecary {
		f[FeatMyHasApo] = 1
	}
	if oppTeam.HasApothecary {
		f[FeatOppHasApo] = 1
	}
	if myTeam.ApothecaryUsed {
		f[FeatMyApoUsed] = 1
	}
	if oppTeam.ApothecaryUsed {
		f[FeatOppApoUsed] = 1
	}
}

func encodeSpatialFeatures(gs *bbgame.GameState, my, opp pitch.Side, f []float32) {
	ballPos, haveBall := ballReferencePos(gs)
	if !haveBall {
		return
	}

	var mySum, oppSum float32
	var myCount, oppCount int
	minOppToCarrier, minMyToCarrier := 999, 999
	myAdj, oppAdj := 0, 0

	for i := 1; i <= bbgame.NumPieces; i++ {
		p := &gs.Pieces[i]
		if !p.State.OnPitch() {
			continue
		}
		d := pitch.Distance(p.Pos, ballPos)
		if p.Side == my {
			mySum += float32(d)
			myCount++
			if p.State == bbgame.Standing && pitch.IsAdjacent(p.Pos, ballPos) {
				myAdj++
			}
			if p.State == bbgame.Standing && d < minMyToCarrier {
				minMyToCarrier = d
			}
		} else {
			oppSum += float32(d)
			oppCount++
			if p.State == bbgame.Standing && pitch.IsAdjacent(p.Pos, ballPos) {
				oppAdj++
			}
			if p.State == bbgame.Standing && d < minOppToCarrier {
				minOppToCarrier = d
			}
		}
	}
	if myCount > 0 {
		f[FeatAvgMyDistBall] = (mySum / float32(myCount)) / 26
	}
	if oppCount > 0 {
		f[FeatAvgOppDistBall] = (oppSum / float32(oppCount)) / 26
	}
	f[FeatMyTZOnCarrier] = float32(bbgame.CountTacklezones(gs, ballPos, my, 0)) / 8
	f[FeatOppTZOnCarrier] = float32(bbgame.CountTacklezones(gs, ballPos, opp, 0)) / 8
	f[FeatMyAdjCarrier] = float32(myAdj) / 8
	f[FeatOppAdjCarrier] = float32(oppAdj) / 8
	if minOppToCarrier < 999 {
		f[FeatMinOppToCarrier] = float32(minOppToCarrier) / 26
	}
	if minMyToCarrier < 999 {
		f[FeatMinMyToCarrier] = float32(minMyToCarrier) / 26
	}

	if carrier := gs.Carrier(); carrier != nil && carrier.Side == my {
		cage := 0
		for i := 1; i <= bbgame.NumPieces; i++ {
			p := &gs.Pieces[i]
			if p.Id == carrier.Id || p.Side != my || p.State != bbgame.Standing {
				continue
			}
			if pitch.Distance(p.Pos, carrier.Pos) <= 1 {
				cage++
			}
		}
		if cage > 4 {
			cage = 4
		}
		f[FeatCageIntegrity] = float32(cage) / 4
	}
}

// ballReferencePos returns the ball's current on-pitch square, if any, as
// the reference point for distance features.
func ballReferencePos(gs *bbgame.GameState) (pitch.Pos, bool) {
	switch gs.Ball.Status {
	case bbgame.BallHeld:
		return gs.Piece(gs.Ball.CarrierId).Pos, true
	case bbgame.BallOnGround:
		return gs.Ball.Pos, true
	default:
		return pitch.Pos{}, false
	}
}

func encodeSkillFeatures(gs *bbgame.GameState, my, opp pitch.Side, f []float32) {
	var myOn, oppOn int
	var myBlock, oppBlock, myGuard, oppGuard, myDodge, oppDodge, myMB, oppMB, myBig, oppBig int
	var myMoveSum, oppMoveSum, myStrSum, oppStrSum int

	for i := 1; i <= bbgame.NumPieces; i++ {
		p := &gs.Pieces[i]
		if !p.State.OnPitch() {
			continue
		}
		isBig := isBigGuySkill(p)
		if p.Side == my {
			myOn++
			myMoveSum += p.Stats.Movement
			myStrSum += p.Stats.Strength
			if p.HasSkill(bbgame.SkillBlock) {
				myBlock++
			}
			if p.HasSkill(bbgame.SkillGuard) {
				myGuard++
			}
			if p.HasSkill(bbgame.SkillDodge) {
				myDodge++
			}
			if p.HasSkill(bbgame.SkillMightyBlow) {
				myMB++
			}
			if isBig {
				myBig++
			}
		} else {
			oppOn++
			oppMoveSum += p.Stats.Movement
			oppStrSum += p.Stats.Strength
			if p.HasSkill(bbgame.SkillBlock) {
				oppBlock++
			}
			if p.HasSkill(bbgame.SkillGuard) {
				oppGuard++
			}
			if p.HasSkill(bbgame.SkillDodge) {
				oppDodge++
			}
			if p.HasSkill(bbgame.SkillMightyBlow) {
				oppMB++
			}
			if isBig {
				oppBig++
			}
		}
	}

	if myOn > 0 {
		f[FeatMyBlockSkillFrac] = float32(myBlock) / float32(myOn)
		f[FeatMyBigGuyFrac] = float32(myBig) / float32(myOn)
		f[FeatMyGuardFrac] = float32(myGuard) / float32(myOn)
		f[FeatMyDodgeFrac] = float32(myDodge) / float32(myOn)
		f[FeatMyMightyBlowFrac] = float32(myMB) / float32(myOn)
		f[FeatMyAvgMovement] = float32(myMoveSum) / float32(myOn) / 10
		f[FeatMyAvgStrength] = float32(myStrSum) / float32(myOn) / 6
	}
	if oppOn > 0 {
		f[FeatOppBlockSkillFrac] = float32(oppBlock) / float32(oppOn)
		f[FeatOppBigGuyFrac] = float32(oppBig) / float32(oppOn)
		f[FeatOppGuardFrac] = float32(oppGuard) / float32(oppOn)
		f[FeatOppDodgeFrac] = float32(oppDodge) / float32(oppOn)
		f[FeatOppMightyBlowFrac] = float32(oppMB) / float32(oppOn)
		f[FeatOppAvgMovement] = float32(oppMoveSum) / float32(oppOn) / 10
		f[FeatOppAvgStrength] = float32(oppStrSum) / float32(oppOn) / 6
	}
}

func isBigGuySkill(p *bbgame.Piece) bool {
	return p.HasSkill(bbgame.SkillBoneHead) || p.HasSkill(bbgame.SkillReallyStupid) ||
		p.HasSkill(bbgame.SkillWildAnimal) || p.HasSkill(bbgame.SkillTakeRoot) ||
		p.HasSkill(bbgame.SkillBloodlust)
}

func encodePositionalFeatures(gs *bbgame.GameState, my, opp pitch.Side, f []float32) {
	myBest, oppBest := -1, -1
	myWide, oppWide, myHalf, oppHalf := 0, 0, 0, 0
	myOnPitch := 0

	for i := 1; i <= bbgame.NumPieces; i++ {
		p := &gs.Pieces[i]
		if !p.State.OnPitch() {
			continue
		}
		distToOppEnd := pitch.Distance(p.Pos, pitch.At(pitch.EndzoneX(p.Side.Opponent()), p.Pos.Y))
		if p.Side == my {
			if myBest == -1 || distToOppEnd < myBest {
				myBest = distToOppEnd
			}
			myOnPitch++
			if pitch.WideZone(p.Pos) {
				myWide++
			}
			if isOwnHalf(p.Pos, my) {
				myHalf++
			}
		} else {
			if oppBest == -1 || distToOppEnd < oppBest {
				oppBest = distToOppEnd
			}
			if pitch.WideZone(p.Pos) {
				oppWide++
			}
			if isOwnHalf(p.Pos, opp) {
				oppHalf++
			}
		}
	}
	if myBest >= 0 {
		f[FeatMyFurthestAdvance] = 1 - float32(myBest)/26
	}
	if oppBest >= 0 {
		f[FeatOppFurthestAdvance] = 1 - float32(oppBest)/26
	}
	f[FeatMyWideZoneCount] = float32(myWide) / 11
	f[FeatOppWideZoneCount] = float32(oppWide) / 11
	f[FeatMyOwnHalfCount] = float32(myHalf) / 11
	f[FeatOppOwnHalfCount] = float32(oppHalf) / 11

	if ballPos, ok := ballReferencePos(gs); ok {
		if isOwnHalf(ballPos, my) {
			f[FeatMyDownfieldBall] = 1
		} else {
			f[FeatOppDownfieldBall] = 1
		}
	}

	isolated := 0
	for i := 1; i <= bbgame.NumPieces; i++ {
		p := &gs.Pieces[i]
		if p.Side != my || !p.State.OnPitch() {
			continue
		}
		hasFriend := false
		for j := 1; j <= bbgame.NumPieces; j++ {
			if i == j {
				continue
			}
			o := &gs.Pieces[j]
			if o.Side != my || o.State != bbgame.Standing {
				continue
			}
			if pitch.IsAdjacent(p.Pos, o.Pos) {
				hasFriend = true
				break
			}
		}
		if !hasFriend {
			isolated++
		}
	}
	if myOnPitch > 0 {
		f[FeatIsolationCount] = float32(isolated) / float32(myOnPitch)
	}
}

func isOwnHalf(p pitch.Pos, side pitch.Side) bool {
	mid := float64(pitch.Width-1) / 2
	if side == pitch.Home {
		return float64(p.X) < mid
	}
	return float64(p.X) > mid
}

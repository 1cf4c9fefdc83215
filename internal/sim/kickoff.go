package sim

import (
	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// runKickoff resolves one kickoff: the 2d6 event table, the kick-deep
// scatter, and the resulting catch/bounce/touchback, then hands control
// back to the flow controller by leaving gs in PhasePlay.
func runKickoff(gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog) {
	evt := bbgame.RollKickoff(d)
	bbgame.ApplyKickoffEvent(gs, d, log, evt)

	receiving := gs.KickingSide.Opponent()
	target := pitch.At(kickDeepX(receiving), pitch.Height/2)

	distance := d.D6()
	dir := pitch.ScatterDirection(d.D8())
	landing := target
	for i := 0; i < distance; i++ {
		landing = pitch.Step(landing, dir)
	}

	if !pitch.OnPitch(landing) {
		// Touchback: the ball is placed back on the kick-deep column in the
		// receiving team's half, on the scattered landing row clamped onto
		// the pitch.
		landing = pitch.At(kickDeepX(receiving), clampY(landing.Y))
	}

	if occupant := gs.PieceAt(landing); occupant != nil && occupant.State == bbgame.Standing && !occupant.HasSkill(bbgame.SkillNoHands) {
		bbgame.Catch(gs, d, log, occupant.Id, 0)
	} else {
		gs.Ball = bbgame.Ball{Status: bbgame.BallOnGround, Pos: landing}
	}

	gs.ActiveSide = receiving
	gs.Phase = bbgame.PhasePlay
}

// kickDeepX returns the midfield-ish column the kicking team aims for on
// the receiving side's half.
func kickDeepX(receiving pitch.Side) int {
	if receiving == pitch.Home {
		return pitch.Width/2 - 4
	}
	return pitch.Width/2 + 4
}

func clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= pitch.Height {
		return pitch.Height - 1
	}
	return y
}

package bbgame

import (
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// HypnoticGaze resolves a gaze against an adjacent target, per §4.G: success
// marks the target with lost tacklezones until its own team's next turn
// begins (see resetPiecesForNewTurn in the flow controller); failure
// turns the action over.
func HypnoticGaze(gs *GameState, d dice.Dice, log *EventLog, gazerId, targetId int) bool {
	gazer := gs.Piece(gazerId)
	target := gs.Piece(targetId)

	tz := CountTacklezones(gs, gazer.Pos, gazer.Side, gazerId)
	targetNum := clamp(2+tz, 2, 6)
	roll := d.D6()
	log.Append(Event{Kind: EventRoll, PieceId: gazerId, Roll: roll, Note: "hypnotic-gaze"})

	if roll >= targetNum {
		target.Scratch.LostTacklezones = true
		log.Append(Event{Kind: EventHypnoticGaze, PieceId: gazerId, OtherId: targetId})
		return false
	}
	gs.TurnoverPending = true
	return true
}

// BallAndChain is the forced action a Ball & Chain piece takes instead of a
// normal move: one scatter-direction step per point of movement, crashing
// into whatever it lands on, per §4.G. It never turns the action over.
func BallAndChain(gs *GameState, d dice.Dice, log *EventLog, pieceId int) {
	p := gs.Piece(pieceId)
	steps := p.Stats.Movement

	for i := 0; i < steps; i++ {
		dir := pitch.ScatterDirection(d.D8())
		next := pitch.Step(p.Pos, dir)
		log.Append(Event{Kind: EventBallAndChain, PieceId: pieceId, Pos: p.Pos, Pos2: next})

		if !pitch.OnPitch(next) {
			lastSquare := p.Pos
			p.State = KO
			p.Pos = offPitchPos()
			if gs.Ball.Status == BallHeld && gs.Ball.CarrierId == pieceId {
				gs.Ball = Ball{Status: BallOnGround, Pos: lastSquare}
				log.Append(Event{Kind: EventDrop, PieceId: pieceId})
				Bounce(gs, d, log, lastSquare)
			}
			log.Append(Event{Kind: EventKnockedOut, PieceId: pieceId, Note: "ball-and-chain"})
			return
		}
		occ := gs.PieceAt(next)
		p.Pos = next

		if occ == nil || occ.Id == pieceId || occ.State != Standing {
			continue
		}

		face := d.BlockDie()
		log.Append(Event{Kind: EventBlock, PieceId: pieceId, OtherId: occ.Id, Note: "ball-and-chain:" + face.String()})
		switch face {
		case dice.AttackerDown, dice.BothDown:
			fallPiece(gs, d, log, pieceId, InjuryContext{})
			return
		case dice.DefenderStumbles, dice.DefenderDown:
			fallPiece(gs, d, log, occ.Id, InjuryContext{})
		}
	}
}

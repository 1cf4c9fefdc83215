package bbgame

import (
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// MoveStep executes a single square of movement for pieceId into dest, which
// must be one of the piece's current neighbours, or the piece's own square
// when the piece is Prone (stand-up). Returns true if the step turned the
// action over; the caller stops walking the path as soon as this is true.
func MoveStep(gs *GameState, d dice.Dice, log *EventLog, pieceId int, dest pitch.Pos) bool {
	p := gs.Piece(pieceId)

	if dest.Equal(p.Pos) {
		StandUp(gs, d, log, pieceId)
		return false
	}

	if gs.PieceAt(dest) != nil {
		Violate("move step destination is occupied")
	}

	if CountTacklezones(gs, p.Pos, p.Side, pieceId) > 0 {
		sourceHasTackle := adjacentEnemyHasTackle(gs, p)
		tailCount := countAdjacentEnemySkill(gs, p, SkillPrehensileTail)
		divingAdjacent := countAdjacentEnemySkill(gs, p, SkillDivingTackle) > 0
		target := DodgeTarget(gs, pieceId, dest, sourceHasTackle, tailCount, divingAdjacent)
		ok := AttemptRoll(gs, d, log, pieceId, target, SkillDodge, sourceHasTackle, true)
		log.Append(Event{Kind: EventDodge, PieceId: pieceId, Pos: p.Pos, Pos2: dest})
		if !ok {
			p.Pos = dest
			p.Scratch.HasMoved = true
			fallPiece(gs, d, log, pieceId, InjuryContext{})
			gs.TurnoverPending = true
			return true
		}
	}

	if p.Scratch.MovementRemaining <= 0 {
		if p.Scratch.GFICount >= 3 {
			Violate("GFI attempted beyond the 3-per-move cap")
		}
		p.Scratch.GFICount++
		skillReroll := NoSkillReroll
		if p.HasSkill(SkillSureFeet) {
			skillReroll = SkillSureFeet
		}
		ok := AttemptRoll(gs, d, log, pieceId, 2, skillReroll, false, true)
		log.Append(Event{Kind: EventGFI, PieceId: pieceId, Pos2: dest})
		if !ok {
			p.Pos = dest
			p.Scratch.HasMoved = true
			fallPiece(gs, d, log, pieceId, InjuryContext{})
			gs.TurnoverPending = true
			return true
		}
	} else {
		p.Scratch.MovementRemaining--
	}

	p.Pos = dest
	p.Scratch.HasMoved = true
	if gs.Ball.Status == BallHeld && gs.Ball.CarrierId == pieceId {
		gs.Ball.Pos = dest
	}
	log.Append(Event{Kind: EventMove, PieceId: pieceId, Pos2: dest})

	if pitch.InEndzone(dest, p.Side.Opponent()) && gs.Ball.Status == BallHeld && gs.Ball.CarrierId == pieceId {
		log.Append(Event{Kind: EventTouchdown, PieceId: pieceId})
	}
	return false
}

// StandUp costs 3 movement; with less than 3 remaining, an attempt_roll at
// 4+ must succeed first, or the stand-up is aborted and the piece stays
// Prone (no turnover either way).
func StandUp(gs *GameState, d dice.Dice, log *EventLog, pieceId int) bool {
	p := gs.Piece(pieceId)
	if p.Scratch.MovementRemaining < 3 {
		ok := AttemptRoll(gs, d, log, pieceId, 4, NoSkillReroll, false, true)
		if !ok {
			log.Append(Event{Kind: EventStandUp, PieceId: pieceId, Note: "failed"})
			return false
		}
	}

	if p.Scratch.MovementRemaining >= 3 {
		p.Scratch.MovementRemaining -= 3
	} else {
		p.Scratch.MovementRemaining = 0
	}
	p.State = Standing
	log.Append(Event{Kind: EventStandUp, PieceId: pieceId})
	return true
}

// adjacentEnemyHasTackle reports whether any Standing opposing piece
// adjacent to p's current square has Tackle, which negates the Dodge
// skill's target discount for a piece leaving that square.
func adjacentEnemyHasTackle(gs *GameState, p *Piece) bool {
	return countAdjacentEnemySkill(gs, p, SkillTackle) > 0
}

// countAdjacentEnemySkill counts Standing opposing pieces adjacent to p's
// current square that carry skill s.
func countAdjacentEnemySkill(gs *GameState, p *Piece, skill Skill) int {
	opponent := p.Side.Opponent()
	count := 0
	for i := 1; i <= NumPieces; i++ {
		o := &gs.Pieces[i]
		if o.Side != opponent || o.State != Standing {
			continue
		}
		if pitch.IsAdjacent(o.Pos, p.Pos) && o.HasSkill(skill) {
			count++
		}
	}
	return count
}

package bbgame

import (
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// BallStatus is one of the three states the ball may be in.
type BallStatus int

const (
	BallHeld BallStatus = iota
	BallOnGround
	BallOffPitch
)

// Ball tracks the single ball's location and, if held, its carrier.
type Ball struct {
	Status    BallStatus
	CarrierId int // valid iff Status == BallHeld
	Pos       pitch.Pos
}

// Bounce implements §4.E's bounce step: roll a d8, move the ball one square
// in that direction from `from`. Off-pitch resolves a throw-in; a Standing
// occupant without NoHands attempts a free catch; otherwise the ball rests.
func Bounce(gs *GameState, d dice.Dice, log *EventLog, from pitch.Pos) {
	dir := pitch.ScatterDirection(d.D8())
	next := pitch.Step(from, dir)
	log.Append(Event{Kind: EventBounce, Pos: from, Pos2: next})

	if !pitch.OnPitch(next) {
		ThrowIn(gs, d, log, clampToEdge(next))
		return
	}

	occupant := gs.PieceAt(next)
	if occupant != nil && occupant.State == Standing && !occupant.HasSkill(SkillNoHands) {
		Catch(gs, d, log, occupant.Id, 0)
		return
	}

	gs.Ball = Ball{Status: BallOnGround, Pos: next}
}

// Catch implements §4.E's catch formula and resolution. On success the ball
// becomes held by pieceId; on failure (after the reroll chain) the ball
// bounces from the piece's square.
func Catch(gs *GameState, d dice.Dice, log *EventLog, pieceId int, mod int) bool {
	p := gs.Piece(pieceId)

	tz := CountTacklezones(gs, p.Pos, p.Side, pieceId)
	if p.HasSkill(SkillNervesOfSteel) {
		tz = 0
	}
	extraArmsMod := 0
	if p.HasSkill(SkillExtraArms) {
		extraArmsMod = -1
	}

	target := clamp(7-p.Stats.Agility-mod+tz+WeatherCatchMod(gs.WeatherCond)+extraArmsMod, 2, 6)
	ok := AttemptRoll(gs, d, log, pieceId, target, SkillCatch, false, true)
	if ok {
		gs.Ball = Ball{Status: BallHeld, CarrierId: pieceId, Pos: p.Pos}
		log.Append(Event{Kind: EventCatch, PieceId: pieceId})
	} else {
		log.Append(Event{Kind: EventDrop, PieceId: pieceId})
		Bounce(gs, d, log, p.Pos)
	}
	return ok
}

// Pickup implements §4.E's pickup formula and resolution.
func Pickup(gs *GameState, d dice.Dice, log *EventLog, pieceId int) bool {
	p := gs.Piece(pieceId)

	tz := CountTacklezones(gs, p.Pos, p.Side, pieceId)
	weatherMod := WeatherPickupMod(gs.WeatherCond)
	if p.HasSkill(SkillBigHand) {
		tz = 0
		weatherMod = 0
	}

	target := clamp(6-p.Stats.Agility+tz+weatherMod, 2, 6)
	skillReroll := NoSkillReroll
	if p.HasSkill(SkillSureHands) {
		skillReroll = SkillSureHands
	}

	ok := AttemptRoll(gs, d, log, pieceId, target, skillReroll, false, true)
	if ok {
		gs.Ball = Ball{Status: BallHeld, CarrierId: pieceId, Pos: p.Pos}
		log.Append(Event{Kind: EventPickup, PieceId: pieceId})
	} else {
		log.Append(Event{Kind: EventDrop, PieceId: pieceId})
		Bounce(gs, d, log, p.Pos)
	}
	return ok
}

// ThrowIn implements §4.E's throw-in: a d6 distance, a d8 direction
// restricted to the three interior octants pointing back onto the pitch
// from the edge the ball left by, then a recursive Bounce from the landing
// square.
func ThrowIn(gs *GameState, d dice.Dice, log *EventLog, edge pitch.Pos) {
	dirs := inwardDirections(edge)
	d8 := d.D8()
	dir := dirs[(d8-1)%len(dirs)]
	distance := d.D6()
	log.Append(Event{Kind: EventThrowIn, Pos: edge, Roll: distance})

	landing := edge
	for i := 0; i < distance; i++ {
		landing = pitch.Step(landing, dir)
	}

	if !pitch.OnPitch(landing) {
		ThrowIn(gs, d, log, clampToEdge(landing))
		return
	}
	Bounce(gs, d, log, landing)
}

// clampToEdge returns the nearest on-pitch square to an off-pitch position,
// used as the throw-in origin.
func clampToEdge(p pitch.Pos) pitch.Pos {
	return pitch.Pos{X: clamp(p.X, 0, pitch.Width-1), Y: clamp(p.Y, 0, pitch.Height-1)}
}

// inwardDirections returns the three compass directions pointing back onto
// the pitch from the edge square p sits against. x-edges take priority over
// y-edges on corners, matching how a ball leaving near a corner is still
// thrown in from a single definite sideline.
func inwardDirections(p pitch.Pos) []pitch.Direction {
	switch {
	case p.X <= 0:
		return []pitch.Direction{pitch.E, pitch.NE, pitch.SE}
	case p.X >= pitch.Width-1:
		return []pitch.Direction{pitch.W, pitch.NW, pitch.SW}
	case p.Y <= 0:
		return []pitch.Direction{pitch.S, pitch.SE, pitch.SW}
	default:
		return []pitch.Direction{pitch.N, pitch.NE, pitch.NW}
	}
}

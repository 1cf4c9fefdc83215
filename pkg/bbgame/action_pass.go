package bbgame

import (
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// passRangeMod gives the range-band modifier (QP, SP, LP, LB) subtracted
// from the base pass target in passTarget; positive values make the throw
// easier, matching the real game's "+1 Quick/Short, +0 Long, -1 Long Bomb"
// modifiers.
var passRangeMod = [4]int{1, 1, 0, -1}

func passBand(dist int) int {
	switch {
	case dist <= 3:
		return 0
	case dist <= 6:
		return 1
	case dist <= 10:
		return 2
	default:
		return 3
	}
}

// passTarget computes the §4.G pass accuracy target, shared by Pass,
// ThrowTeamMate, and BombThrow.
func passTarget(gs *GameState, passer *Piece, dist int) int {
	band := passBand(dist)
	if passer.HasSkill(SkillStrongArm) && band > 0 {
		band--
	}
	mod := passRangeMod[band]
	tz := CountTacklezones(gs, passer.Pos, passer.Side, passer.Id)
	dp := countDisturbingPresenceWithin(gs, passer.Pos, passer.Side.Opponent(), 3)
	accurateMod := 0
	if passer.HasSkill(SkillAccurate) {
		accurateMod = 1
	}
	return clamp(7-passer.Stats.Agility-mod+tz+WeatherPassMod(gs.WeatherCond)+dp-accurateMod, 2, 6)
}

func countDisturbingPresenceWithin(gs *GameState, pos pitch.Pos, side pitch.Side, radius int) int {
	count := 0
	for i := 1; i <= NumPieces; i++ {
		p := &gs.Pieces[i]
		if p.Side != side || !p.State.OnPitch() {
			continue
		}
		if p.HasSkill(SkillDisturbingPresence) && pitch.Distance(p.Pos, pos) <= radius {
			count++
		}
	}
	return count
}

// passReroll attempts the one reroll chain available after a fumbled d6
// (skill first if skillReroll is set, then Pro, then team reroll gated by
// Loner) and returns the final rolled value, or -1 if no reroll source was
// available or usable.
func passReroll(gs *GameState, d dice.Dice, log *EventLog, pieceId int, skillReroll Skill) int {
	piece := gs.Piece(pieceId)

	if skillReroll != NoSkillReroll && piece.HasSkill(skillReroll) {
		r := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: r, Note: "skill-reroll"})
		return r
	}

	if piece.HasSkill(SkillPro) && !piece.Scratch.ProUsedThisTurn {
		piece.Scratch.ProUsedThisTurn = true
		proRoll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: proRoll, Note: "pro-confirm"})
		if proRoll >= 4 {
			r := d.D6()
			log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: r, Note: "pro-reroll"})
			return r
		}
		return -1
	}

	team := gs.Team(piece.Side)
	if team.RerollsRemaining > 0 && !team.RerollUsedThisTurn {
		team.RerollsRemaining--
		team.RerollUsedThisTurn = true
		if piece.HasSkill(SkillLoner) {
			lonerRoll := d.D6()
			log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: lonerRoll, Note: "loner-check"})
			if lonerRoll < 4 {
				return -1
			}
		}
		r := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: r, Note: "team-reroll"})
		return r
	}
	return -1
}

func scatterOnce(pos pitch.Pos, d dice.Dice) pitch.Pos {
	return pitch.Step(pos, pitch.ScatterDirection(d.D8()))
}

func scatter3(pos pitch.Pos, d dice.Dice) pitch.Pos {
	for i := 0; i < 3 && pitch.OnPitch(pos); i++ {
		pos = scatterOnce(pos, d)
	}
	return pos
}

// bresenhamPath returns the squares along the straight line from a to b,
// excluding a and including b, used to find
// the eligible interceptor on a pass.
func bresenhamPath(a, b pitch.Pos) []pitch.Pos {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	var out []pitch.Pos
	x, y := x0, y0
	for {
		if !(x == x0 && y == y0) {
			out = append(out, pitch.Pos{X: x, Y: y})
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Pass resolves a pass attempt per §4.G: interception along the Bresenham
// path, a fumble check, then accurate/inaccurate resolution.
func Pass(gs *GameState, d dice.Dice, log *EventLog, passerId int, targetPos pitch.Pos) bool {
	passer := gs.Piece(passerId)
	team := gs.Team(passer.Side)
	team.PassUsedThisTurn = true

	dist := pitch.Distance(passer.Pos, targetPos)
	target := passTarget(gs, passer, dist)

	for _, sq := range bresenhamPath(passer.Pos, targetPos) {
		occ := gs.PieceAt(sq)
		if occ == nil || occ.Side == passer.Side || occ.State != Standing || occ.HasSkill(SkillNoHands) {
			continue
		}
		interceptTarget := clamp(7-occ.Stats.Agility+2+CountTacklezones(gs, occ.Pos, occ.Side, occ.Id), 2, 6)
		if occ.HasSkill(SkillVeryLongLegs) {
			interceptTarget--
		}
		if occ.HasSkill(SkillExtraArms) {
			interceptTarget--
		}
		ok := AttemptRoll(gs, d, log, occ.Id, interceptTarget, NoSkillReroll, false, true)
		if ok && passer.HasSkill(SkillSafeThrow) {
			ok = AttemptRoll(gs, d, log, occ.Id, interceptTarget, NoSkillReroll, false, false)
		}
		log.Append(Event{Kind: EventInterception, PieceId: occ.Id, OtherId: passerId})
		if ok {
			gs.Ball = Ball{Status: BallHeld, CarrierId: occ.Id, Pos: occ.Pos}
			gs.TurnoverPending = true
			return true
		}
		break
	}

	roll := d.D6()
	log.Append(Event{Kind: EventRoll, PieceId: passerId, Roll: roll, Note: "pass-attempt"})
	if roll == 1 {
		skillReroll := NoSkillReroll
		if passer.HasSkill(SkillPass) {
			skillReroll = SkillPass
		}
		r := passReroll(gs, d, log, passerId, skillReroll)
		if r == -1 || r == 1 {
			log.Append(Event{Kind: EventFumble, PieceId: passerId})
			Bounce(gs, d, log, passer.Pos)
			gs.TurnoverPending = true
			return true
		}
		roll = r
	}

	if roll >= target {
		log.Append(Event{Kind: EventPass, PieceId: passerId, Pos2: targetPos, Note: "accurate"})
		if receiver := gs.PieceAt(targetPos); receiver != nil {
			Catch(gs, d, log, receiver.Id, 1)
		} else {
			gs.Ball = Ball{Status: BallOnGround, Pos: targetPos}
			Bounce(gs, d, log, targetPos)
		}
		return false
	}

	dist6 := d.D6()
	landing := targetPos
	dir := pitch.ScatterDirection(d.D8())
	for i := 0; i < dist6; i++ {
		landing = pitch.Step(landing, dir)
	}
	log.Append(Event{Kind: EventPass, PieceId: passerId, Pos2: landing, Note: "inaccurate"})
	if !pitch.OnPitch(landing) {
		ThrowIn(gs, d, log, clampToEdge(landing))
		return false
	}
	if receiver := gs.PieceAt(landing); receiver != nil && receiver.State == Standing && !receiver.HasSkill(SkillNoHands) {
		Catch(gs, d, log, receiver.Id, 0)
	} else {
		gs.Ball = Ball{Status: BallOnGround, Pos: landing}
		Bounce(gs, d, log, landing)
	}
	return false
}

// HailMaryPass bypasses interception and range entirely, per §4.G.
func HailMaryPass(gs *GameState, d dice.Dice, log *EventLog, passerId int, targetPos pitch.Pos) bool {
	team := gs.ActiveTeam()
	team.PassUsedThisTurn = true
	passer := gs.Piece(passerId)

	roll := d.D6()
	log.Append(Event{Kind: EventRoll, PieceId: passerId, Roll: roll, Note: "hail-mary"})
	if roll == 1 {
		log.Append(Event{Kind: EventFumble, PieceId: passerId})
		Bounce(gs, d, log, passer.Pos)
		gs.TurnoverPending = true
		return true
	}

	landing := scatter3(targetPos, d)
	log.Append(Event{Kind: EventPass, PieceId: passerId, Pos2: landing, Note: "hail-mary-scatter"})
	if !pitch.OnPitch(landing) {
		ThrowIn(gs, d, log, clampToEdge(landing))
		return false
	}
	if receiver := gs.PieceAt(landing); receiver != nil && receiver.State == Standing && !receiver.HasSkill(SkillNoHands) {
		Catch(gs, d, log, receiver.Id, 0)
	} else {
		gs.Ball = Ball{Status: BallOnGround, Pos: landing}
		Bounce(gs, d, log, landing)
	}
	return false
}

// HandOff moves the ball from an adjacent holder to a teammate, who
// attempts a +1-modifier catch.
func HandOff(gs *GameState, d dice.Dice, log *EventLog, passerId, receiverId int) bool {
	team := gs.ActiveTeam()
	team.PassUsedThisTurn = true
	receiver := gs.Piece(receiverId)

	gs.Ball = Ball{Status: BallOnGround, Pos: receiver.Pos}
	log.Append(Event{Kind: EventHandOff, PieceId: passerId, OtherId: receiverId})
	ok := Catch(gs, d, log, receiverId, 1)
	if !ok {
		gs.TurnoverPending = true
	}
	return !ok
}

// resolveProjectileLanding scatters a thrown team-mate away from any
// occupied square, crowd-surfs an off-pitch landing, and otherwise rolls
// the landing safety check, per §4.G.
func resolveProjectileLanding(gs *GameState, d dice.Dice, log *EventLog, projectileId int, pos pitch.Pos) bool {
	p := gs.Piece(projectileId)
	for {
		if !pitch.OnPitch(pos) {
			p.State = OffPitch
			p.Pos = pitch.Off()
			log.Append(Event{Kind: EventThrowTeamMate, PieceId: projectileId, Note: "crowd-surf"})
			ApplyCrowdSurf(gs, d, log, projectileId, InjuryContext{})
			gs.TurnoverPending = true
			return true
		}
		if gs.PieceAt(pos) != nil {
			pos = scatterOnce(pos, d)
			continue
		}
		break
	}

	p.Pos = pos
	target := clamp(7-p.Stats.Agility+CountTacklezones(gs, pos, p.Side, projectileId), 2, 6)
	roll := d.D6()
	log.Append(Event{Kind: EventRoll, PieceId: projectileId, Roll: roll, Note: "landing"})
	if roll >= target {
		p.State = Standing
		log.Append(Event{Kind: EventThrowTeamMate, PieceId: projectileId, Pos2: pos})
		return false
	}
	p.State = Prone
	log.Append(Event{Kind: EventThrowTeamMate, PieceId: projectileId, Pos2: pos, Note: "crash"})
	ApplyInjury(gs, d, log, projectileId, InjuryContext{})
	gs.TurnoverPending = true
	return true
}

// ThrowTeamMate resolves throwing an adjacent teammate with RightStuff, per §4.G.
func ThrowTeamMate(gs *GameState, d dice.Dice, log *EventLog, throwerId, projectileId int, targetPos pitch.Pos) bool {
	team := gs.ActiveTeam()
	team.PassUsedThisTurn = true
	thrower := gs.Piece(throwerId)
	projectile := gs.Piece(projectileId)

	if thrower.HasSkill(SkillAlwaysHungry) {
		roll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: throwerId, Roll: roll, Note: "always-hungry"})
		if roll == 1 {
			r := passReroll(gs, d, log, throwerId, NoSkillReroll)
			if r == -1 || r == 1 {
				projectile.State = Injured
				projectile.Pos = offPitchPos()
				log.Append(Event{Kind: EventThrowTeamMate, PieceId: throwerId, OtherId: projectileId, Note: "eaten"})
				return false
			}
		}
	}

	dist := pitch.Distance(thrower.Pos, targetPos)
	target := passTarget(gs, thrower, dist)

	roll := d.D6()
	log.Append(Event{Kind: EventRoll, PieceId: throwerId, Roll: roll, Note: "throw-team-mate"})
	if roll == 1 {
		r := passReroll(gs, d, log, throwerId, SkillPass)
		if r == -1 || r == 1 {
			return resolveProjectileLanding(gs, d, log, projectileId, scatterOnce(thrower.Pos, d))
		}
		roll = r
	}

	if roll >= target {
		return resolveProjectileLanding(gs, d, log, projectileId, targetPos)
	}
	return resolveProjectileLanding(gs, d, log, projectileId, scatterOnce(targetPos, d))
}

// BombThrow resolves a Bombardier's bomb throw, per §4.G. It never turns
// the action over.
func BombThrow(gs *GameState, d dice.Dice, log *EventLog, throwerId int, targetPos pitch.Pos) {
	thrower := gs.Piece(throwerId)
	dist := pitch.Distance(thrower.Pos, targetPos)
	target := passTarget(gs, thrower, dist)

	roll := d.D6()
	log.Append(Event{Kind: EventRoll, PieceId: throwerId, Roll: roll, Note: "bomb-throw"})

	var landing pitch.Pos
	switch {
	case roll == 1:
		r := passReroll(gs, d, log, throwerId, NoSkillReroll)
		switch {
		case r == -1 || r == 1:
			landing = scatterOnce(thrower.Pos, d)
		case r >= target:
			landing = targetPos
		default:
			landing = scatter3(targetPos, d)
		}
	case roll >= target:
		landing = targetPos
	default:
		landing = scatter3(targetPos, d)
	}

	log.Append(Event{Kind: EventBombThrow, PieceId: throwerId, Pos2: landing})
	if !pitch.OnPitch(landing) {
		return
	}
	detonate(gs, d, log, throwerId, landing)
}

// detonate knocks Prone and runs armour/injury against every piece in the
// 3x3 blast area except the thrower.
func detonate(gs *GameState, d dice.Dice, log *EventLog, throwerId int, center pitch.Pos) {
	for i := 1; i <= NumPieces; i++ {
		if i == throwerId {
			continue
		}
		p := &gs.Pieces[i]
		if !p.State.OnPitch() {
			continue
		}
		if pitch.Distance(p.Pos, center) <= 1 {
			fallPiece(gs, d, log, i, InjuryContext{})
		}
	}
}

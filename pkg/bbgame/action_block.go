package bbgame

import (
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// attackerFaceRank orders block-die faces from an attacker's best (0) to
// worst (4); a defender's preference is the mirror image.
var attackerFaceRank = map[dice.BlockFace]int{
	dice.DefenderDown:      0,
	dice.DefenderStumbles:  1,
	dice.Push:              2,
	dice.BothDown:          3,
	dice.AttackerDown:      4,
}

func faceRank(f dice.BlockFace, forAttacker bool) int {
	r := attackerFaceRank[f]
	if forAttacker {
		return r
	}
	return 4 - r
}

func pickBestFace(faces []dice.BlockFace, forAttacker bool) dice.BlockFace {
	best := faces[0]
	bestRank := faceRank(best, forAttacker)
	for _, f := range faces[1:] {
		if r := faceRank(f, forAttacker); r < bestRank {
			bestRank, best = r, f
		}
	}
	return best
}

func worstFaceIndex(faces []dice.BlockFace, forAttacker bool) int {
	idx := 0
	worstRank := faceRank(faces[0], forAttacker)
	for i, f := range faces[1:] {
		if r := faceRank(f, forAttacker); r > worstRank {
			worstRank, idx = r, i+1
		}
	}
	return idx
}

// Block resolves one block, per §4.G: effective strength (assists, Horns on
// a blitz, Foul Appearance, Dauntless), the block-dice table, face choice
// (with a single Pro reroll available to whichever side chooses), and face
// semantics. Returns true if the block turned the action over.
func Block(gs *GameState, d dice.Dice, log *EventLog, attackerId, defenderId int, isBlitz bool) bool {
	att := gs.Piece(attackerId)
	def := gs.Piece(defenderId)

	if att.HasSkill(SkillStab) {
		return stabStrike(gs, d, log, attackerId, defenderId)
	}
	if att.HasSkill(SkillChainsaw) {
		return chainsawStrike(gs, d, log, attackerId, defenderId)
	}

	attST := att.Stats.Strength + CountAssists(gs, def.Pos, att.Side, attackerId, defenderId, defenderId)
	if isBlitz && att.HasSkill(SkillHorns) {
		attST++
	}
	if def.HasSkill(SkillFoulAppearance) {
		attST--
	}
	defST := def.Stats.Strength + CountAssists(gs, att.Pos, def.Side, attackerId, defenderId, attackerId)

	if att.HasSkill(SkillDauntless) && att.Stats.Strength < def.Stats.Strength {
		roll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: attackerId, Roll: roll, Note: "dauntless"})
		if roll+att.Stats.Strength >= def.Stats.Strength {
			attST = defST
		}
	}

	count, attackerChooses := BlockDice(attST, defST)
	faces := make([]dice.BlockFace, count)
	for i := range faces {
		faces[i] = d.BlockDie()
	}
	log.Append(Event{Kind: EventBlock, PieceId: attackerId, OtherId: defenderId, Note: "dice-rolled"})

	chooserId := defenderId
	if attackerChooses {
		chooserId = attackerId
	}
	chooser := gs.Piece(chooserId)
	best := pickBestFace(faces, attackerChooses)
	if chooser.HasSkill(SkillPro) && !chooser.Scratch.ProUsedThisTurn {
		chooser.Scratch.ProUsedThisTurn = true
		proRoll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: chooserId, Roll: proRoll, Note: "pro-confirm"})
		if proRoll >= 4 {
			idx := worstFaceIndex(faces, attackerChooses)
			faces[idx] = d.BlockDie()
			log.Append(Event{Kind: EventRoll, PieceId: chooserId, Note: "pro-reroll-block"})
			best = pickBestFace(faces, attackerChooses)
		}
	}

	origDefPos := def.Pos

	hitCtx := InjuryContext{}
	if att.HasSkill(SkillMightyBlow) {
		hitCtx.InjuryMod = 1
	}
	if att.HasSkill(SkillClaws) {
		hitCtx.Claw = true
	}
	if att.HasSkill(SkillStakes) {
		hitCtx.Stakes = true
	}
	if att.HasSkill(SkillDecay) {
		hitCtx.Decay = true
	}

	switch best {
	case dice.AttackerDown:
		fallPiece(gs, d, log, attackerId, InjuryContext{})
		gs.TurnoverPending = true
		return true

	case dice.BothDown:
		if isBlitz && att.HasSkill(SkillJuggernaut) {
			return resolvePushOutcome(gs, d, log, attackerId, defenderId, isBlitz, false, origDefPos, hitCtx)
		}
		attHasBlock, defHasBlock := att.HasSkill(SkillBlock), def.HasSkill(SkillBlock)
		switch {
		case attHasBlock && !defHasBlock:
			fallPiece(gs, d, log, defenderId, hitCtx)
			return false
		case defHasBlock && !attHasBlock:
			fallPiece(gs, d, log, attackerId, InjuryContext{})
			gs.TurnoverPending = true
			return true
		case att.HasSkill(SkillWrestle) || def.HasSkill(SkillWrestle):
			att.State, def.State = Prone, Prone
			dropBallIfCarried(gs, d, log, attackerId)
			dropBallIfCarried(gs, d, log, defenderId)
			log.Append(Event{Kind: EventKnockdown, PieceId: attackerId, OtherId: defenderId, Note: "wrestle"})
			return false
		default:
			fallPiece(gs, d, log, attackerId, InjuryContext{})
			fallPiece(gs, d, log, defenderId, hitCtx)
			gs.TurnoverPending = true
			return true
		}

	case dice.Push:
		return resolvePushOutcome(gs, d, log, attackerId, defenderId, isBlitz, false, origDefPos, hitCtx)

	case dice.DefenderStumbles:
		negatesDodge := def.HasSkill(SkillDodge) && !att.HasSkill(SkillTackle)
		return resolvePushOutcome(gs, d, log, attackerId, defenderId, isBlitz, !negatesDodge, origDefPos, hitCtx)

	case dice.DefenderDown:
		return resolvePushOutcome(gs, d, log, attackerId, defenderId, isBlitz, true, origDefPos, hitCtx)
	}
	return false
}

// stabStrike resolves a Stab attack in place of a normal block: §4.G never
// details Stab/Chainsaw's own dice, so the engine grounds the strike on the
// one other melee action the spec does specify precisely, Foul (§4.G Foul):
// a direct armour roll against the defender with the same doubles-ejects
// check (Sneaky Git still protects against it), skipping the block-dice
// table and pushback entirely. It never turns the action over, matching
// Foul's own "never causes turnover" rule.
func stabStrike(gs *GameState, d dice.Dice, log *EventLog, attackerId, defenderId int) bool {
	att := gs.Piece(attackerId)

	a1, a2 := d.D6(), d.D6()
	log.Append(Event{Kind: EventBlock, PieceId: attackerId, OtherId: defenderId, Roll: a1 + a2, Note: "stab"})
	if a1 == a2 && !att.HasSkill(SkillSneakyGit) {
		att.State = Ejected
		log.Append(Event{Kind: EventEjected, PieceId: attackerId})
	}

	target := gs.Piece(defenderId)
	if a1+a2 > target.Stats.Armour {
		ApplyInjury(gs, d, log, defenderId, InjuryContext{})
	}
	return false
}

// chainsawStrike resolves a Chainsaw attack: the same direct armour strike
// as Stab, but with no ejection risk and instead a one-in-six chance the saw
// kicks back and knocks the wielder down instead of connecting, per the
// engine's grounding choice above (no normative §4.G detail exists for
// either skill).
func chainsawStrike(gs *GameState, d dice.Dice, log *EventLog, attackerId, defenderId int) bool {
	kickback := d.D6()
	log.Append(Event{Kind: EventBlock, PieceId: attackerId, OtherId: defenderId, Roll: kickback, Note: "chainsaw-kickback"})
	if kickback == 1 {
		fallPiece(gs, d, log, attackerId, InjuryContext{})
		return false
	}

	a1, a2 := d.D6(), d.D6()
	log.Append(Event{Kind: EventBlock, PieceId: attackerId, OtherId: defenderId, Roll: a1 + a2, Note: "chainsaw"})
	target := gs.Piece(defenderId)
	if a1+a2 > target.Stats.Armour {
		ApplyInjury(gs, d, log, defenderId, InjuryContext{})
	}
	return false
}

// resolvePushOutcome applies pushback (Stand Firm may cancel it, unless the
// attacker Juggernaut-on-blitz overrides Stand Firm), strip-ball, the
// optional knockdown, attacker follow-up, and a Frenzy-mandated second block.
func resolvePushOutcome(gs *GameState, d dice.Dice, log *EventLog, attackerId, defenderId int, isBlitz, knockDownDefender bool, origDefPos pitch.Pos, hitCtx InjuryContext) bool {
	att := gs.Piece(attackerId)
	def := gs.Piece(defenderId)

	standFirmBlocksPush := def.HasSkill(SkillStandFirm) && !(isBlitz && att.HasSkill(SkillJuggernaut))
	stripBall := att.HasSkill(SkillStripBall) && gs.Ball.Status == BallHeld && gs.Ball.CarrierId == defenderId

	if !standFirmBlocksPush {
		dest := choosePushSquare(gs, att.Pos, def.Pos, def)
		chainPush(gs, d, log, defenderId, dest)
	}

	// A crowd-surfed carrier already had the ball dropped by chainPush
	// itself, regardless of Strip Ball; Strip Ball's own drop only still
	// needs to fire here for a push that kept the defender on-pitch.
	if stripBall && gs.Ball.Status == BallHeld && gs.Ball.CarrierId == defenderId {
		dropPos := def.Pos
		gs.Ball = Ball{Status: BallOnGround, Pos: dropPos}
		log.Append(Event{Kind: EventDrop, PieceId: defenderId, Note: "strip-ball"})
		Bounce(gs, d, log, dropPos)
	}

	pilingOn := knockDownDefender && att.HasSkill(SkillPilingOn)
	if knockDownDefender && def.State != OffPitch {
		if pilingOn {
			hitCtx.InjuryMod++
		}
		fallPiece(gs, d, log, defenderId, hitCtx)
	}

	if !standFirmBlocksPush {
		maybeFollowUp(gs, log, attackerId, defenderId, origDefPos)
	}

	// Piling On: the attacker throws itself down next to the defender to
	// press the extra injury roll home, spending the rest of its turn.
	if pilingOn && att.State == Standing {
		att.State = Prone
		log.Append(Event{Kind: EventKnockdown, PieceId: attackerId, Note: "piling-on"})
	}

	if att.HasSkill(SkillFrenzy) && att.State == Standing && def.State == Standing && pitch.IsAdjacent(att.Pos, def.Pos) {
		return Block(gs, d, log, attackerId, defenderId, isBlitz)
	}
	return false
}

// choosePushSquare picks among the three legal pushback squares; Side Step
// lets the defender choose, which the engine resolves by lowest enemy
// tacklezone count at the candidate (off-pitch squares are never picked
// this way — they're the crowd-surf default, not a safety choice).
func choosePushSquare(gs *GameState, attPos, defPos pitch.Pos, def *Piece) pitch.Pos {
	candidates := PushbackSquares(attPos, defPos)
	if !def.HasSkill(SkillSideStep) {
		return candidates[0]
	}
	best := candidates[0]
	bestTZ := -1
	for _, c := range candidates {
		if !pitch.OnPitch(c) {
			continue
		}
		tz := CountTacklezones(gs, c, def.Side, def.Id)
		if bestTZ == -1 || tz < bestTZ {
			bestTZ, best = tz, c
		}
	}
	return best
}

// chainPush moves pieceId into dest, cascading into whatever occupies dest
// (provided that occupant lacks Stand Firm) and crowd-surfing off-pitch
// endpoints. A Stand-Firm-held destination simply blocks the push in place.
func chainPush(gs *GameState, d dice.Dice, log *EventLog, pieceId int, dest pitch.Pos) {
	p := gs.Piece(pieceId)

	if !pitch.OnPitch(dest) {
		from := p.Pos
		p.State = OffPitch
		p.Pos = pitch.Off()
		log.Append(Event{Kind: EventPush, PieceId: pieceId, Pos: from, Pos2: dest, Note: "crowd-surf"})
		if gs.Ball.Status == BallHeld && gs.Ball.CarrierId == pieceId {
			gs.Ball = Ball{Status: BallOnGround, Pos: from}
			log.Append(Event{Kind: EventDrop, PieceId: pieceId, Note: "crowd-surf"})
			Bounce(gs, d, log, from)
		}
		ApplyCrowdSurf(gs, d, log, pieceId, InjuryContext{})
		return
	}

	if occupant := gs.PieceAt(dest); occupant != nil {
		if !occupant.HasSkill(SkillStandFirm) {
			next := pitch.Step(dest, pushDirection(p.Pos, dest))
			chainPush(gs, d, log, occupant.Id, next)
		} else {
			return
		}
	}

	log.Append(Event{Kind: EventPush, PieceId: pieceId, Pos: p.Pos, Pos2: dest})
	p.Pos = dest
}

// pushDirection returns the compass direction from "from" to the adjacent
// square "to".
func pushDirection(from, to pitch.Pos) pitch.Direction {
	dx, dy := sign(to.X-from.X), sign(to.Y-from.Y)
	for dir := pitch.N; dir <= pitch.NW; dir++ {
		delta := pitch.Step(pitch.Pos{}, dir)
		if delta.X == dx && delta.Y == dy {
			return dir
		}
	}
	return pitch.N
}

// maybeFollowUp lets the attacker step into the square the defender just
// vacated, unless the defender has Fend — called whenever a pushback
// actually happened, matching §4.G's "engine always follows up unless
// Fend" rule. This keeps a plain PUSH's attacker and defender adjacent
// afterwards, which Frenzy's mandatory second block depends on.
func maybeFollowUp(gs *GameState, log *EventLog, attackerId, defenderId int, vacated pitch.Pos) {
	def := gs.Piece(defenderId)
	if def.HasSkill(SkillFend) {
		return
	}
	att := gs.Piece(attackerId)
	att.Pos = vacated
	log.Append(Event{Kind: EventFollowUp, PieceId: attackerId, Pos2: vacated})
}

// fallPiece knocks pieceId Prone, drops any carried ball (first giving a
// Dump-Off carrier the chance to throw it away instead), and runs the
// injury pipeline against it.
func fallPiece(gs *GameState, d dice.Dice, log *EventLog, pieceId int, ctx InjuryContext) {
	p := gs.Piece(pieceId)
	dumped := maybeDumpOff(gs, d, log, pieceId)
	p.State = Prone
	log.Append(Event{Kind: EventKnockdown, PieceId: pieceId})
	if !dumped {
		dropBallIfCarried(gs, d, log, pieceId)
	}
	ApplyInjury(gs, d, log, pieceId, ctx)
}

// maybeDumpOff implements Dump-Off (§2's action-handler summary lists it
// alongside Pass's other modifiers): a ball carrier about to go down gets
// one free short pass to its nearest own Standing teammate before the ball
// would otherwise just drop underfoot, consuming the team's pass-used flag
// like any other pass. Returns true if the ball left this way.
func maybeDumpOff(gs *GameState, d dice.Dice, log *EventLog, carrierId int) bool {
	p := gs.Piece(carrierId)
	if gs.Ball.Status != BallHeld || gs.Ball.CarrierId != carrierId || !p.HasSkill(SkillDump) {
		return false
	}
	if gs.Team(p.Side).PassUsedThisTurn {
		return false
	}
	receiver := nearestTeammate(gs, p)
	if receiver == nil {
		return false
	}
	log.Append(Event{Kind: EventPass, PieceId: carrierId, OtherId: receiver.Id, Note: "dump-off"})
	Pass(gs, d, log, carrierId, receiver.Pos)
	return true
}

// nearestTeammate finds p's closest own Standing piece, used to pick a
// Dump-Off target.
func nearestTeammate(gs *GameState, p *Piece) *Piece {
	var best *Piece
	bestDist := 1 << 30
	for i := 1; i <= NumPieces; i++ {
		o := &gs.Pieces[i]
		if o.Id == p.Id || o.Side != p.Side || o.State != Standing {
			continue
		}
		if dist := pitch.Distance(p.Pos, o.Pos); dist < bestDist {
			bestDist, best = dist, o
		}
	}
	return best
}

// dropBallIfCarried drops and bounces the ball if pieceId currently carries it.
func dropBallIfCarried(gs *GameState, d dice.Dice, log *EventLog, pieceId int) {
	if gs.Ball.Status != BallHeld || gs.Ball.CarrierId != pieceId {
		return
	}
	pos := gs.Piece(pieceId).Pos
	gs.Ball = Ball{Status: BallOnGround, Pos: pos}
	log.Append(Event{Kind: EventDrop, PieceId: pieceId})
	Bounce(gs, d, log, pos)
}

// greedyPathToAdjacent computes the simple greedy Chebyshev-descent path
// from "from" to a square adjacent to targetPos, per §4.G's blitz pathing
// rule: at each step, take the unoccupied neighbour that most reduces
// distance to the target, stopping once adjacent or once no neighbour
// makes progress.
func greedyPathToAdjacent(gs *GameState, from, targetPos pitch.Pos) []pitch.Pos {
	var path []pitch.Pos
	cur := from
	for !pitch.IsAdjacent(cur, targetPos) {
		best := cur
		bestDist := pitch.Distance(cur, targetPos)
		for _, n := range pitch.Adjacent(cur) {
			if gs.PieceAt(n) != nil {
				continue
			}
			if dist := pitch.Distance(n, targetPos); dist < bestDist {
				bestDist, best = dist, n
			}
		}
		if best.Equal(cur) {
			break
		}
		path = append(path, best)
		cur = best
	}
	return path
}

// Blitz spends the team's once-per-turn blitz action: pieceId walks (via
// MoveStep, so dodges and GFIs apply normally) toward an adjacent square of
// targetId along a greedy path, stopping immediately on any turnover, then
// executes a block with the blitz flag set.
func Blitz(gs *GameState, d dice.Dice, log *EventLog, pieceId, targetId int) bool {
	team := gs.ActiveTeam()
	team.BlitzUsedThisTurn = true
	att := gs.Piece(pieceId)
	att.Scratch.UsedBlitz = true

	target := gs.Piece(targetId)
	for _, step := range greedyPathToAdjacent(gs, att.Pos, target.Pos) {
		if MoveStep(gs, d, log, pieceId, step) {
			return true
		}
	}
	return Block(gs, d, log, pieceId, targetId, true)
}

// MultiBlock resolves Multiple Block's two simultaneous blocks against two
// adjacent opponents. The engine's chosen simplification (see DESIGN.md)
// resolves them as two sequential blocks rather than a single combined
// dice pool; the second is skipped if the first already put the attacker down.
func MultiBlock(gs *GameState, d dice.Dice, log *EventLog, attackerId, target1, target2 int) bool {
	if Block(gs, d, log, attackerId, target1, false) {
		return true
	}
	if gs.Piece(attackerId).State != Standing {
		return false
	}
	return Block(gs, d, log, attackerId, target2, false)
}

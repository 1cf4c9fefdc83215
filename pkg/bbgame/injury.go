package bbgame

import (
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// InjuryResult classifies the outcome of the injury pipeline.
type InjuryResult int

const (
	InjuryNotBroken InjuryResult = iota
	InjuryStunned
	InjuryKO
	InjuryCasualty
)

// InjuryContext carries the per-strike modifiers the armour/injury rolls
// apply, gathered by the caller from whichever action (block, foul, GFI
// failure, ball-and-chain collision) is striking the piece.
type InjuryContext struct {
	ArmourMod  int
	InjuryMod  int
	Claw       bool
	Stakes     bool
	Decay      bool
	NurglesRot bool
}

// ApplyInjury runs the armour -> injury cascade of §4.D against the piece at
// targetId, mutating its state in place and appending events. The piece is
// assumed to already be Prone (callers set that before calling in); this
// only handles further demotion to Stunned/KO/Casualty.
func ApplyInjury(gs *GameState, d dice.Dice, log *EventLog, targetId int, ctx InjuryContext) InjuryResult {
	target := gs.Piece(targetId)

	a1, a2 := d.D2D6()
	armourTotal := a1 + a2 + ctx.ArmourMod
	log.Append(Event{Kind: EventArmourRoll, PieceId: targetId, Roll: armourTotal})

	broken := armourTotal > target.Stats.Armour
	if ctx.Claw && armourTotal >= 8 {
		broken = true
	}
	if !broken {
		return InjuryNotBroken
	}

	result := rollInjury(gs, d, log, targetId, ctx)

	switch result {
	case InjuryStunned:
		target.State = Stunned
		log.Append(Event{Kind: EventStunned, PieceId: targetId})
	case InjuryKO:
		target.State = KO
		target.Pos = offPitchPos()
		log.Append(Event{Kind: EventKnockedOut, PieceId: targetId})
	case InjuryCasualty:
		result = resolveCasualty(gs, d, log, targetId, ctx)
	}
	return result
}

// rollInjury performs the 2d6 injury roll (with Stunty/Thick Skull/Decay
// modifiers) and classifies it into Stunned/KO/Casualty, without yet
// consuming Regeneration or Apothecary.
func rollInjury(gs *GameState, d dice.Dice, log *EventLog, targetId int, ctx InjuryContext) InjuryResult {
	target := gs.Piece(targetId)

	rollOnce := func() int {
		i1, i2 := d.D2D6()
		total := i1 + i2 + ctx.InjuryMod
		if target.HasSkill(SkillStunty) {
			total++
		}
		return total
	}

	total := rollOnce()
	if ctx.Decay {
		second := rollOnce()
		if second > total {
			total = second
		}
	}
	log.Append(Event{Kind: EventInjuryRoll, PieceId: targetId, Roll: total})

	if total >= 8 && total <= 9 && target.HasSkill(SkillThickSkull) {
		thickRoll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: targetId, Roll: thickRoll, Note: "thick-skull"})
		if thickRoll >= 4 {
			return InjuryStunned
		}
	}

	switch {
	case total <= 7:
		return InjuryStunned
	case total <= 9:
		return InjuryKO
	default:
		return InjuryCasualty
	}
}

// resolveCasualty applies Regeneration then Apothecary to a Casualty result:
// both demote to Stunned rather than KO, but a successful Regeneration roll
// also takes the piece off the pitch to the reserves (OffPitch) while
// Apothecary's demotion leaves the piece on the pitch, merely Stunned.
func resolveCasualty(gs *GameState, d dice.Dice, log *EventLog, targetId int, ctx InjuryContext) InjuryResult {
	target := gs.Piece(targetId)

	if target.HasSkill(SkillRegeneration) && !ctx.Stakes {
		regenRoll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: targetId, Roll: regenRoll, Note: "regeneration"})
		if regenRoll >= 4 {
			target.State = OffPitch
			target.Pos = offPitchPos()
			log.Append(Event{Kind: EventStunned, PieceId: targetId, Note: "regenerated"})
			return InjuryStunned
		}
	}

	team := gs.Team(target.Side)
	if team.HasApothecary && !team.ApothecaryUsed {
		team.ApothecaryUsed = true
		target.State = Stunned
		log.Append(Event{Kind: EventApothecary, PieceId: targetId})
		return InjuryStunned
	}

	target.State = Injured
	target.Pos = offPitchPos()
	log.Append(Event{Kind: EventCasualty, PieceId: targetId})
	return InjuryCasualty
}

// ApplyCrowdSurf handles a piece pushed off the pitch: armour is skipped
// entirely and injury is rolled directly with injury_mod+1; any Stunned
// result is promoted to KO, since the crowd never leaves a player merely
// winded (§4.D crowd-surf variant).
func ApplyCrowdSurf(gs *GameState, d dice.Dice, log *EventLog, targetId int, ctx InjuryContext) InjuryResult {
	ctx.InjuryMod++
	result := rollInjury(gs, d, log, targetId, ctx)
	if result == InjuryStunned {
		result = InjuryKO
	}

	target := gs.Piece(targetId)
	switch result {
	case InjuryKO:
		target.State = KO
		target.Pos = offPitchPos()
		log.Append(Event{Kind: EventKnockedOut, PieceId: targetId, Note: "crowd-surf"})
	case InjuryCasualty:
		result = resolveCasualty(gs, d, log, targetId, ctx)
	}
	return result
}

func offPitchPos() pitch.Pos {
	return pitch.Off()
}

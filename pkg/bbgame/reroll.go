package bbgame

import "github.com/tormund/gridiron/pkg/dice"

// NoSkillReroll is passed to AttemptRoll when no skill reroll applies to this attempt.
const NoSkillReroll Skill = -1

// AttemptRoll is the single shared reroll-chain primitive every handler composes
// (§4.C): roll a d6, succeed at >= target; on failure walk skill -> Pro ->
// team reroll, stopping at the first one that applies, and report the final
// success/failure. Only one of the three ever fires per attempt.
//
// Roll order is fixed by §5: the original roll first, then (in order) the
// skill reroll, Pro's confirm-roll, and finally the Loner check before the
// team reroll's own re-roll. Implementations must not reorder this.
func AttemptRoll(gs *GameState, d dice.Dice, log *EventLog, pieceId int, target int, skillReroll Skill, skillNegated bool, canUseTeamReroll bool) bool {
	if target < 2 {
		target = 2
	}
	if target > 6 {
		target = 6
	}

	piece := gs.Piece(pieceId)
	roll := d.D6()
	log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "attempt"})
	if roll >= target {
		return true
	}

	// Skill reroll.
	if skillReroll != NoSkillReroll && piece.HasSkill(skillReroll) && !skillNegated {
		roll = d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "skill-reroll"})
		return roll >= target
	}

	// Pro: once per turn, roll to see if the original roll may be retaken.
	if piece.HasSkill(SkillPro) && !piece.Scratch.ProUsedThisTurn {
		piece.Scratch.ProUsedThisTurn = true
		proRoll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: proRoll, Note: "pro-confirm"})
		if proRoll >= 4 {
			roll = d.D6()
			log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "pro-reroll"})
			return roll >= target
		}
		return false
	}

	// Team reroll, gated by Loner.
	if canUseTeamReroll {
		team := gs.Team(piece.Side)
		if team.RerollsRemaining > 0 && !team.RerollUsedThisTurn {
			team.RerollsRemaining--
			team.RerollUsedThisTurn = true
			if piece.HasSkill(SkillLoner) {
				lonerRoll := d.D6()
				log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: lonerRoll, Note: "loner-check"})
				if lonerRoll < 4 {
					return false // reroll wasted
				}
			}
			roll = d.D6()
			log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "team-reroll"})
			return roll >= target
		}
	}

	return false
}

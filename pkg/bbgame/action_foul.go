package bbgame

import "github.com/tormund/gridiron/pkg/dice"

// Foul resolves a foul against an adjacent Prone or Stunned opponent, per
// §4.G. Fouling never turns the game over, regardless of outcome.
func Foul(gs *GameState, d dice.Dice, log *EventLog, foulerId, targetId int) {
	team := gs.ActiveTeam()
	team.FoulUsedThisTurn = true

	fouler := gs.Piece(foulerId)
	target := gs.Piece(targetId)

	a1, a2 := d.D6(), d.D6()
	bonus := 1 // prone bonus
	if fouler.HasSkill(SkillDirtyPlayer) {
		bonus++
	}
	bonus += CountAssists(gs, target.Pos, fouler.Side, foulerId, targetId, targetId)

	total := a1 + a2 + bonus
	log.Append(Event{Kind: EventArmourRoll, PieceId: targetId, Roll: total, Note: "foul"})

	if a1 == a2 && !fouler.HasSkill(SkillSneakyGit) {
		fouler.State = Ejected
		log.Append(Event{Kind: EventEjected, PieceId: foulerId})
	}

	if total > target.Stats.Armour {
		// Mighty Blow never applies to a foul's injury roll, even if the
		// fouler has it.
		ctx := InjuryContext{Stakes: fouler.HasSkill(SkillStakes), Decay: fouler.HasSkill(SkillDecay), Claw: fouler.HasSkill(SkillClaws)}
		ApplyInjury(gs, d, log, targetId, ctx)
	}
}

package bbgame

import (
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// BigGuyCheck runs the §4.H pre-action gate for every big-guy trait the
// piece carries, in the order the spec lists them. A failed check either
// wastes the action outright (BoneHead, ReallyStupid, WildAnimal on a
// non-block action) or merely strips movement (TakeRoot); "wasted" is
// never a turnover. Bloodlust's failure is the spec's explicit
// simplification: the action proceeds regardless.
func BigGuyCheck(gs *GameState, d dice.Dice, log *EventLog, pieceId int, isBlockAction bool) bool {
	p := gs.Piece(pieceId)
	proceed := true

	if p.HasSkill(SkillBoneHead) {
		roll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "bone-head"})
		if roll < 4 {
			p.Scratch.LostTacklezones = true
			log.Append(Event{Kind: EventBigGuyFail, PieceId: pieceId, Note: "bone-head"})
			proceed = false
		}
	}

	if p.HasSkill(SkillReallyStupid) {
		roll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "really-stupid"})
		if roll < 4 && !hasHelpingFriendlyAdjacent(gs, p) {
			log.Append(Event{Kind: EventBigGuyFail, PieceId: pieceId, Note: "really-stupid"})
			proceed = false
		}
	}

	if p.HasSkill(SkillWildAnimal) && !isBlockAction {
		roll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "wild-animal"})
		if roll < 4 {
			log.Append(Event{Kind: EventBigGuyFail, PieceId: pieceId, Note: "wild-animal"})
			proceed = false
		}
	}

	if p.HasSkill(SkillTakeRoot) {
		roll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "take-root"})
		if roll < 4 {
			p.Scratch.MovementRemaining = 0
			log.Append(Event{Kind: EventBigGuyFail, PieceId: pieceId, Note: "take-root"})
		}
	}

	if p.HasSkill(SkillBloodlust) {
		roll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: pieceId, Roll: roll, Note: "bloodlust"})
		if roll < 4 {
			log.Append(Event{Kind: EventBigGuyFail, PieceId: pieceId, Note: "bloodlust-bite"})
		}
	}

	return proceed
}

// hasHelpingFriendlyAdjacent reports whether a Standing, non-ReallyStupid
// teammate stands adjacent to p, which lets a failed Really Stupid roll
// still succeed.
func hasHelpingFriendlyAdjacent(gs *GameState, p *Piece) bool {
	for i := 1; i <= NumPieces; i++ {
		o := &gs.Pieces[i]
		if o.Id == p.Id || o.Side != p.Side || o.State != Standing || o.HasSkill(SkillReallyStupid) {
			continue
		}
		if pitch.IsAdjacent(o.Pos, p.Pos) {
			return true
		}
	}
	return false
}

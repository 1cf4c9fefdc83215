package bbgame

import "github.com/tormund/gridiron/pkg/pitch"

// CountTacklezones counts Standing opposing pieces adjacent to pos whose
// LostTacklezones flag is not set. friendlySide is the side of the piece
// occupying (or about to occupy) pos.
func CountTacklezones(gs *GameState, pos pitch.Pos, friendlySide pitch.Side, excludeId int) int {
	opponent := friendlySide.Opponent()
	count := 0
	for i := 1; i <= NumPieces; i++ {
		p := &gs.Pieces[i]
		if i == excludeId || p.Side != opponent || p.State != Standing {
			continue
		}
		if p.Scratch.LostTacklezones {
			continue
		}
		if pitch.IsAdjacent(p.Pos, pos) {
			count++
		}
	}
	return count
}

// CountAssists counts friendly Standing pieces adjacent to targetPos that are
// not themselves standing in an enemy tacklezone, excluding up to two pieces
// (typically the attacker and defender) and one piece from the tacklezone
// check (typically the piece being assisted against). Guard-bearing pieces
// always count, even while marked.
func CountAssists(gs *GameState, targetPos pitch.Pos, assistingSide pitch.Side, excludeId1, excludeId2, tzExcludeId int) int {
	count := 0
	for i := 1; i <= NumPieces; i++ {
		p := &gs.Pieces[i]
		if i == excludeId1 || i == excludeId2 {
			continue
		}
		if p.Side != assistingSide || p.State != Standing {
			continue
		}
		if !pitch.IsAdjacent(p.Pos, targetPos) {
			continue
		}
		if p.HasSkill(SkillGuard) {
			count++
			continue
		}
		if CountTacklezones(gs, p.Pos, assistingSide, tzExcludeId) > 0 {
			continue
		}
		count++
	}
	return count
}

// BlockDice returns the number of block dice to roll and whether the
// attacker (rather than the defender) chooses the result, from the relative
// effective strength of attacker and defender.
func BlockDice(attST, defST int) (count int, attackerChooses bool) {
	switch {
	case attST > 2*defST:
		return 3, true
	case attST > defST:
		return 2, true
	case attST == defST:
		return 1, true
	case defST > 2*attST:
		return 3, false
	default:
		return 2, false
	}
}

// PushbackSquares returns the straight-away square plus the two squares
// adjacent to it, forming the 120-degree fan of legal pushback destinations
// away from the attacker.
func PushbackSquares(attacker, defender pitch.Pos) []pitch.Pos {
	dx, dy := sign(defender.X-attacker.X), sign(defender.Y-attacker.Y)
	straight := pitch.Pos{X: defender.X + dx, Y: defender.Y + dy}

	var fan []pitch.Pos
	if dx != 0 && dy != 0 {
		// Diagonal push: the two flanking squares share one axis with the
		// straight square.
		fan = []pitch.Pos{
			{X: defender.X + dx, Y: defender.Y},
			{X: defender.X, Y: defender.Y + dy},
		}
	} else if dx != 0 {
		fan = []pitch.Pos{
			{X: defender.X + dx, Y: defender.Y - 1},
			{X: defender.X + dx, Y: defender.Y + 1},
		}
	} else {
		fan = []pitch.Pos{
			{X: defender.X - 1, Y: defender.Y + dy},
			{X: defender.X + 1, Y: defender.Y + dy},
		}
	}
	return append([]pitch.Pos{straight}, fan...)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// DodgeTarget computes the agility roll target for a piece dodging out of a
// tacklezone into dest, per §4.F. sourceHasTackle negates the dodging
// piece's Dodge skill discount; divingTackleAdjacent counts Diving Tackle
// uses from adjacent opponents (each applies +2, capped at one use per
// dodge by the rules as written).
func DodgeTarget(gs *GameState, pieceId int, dest pitch.Pos, sourceHasTackle bool, prehensileTailCount int, divingTackleAdjacent bool) int {
	p := gs.Piece(pieceId)
	tz := CountTacklezones(gs, dest, p.Side, pieceId)
	extraTZ := tz - 1
	if extraTZ < 0 {
		extraTZ = 0
	}

	base := p.Stats.Agility
	if p.HasSkill(SkillBreakTackle) {
		base = p.Stats.Strength
	}

	target := 7 - base + extraTZ
	if p.HasSkill(SkillDodge) && !sourceHasTackle {
		target--
	}
	if p.HasSkill(SkillStunty) {
		target--
	}
	if p.HasSkill(SkillTitchy) {
		target--
	}
	if p.HasSkill(SkillTwoHeads) {
		target--
	}
	target += prehensileTailCount
	if divingTackleAdjacent {
		target += 2
	}
	return clamp(target, 2, 6)
}

package bbgame

import "github.com/tormund/gridiron/pkg/pitch"

// LegalActions enumerates every action available to the active side in
// Play phase, per §4.J. It is a pure function of the game state: it never
// draws dice and never consults a value function or prior policy, so MCTS
// and any other caller can enumerate actions without side effects.
func LegalActions(gs *GameState) []Action {
	if gs.Phase != PhasePlay || gs.ActiveTeam().TurnNumber > 8 {
		return nil
	}

	actions := []Action{{Kind: ActionEndTurn}}
	side := gs.ActiveSide
	team := gs.ActiveTeam()

	for i := 1; i <= NumPieces; i++ {
		p := &gs.Pieces[i]
		if p.Side != side || p.Scratch.HasActed {
			continue
		}
		if p.State != Standing && p.State != Prone {
			continue
		}

		for _, dest := range pitch.Adjacent(p.Pos) {
			if gs.PieceAt(dest) == nil {
				actions = append(actions, Action{Kind: ActionMove, PieceId: i, Dest: dest})
			}
		}
		if p.State == Prone {
			actions = append(actions, Action{Kind: ActionMove, PieceId: i, Dest: p.Pos})
		}
		if p.State != Standing {
			continue
		}

		var adjacentEnemies []int
		for j := 1; j <= NumPieces; j++ {
			o := &gs.Pieces[j]
			if o.Side == side || !o.State.OnPitch() {
				continue
			}

			if o.State == Standing && pitch.IsAdjacent(p.Pos, o.Pos) {
				actions = append(actions, Action{Kind: ActionBlock, PieceId: i, TargetId: j})
				adjacentEnemies = append(adjacentEnemies, j)
			}
			if !team.BlitzUsedThisTurn && pitch.Distance(p.Pos, o.Pos) <= p.Stats.Movement+3 {
				actions = append(actions, Action{Kind: ActionBlitz, PieceId: i, TargetId: j})
			}
			if !team.FoulUsedThisTurn && (o.State == Prone || o.State == Stunned) && pitch.IsAdjacent(p.Pos, o.Pos) {
				actions = append(actions, Action{Kind: ActionFoul, PieceId: i, TargetId: j})
			}
		}

		if p.HasSkill(SkillMultipleBlock) {
			for a := 0; a < len(adjacentEnemies); a++ {
				for b := a + 1; b < len(adjacentEnemies); b++ {
					actions = append(actions, Action{Kind: ActionMultiBlock, PieceId: i, TargetId: adjacentEnemies[a], TargetId2: adjacentEnemies[b]})
				}
			}
		}

		if gs.Ball.Status == BallHeld && gs.Ball.CarrierId == i && !team.PassUsedThisTurn {
			for j := 1; j <= NumPieces; j++ {
				o := &gs.Pieces[j]
				if j == i || o.Side != side || !o.State.OnPitch() {
					continue
				}
				actions = append(actions, Action{Kind: ActionPass, PieceId: i, TargetId: j, Dest: o.Pos})
				if p.HasSkill(SkillHailMary) {
					actions = append(actions, Action{Kind: ActionHailMary, PieceId: i, TargetId: j, Dest: o.Pos})
				}
				if pitch.IsAdjacent(p.Pos, o.Pos) {
					actions = append(actions, Action{Kind: ActionHandOff, PieceId: i, TargetId: j})
					if p.HasSkill(SkillThrowTeamMate) && o.HasSkill(SkillRightStuff) {
						actions = append(actions, Action{Kind: ActionThrowTeamMate, PieceId: i, TargetId: j, Dest: o.Pos})
					}
				}
			}
			if p.HasSkill(SkillBombardier) {
				actions = append(actions, Action{Kind: ActionBombThrow, PieceId: i})
			}
		}

		if p.HasSkill(SkillHypnoticGaze) {
			for j := 1; j <= NumPieces; j++ {
				o := &gs.Pieces[j]
				if o.Side == side || o.State != Standing {
					continue
				}
				if pitch.IsAdjacent(p.Pos, o.Pos) {
					actions = append(actions, Action{Kind: ActionHypnoticGaze, PieceId: i, TargetId: j})
				}
			}
		}

		if p.HasSkill(SkillBallAndChain) {
			actions = append(actions, Action{Kind: ActionBallAndChain, PieceId: i})
		}
	}

	return actions
}

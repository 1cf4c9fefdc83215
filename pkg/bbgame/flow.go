package bbgame

import (
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// Resolve is the engine's single entry point for applying one legal
// action: it runs the big-guy gate, dispatches to the matching handler,
// marks the piece's action consumed where the rules call for it, and then
// runs the flow controller. Move is the one kind that never consumes the
// piece's action on its own — a piece may take several Move steps (and
// then a terminal action) within one activation.
func Resolve(gs *GameState, d dice.Dice, log *EventLog, action Action) {
	if action.Kind == ActionEndTurn {
		gs.TurnoverPending = true
		FlowControllerStep(gs, d, log)
		return
	}

	p := gs.Piece(action.PieceId)
	isBlockAction := action.Kind == ActionBlock || action.Kind == ActionBlitz || action.Kind == ActionMultiBlock
	if !BigGuyCheck(gs, d, log, action.PieceId, isBlockAction) {
		p.Scratch.HasActed = true
		FlowControllerStep(gs, d, log)
		return
	}

	switch action.Kind {
	case ActionMove:
		MoveStep(gs, d, log, action.PieceId, action.Dest)
	case ActionBlock:
		Block(gs, d, log, action.PieceId, action.TargetId, false)
		p.Scratch.HasActed = true
	case ActionMultiBlock:
		MultiBlock(gs, d, log, action.PieceId, action.TargetId, action.TargetId2)
		p.Scratch.HasActed = true
	case ActionBlitz:
		Blitz(gs, d, log, action.PieceId, action.TargetId)
		p.Scratch.HasActed = true
	case ActionFoul:
		Foul(gs, d, log, action.PieceId, action.TargetId)
		p.Scratch.HasActed = true
	case ActionPass:
		Pass(gs, d, log, action.PieceId, action.Dest)
		p.Scratch.HasActed = true
	case ActionHailMary:
		HailMaryPass(gs, d, log, action.PieceId, action.Dest)
		p.Scratch.HasActed = true
	case ActionHandOff:
		HandOff(gs, d, log, action.PieceId, action.TargetId)
		p.Scratch.HasActed = true
	case ActionThrowTeamMate:
		ThrowTeamMate(gs, d, log, action.PieceId, action.TargetId, action.Dest)
		p.Scratch.HasActed = true
	case ActionBombThrow:
		BombThrow(gs, d, log, action.PieceId, action.Dest)
		p.Scratch.HasActed = true
	case ActionHypnoticGaze:
		HypnoticGaze(gs, d, log, action.PieceId, action.TargetId)
		p.Scratch.HasActed = true
	case ActionBallAndChain:
		BallAndChain(gs, d, log, action.PieceId)
		p.Scratch.HasActed = true
	default:
		Violate("unknown action kind")
	}

	FlowControllerStep(gs, d, log)
}

// FlowControllerStep runs the §4.K post-action checks in order: a pending
// turnover ends the turn; otherwise a carried ball in the opposing endzone
// scores; otherwise both sides having reached turn 8 triggers the
// half/game transition.
func FlowControllerStep(gs *GameState, d dice.Dice, log *EventLog) {
	if gs.TurnoverPending {
		performEndTurn(gs, d, log)
		return
	}

	if carrier := gs.Carrier(); carrier != nil && pitch.InEndzone(carrier.Pos, carrier.Side.Opponent()) {
		gs.Team(carrier.Side).Score++
		gs.Phase = PhaseTouchdown
		log.Append(Event{Kind: EventTouchdown, PieceId: carrier.Id})
		resetForSetup(gs)
		return
	}

	if gs.Home.TurnNumber >= 8 && gs.Away.TurnNumber >= 8 {
		HalfTransition(gs, d, log)
	}
}

// performEndTurn switches the active side, advances the incoming side's
// turn number, and resets its team and piece per-turn state.
func performEndTurn(gs *GameState, d dice.Dice, log *EventLog) {
	gs.TurnoverPending = false
	incomingSide := gs.ActiveSide.Opponent()
	incoming := gs.Team(incomingSide)

	gs.ActiveSide = incomingSide
	incoming.TurnNumber++
	incoming.ResetForNewTurn()
	resetPiecesForNewTurn(gs, incomingSide)
	log.Append(Event{Kind: EventEndTurn, Note: "turn-advance"})
}

// resetPiecesForNewTurn implements the per-piece half of end-turn: Stunned
// pieces recover to Prone, and every per-turn scratchpad flag clears. This
// is also where a hypnotic-gaze target's lost-tacklezones flag clears,
// since it is scoped to the gazed piece's own team's next turn (see
// DESIGN.md Open Question 1).
func resetPiecesForNewTurn(gs *GameState, side pitch.Side) {
	for i := 1; i <= NumPieces; i++ {
		p := &gs.Pieces[i]
		if p.Side != side {
			continue
		}
		if p.State == Stunned {
			p.State = Prone
		}
		p.Scratch = Scratchpad{MovementRemaining: p.Stats.Movement}
	}
}

// resetForSetup clears the pitch back to the reserves box after a
// touchdown, ready for the next kickoff's setup phase.
func resetForSetup(gs *GameState) {
	for i := 1; i <= NumPieces; i++ {
		p := &gs.Pieces[i]
		if p.State.OnPitch() {
			p.State = OffPitch
			p.Pos = pitch.Off()
		}
	}
	gs.Ball = Ball{Status: BallOffPitch}
	gs.Phase = PhaseSetup
}

// HalfTransition runs KO recovery, clears per-turn flags, and advances the
// half (or ends the game), per §4.K.
func HalfTransition(gs *GameState, d dice.Dice, log *EventLog) {
	for i := 1; i <= NumPieces; i++ {
		p := &gs.Pieces[i]
		if p.State != KO {
			continue
		}
		roll := d.D6()
		log.Append(Event{Kind: EventRoll, PieceId: i, Roll: roll, Note: "ko-recovery"})
		if roll >= 4 {
			p.State = OffPitch
		}
	}

	gs.Home.ResetForNewTurn()
	gs.Away.ResetForNewTurn()

	gs.Half++
	log.Append(Event{Kind: EventHalfTransition, OtherId: gs.Half})

	if gs.Half > 2 {
		gs.Phase = PhaseGameOver
		return
	}
	gs.Phase = PhaseHalfTime
}
